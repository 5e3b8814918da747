// Package server exposes job openings over HTTP with gin.
//
// Routes:
//
//	GET    /job-openings                  all documents, metadata stripped
//	GET    /job-openings?jobId=<id>       one stored document
//	GET    /job-openings?jobQuery=<text>  best matching documents
//	POST   /job-openings                  validate, store and index; 201
//	DELETE /job-openings?jobId=<id>       remove vectors, then the document
//	GET    /job-openings/schema           JSON schema of a job opening
//	GET    /healthz                       dependency status
//
// Every error body is {"error": "<message>"}. Validation failures map to
// 400, unknown ids to 404 and everything else to 500.
package server
