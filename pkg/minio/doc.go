// Package minio provides a small client for MinIO/S3-compatible object storage.
//
// It wraps minio-go with bucket bootstrapping and a watcher that rebuilds the
// client when the bucket stops answering. Put, Get, List and Delete work on a
// single configured bucket; Get refuses objects above MaxObjectSize.
//
// Basic Usage:
//
//	client, err := minio.NewClient(minio.Config{
//		Connection: minio.ConnectionConfig{
//			Endpoint:        "localhost:9000",
//			AccessKeyID:     "minioadmin",
//			SecretAccessKey: "minioadmin",
//			BucketName:      "job-openings",
//		},
//	}, log)
//	if err != nil {
//		return err
//	}
//
//	_, err = client.Put(ctx, "documents/abc.json", bytes.NewReader(body), int64(len(body)))
//	data, err := client.Get(ctx, "documents/abc.json")
//	if errors.Is(err, minio.ErrObjectNotFound) {
//		// ...
//	}
package minio
