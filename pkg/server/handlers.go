package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/pipeline"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/service"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/gin-gonic/gin"
)

// SearchHit is one element of the ?jobQuery= response.
type SearchHit struct {
	JobID      string         `json:"jobId"`
	Score      float32        `json:"score"`
	ChunkIndex int            `json:"chunkIndex"`
	Text       string         `json:"text"`
	Document   map[string]any `json:"document"`
}

// getJobOpenings serves three reads on one route: jobId fetches one
// document, jobQuery searches, and no parameter lists everything.
func (s *Server) getJobOpenings(c *gin.Context) {
	ctx := c.Request.Context()

	if id, ok := c.GetQuery("jobId"); ok {
		doc, err := s.svc.Get(ctx, id)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
		return
	}

	if query, ok := c.GetQuery("jobQuery"); ok {
		matches, err := s.svc.Search(ctx, query, s.cfg.QueryTopK)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, toHits(matches))
		return
	}

	docs, err := s.svc.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) createJobOpening(c *gin.Context) {
	var doc jobs.JobOpening
	if err := c.ShouldBindJSON(&doc); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(c, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	res, err := s.svc.Create(c.Request.Context(), doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) deleteJobOpening(c *gin.Context) {
	id := c.Query("jobId")
	if strings.TrimSpace(id) == "" {
		writeError(c, http.StatusBadRequest, "jobId query parameter is required")
		return
	}

	if err := s.svc.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobId": id, "deleted": true})
}

func (s *Server) schema(c *gin.Context) {
	c.JSON(http.StatusOK, jobs.Schema())
}

func (s *Server) health(c *gin.Context) {
	status := http.StatusOK
	components := gin.H{}
	for _, hc := range s.checks {
		if err := hc.Check(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			components[hc.Name] = gin.H{"status": "down", "error": err.Error()}
			continue
		}
		components[hc.Name] = gin.H{"status": "up"}
	}

	overall := "up"
	if status != http.StatusOK {
		overall = "down"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}

// fail maps err to a status code and writes it. Server errors are logged
// here, once, with the request path.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"query":  c.Request.URL.RawQuery,
		})
	}
	writeError(c, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case service.IsInvalid(err):
		return http.StatusBadRequest
	case service.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// internal payload keys are reported as separate fields of SearchHit.
var internalKeys = []string{vectordb.PayloadText, vectordb.PayloadSourceHash, vectordb.PayloadChunkIndex}

func toHits(matches []pipeline.Match) []SearchHit {
	hits := make([]SearchHit, 0, len(matches))
	for _, m := range matches {
		doc := vectordb.ClonePayload(m.Payload)
		for _, k := range internalKeys {
			delete(doc, k)
		}
		hits = append(hits, SearchHit{
			JobID:      m.SourceHash,
			Score:      m.Score,
			ChunkIndex: m.ChunkIndex,
			Text:       m.Text,
			Document:   doc,
		})
	}
	return hits
}
