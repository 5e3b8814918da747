package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

// fakeChat answers every chat completion with content and records the last request.
func fakeChat(t *testing.T, status int, content string, last *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if last != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(last))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		body, _ := json.Marshal(content)
		_, _ = fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","created":1,"model":"test-model",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%s}}]}`, body)
	}))
}

func newTestAgent(t *testing.T, url string) *Agent {
	t.Helper()
	a, err := NewAgent(Config{Enabled: true, Endpoint: url, APIKey: "k", Model: "test-model", MaxTokens: 64}, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func sampleOpening() jobs.JobOpening {
	return jobs.JobOpening{
		Position:            "Backend Engineer",
		Category:            "Engineering",
		Type:                "Full-time",
		Schedule:            "Flexible",
		Location:            "Remote",
		SalaryRange:         "80k-100k",
		Description:         "Build APIs.",
		KeyResponsibilities: []string{"Write Go"},
		Requirements:        []string{"Go"},
		ExperienceRequired:  "3 years",
	}
}

func TestGenerateSendsSystemAndUserMessages(t *testing.T) {
	var req chatRequest
	srv := fakeChat(t, http.StatusOK, "  hello  ", &req)
	defer srv.Close()

	gen, err := newTestAgent(t, srv.URL).Generate(context.Background(), "hi", GenerateOptions{System: "be brief"})
	require.NoError(t, err)
	assert.Equal(t, "hello", gen.Text)
	assert.Equal(t, "test-model", gen.Model)

	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 64, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "hi", req.Messages[1].Content)
}

func TestGenerateWrapsServerErrors(t *testing.T) {
	srv := fakeChat(t, http.StatusServiceUnavailable, "", nil)
	defer srv.Close()

	_, err := newTestAgent(t, srv.URL).Generate(context.Background(), "hi", GenerateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAgent)
}

func TestDescribeParsesFencedJSON(t *testing.T) {
	answer := "Sure!\n```json\n{\"summary\": \"Remote  backend role.\", \"keywords\": [\"Go\", \"go\", \" remote \", \"\"]}\n```"
	var req chatRequest
	srv := fakeChat(t, http.StatusOK, answer, &req)
	defer srv.Close()

	desc, err := newTestAgent(t, srv.URL).Describe(context.Background(), sampleOpening())
	require.NoError(t, err)
	assert.Equal(t, "Remote backend role.", desc.Summary)
	assert.Equal(t, []string{"go", "remote"}, desc.Keywords)
	assert.Contains(t, req.Messages[1].Content, "Backend Engineer")
}

func TestDescribeRejectsProse(t *testing.T) {
	srv := fakeChat(t, http.StatusOK, "I cannot help with that.", nil)
	defer srv.Close()

	_, err := newTestAgent(t, srv.URL).Describe(context.Background(), sampleOpening())
	assert.ErrorIs(t, err, ErrAgent)
}

func TestDisabledAgentMakesNoCalls(t *testing.T) {
	a, err := NewAgent(Config{}, logger.NewNopLogger())
	require.NoError(t, err)
	assert.False(t, a.Enabled())

	_, err = a.Describe(context.Background(), sampleOpening())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr bool
	}{
		{name: "plain", answer: `{"summary":"s","keywords":["a"]}`},
		{name: "empty summary", answer: `{"summary":"  ","keywords":["a"]}`, wantErr: true},
		{name: "broken json", answer: `{"summary":`, wantErr: true},
		{name: "no object", answer: `nothing`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDescription(tt.answer)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAgent)
				return
			}
			assert.NoError(t, err)
		})
	}
}
