package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
)

const describeSystemPrompt = `You write metadata for job openings.
Answer with a single JSON object and nothing else:
{"summary": "<one sentence, at most 40 words>", "keywords": ["<lowercase keyword>", ...]}
Use between 3 and 12 keywords.`

const maxKeywords = 12

// Description is the model-written part of a document's metadata.
type Description struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// Describe asks the model for a summary and keywords of doc.
func (a *Agent) Describe(ctx context.Context, doc jobs.JobOpening) (*Description, error) {
	text := jobs.Flatten(doc, jobs.FlattenOptions{StripWhitespace: true})

	zero := 0.0
	gen, err := a.Generate(ctx, text, GenerateOptions{
		System:      describeSystemPrompt,
		Temperature: &zero,
	})
	if err != nil {
		return nil, err
	}

	desc, err := parseDescription(gen.Text)
	if err != nil {
		a.logger.Debug("unparseable agent answer", err, map[string]interface{}{
			"answer": gen.Text,
		})
		return nil, err
	}
	return desc, nil
}

// parseDescription accepts the JSON object optionally wrapped in a markdown
// code fence or surrounded by prose.
func parseDescription(answer string) (*Description, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in answer", ErrAgent)
	}

	var d Description
	if err := json.Unmarshal([]byte(answer[start:end+1]), &d); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in answer: %w", ErrAgent, err)
	}

	d.Summary = strings.Join(strings.Fields(d.Summary), " ")
	if d.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrAgent)
	}

	keywords := make([]string, 0, len(d.Keywords))
	seen := make(map[string]struct{}, len(d.Keywords))
	for _, k := range d.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	d.Keywords = keywords
	return &d, nil
}
