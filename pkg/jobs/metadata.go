package jobs

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

const (
	DocumentType = "job_opening"
	maxKeywords  = 12
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "in": {}, "for": {}, "to": {},
	"with": {}, "or": {}, "on": {}, "at": {}, "as": {}, "is": {}, "be": {}, "by": {},
}

// NewMetadata derives the stored metadata of a document without any remote call.
func NewMetadata(j JobOpening, filePath string) Metadata {
	return Metadata{
		DocumentType: DocumentType,
		Domain:       Domain(j),
		Summary:      Summary(j),
		Keywords:     Keywords(j),
		FilePath:     filePath,
	}
}

// Domain is the lower-cased, dash separated category.
func Domain(j JobOpening) string {
	return strings.Join(strings.Fields(strings.ToLower(j.Category)), "-")
}

// Summary is a one sentence description built from the headline fields.
func Summary(j JobOpening) string {
	s := fmt.Sprintf("%s position (%s, %s) in %s", strings.TrimSpace(j.Position),
		strings.TrimSpace(j.Type), strings.TrimSpace(j.Schedule), strings.TrimSpace(j.Location))
	if first := firstSentence(j.Description); first != "" {
		s += ": " + first
	}
	return s
}

// Keywords collects distinct, lower-cased terms from the position, category,
// location, type and requirements, in that order.
func Keywords(j JobOpening) []string {
	var out []string
	add := func(text string) {
		for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
		}) {
			if _, stop := stopWords[w]; stop || len(w) < 2 {
				continue
			}
			if !slices.Contains(out, w) {
				out = append(out, w)
			}
		}
	}

	add(j.Position)
	add(j.Category)
	add(j.Location)
	add(j.Type)
	for _, r := range j.Requirements {
		add(r)
	}

	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}

func firstSentence(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return s[:i+1]
	}
	return s
}
