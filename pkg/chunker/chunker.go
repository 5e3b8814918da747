package chunker

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunk is a bounded piece of a document's text.
type Chunk struct {
	Index      int
	Text       string
	SourceHash string
}

// Chunker splits job openings into chunks. It holds no per-document state and
// is safe for concurrent use.
type Chunker struct {
	cfg      Config
	splitter textsplitter.TextSplitter
}

// NewChunker validates the configuration and builds the configured splitter.
func NewChunker(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chunker{cfg: cfg}
	switch cfg.Strategy {
	case StrategyRecursive:
		c.splitter = textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.MaxSize),
			textsplitter.WithChunkOverlap(cfg.Overlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
			textsplitter.WithKeepSeparator(cfg.KeepSeparator),
			textsplitter.WithLenFunc(utf8.RuneCountInString),
		)
	case StrategyMarkdown:
		c.splitter = textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(cfg.MaxSize),
			textsplitter.WithChunkOverlap(cfg.Overlap),
			textsplitter.WithLenFunc(utf8.RuneCountInString),
		)
	}
	return c, nil
}

// Config returns the settings the chunker was built with.
func (c *Chunker) Config() Config {
	return c.cfg
}

// Chunk validates the document and returns its chunks as a lazy sequence.
// The sequence is finite, yields at least one chunk, and can be ranged over
// any number of times with the same result.
func (c *Chunker) Chunk(doc jobs.JobOpening) (iter.Seq[Chunk], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	hash, err := jobs.ContentHash(doc)
	if err != nil {
		return nil, err
	}

	text := jobs.Flatten(doc, jobs.FlattenOptions{
		ConvertLists:    c.cfg.ConvertLists,
		StripWhitespace: c.cfg.StripWhitespace,
		Markdown:        c.cfg.Strategy == StrategyMarkdown,
	})

	return func(yield func(Chunk) bool) {
		index := 0
		for piece := range c.pieces(text) {
			if !yield(Chunk{Index: index, Text: piece, SourceHash: hash}) {
				return
			}
			index++
		}
	}, nil
}

// Texts collects the text of every chunk in order.
func Texts(chunks iter.Seq[Chunk]) []string {
	var out []string
	for ch := range chunks {
		out = append(out, ch.Text)
	}
	return out
}

func (c *Chunker) pieces(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if c.splitter == nil {
			for _, w := range window(text, c.cfg.MaxSize, c.cfg.Overlap) {
				if !yield(w) {
					return
				}
			}
			return
		}

		parts, err := c.splitter.SplitText(text)
		if err != nil {
			parts = []string{text}
		}

		emitted := 0
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			if !c.cfg.KeepSeparator {
				part = strings.TrimSpace(part)
			}
			for _, bounded := range window(part, c.cfg.MaxSize, c.cfg.Overlap) {
				if !yield(bounded) {
					return
				}
				emitted++
			}
		}

		if emitted == 0 {
			for _, w := range window(text, c.cfg.MaxSize, c.cfg.Overlap) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// window cuts text into runs of at most size runes, each starting overlap runes
// before the end of the previous one. Text that already fits is returned as is.
func window(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
