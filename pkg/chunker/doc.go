// Package chunker turns a job opening into bounded text chunks ready for embedding.
//
// The document is first flattened to text (see jobs.Flatten), then split with one
// of three strategies:
//
//   - recursive: langchaingo's recursive character splitter, trying paragraph,
//     line, sentence and word boundaries in turn
//   - markdown: langchaingo's markdown splitter over a heading-per-field rendering
//   - character: a fixed-size sliding window
//
// Whatever the strategy, no chunk is longer than Config.MaxSize characters and
// consecutive pieces of an oversized segment share Config.Overlap characters.
package chunker
