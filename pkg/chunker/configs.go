package chunker

import "fmt"

const (
	StrategyRecursive = "recursive"
	StrategyMarkdown  = "markdown"
	StrategyCharacter = "character"

	DefaultMaxSize = 512
	DefaultOverlap = 64
)

// Config controls how documents are split.
type Config struct {
	// Strategy selects the splitter: recursive, markdown or character.
	Strategy string `koanf:"strategy"`

	// MaxSize is the maximum chunk length in characters.
	MaxSize int `koanf:"max_size"`

	// Overlap is the number of characters shared by consecutive chunks.
	Overlap int `koanf:"overlap"`

	// ConvertLists renders list fields one item per line before splitting.
	ConvertLists bool `koanf:"convert_lists"`

	// StripWhitespace collapses whitespace runs inside field values.
	StripWhitespace bool `koanf:"strip_whitespace"`

	// KeepSeparator keeps the separator a recursive split happened on at the
	// start of the following chunk.
	KeepSeparator bool `koanf:"keep_separator"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyRecursive,
		MaxSize:         DefaultMaxSize,
		Overlap:         DefaultOverlap,
		ConvertLists:    true,
		StripWhitespace: true,
	}
}

func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyRecursive, StrategyMarkdown, StrategyCharacter:
	default:
		return fmt.Errorf("chunker: unknown strategy %q", c.Strategy)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("chunker: max size must be greater than zero")
	}
	if c.Overlap < 0 {
		return fmt.Errorf("chunker: overlap cannot be negative")
	}
	if c.Overlap >= c.MaxSize {
		return fmt.Errorf("chunker: overlap %d must be smaller than max size %d", c.Overlap, c.MaxSize)
	}
	return nil
}
