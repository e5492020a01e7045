package segment

// Config controls section filtering and chunk sizing.
type Config struct {
	// MaxChars is the largest chunk, in characters, the packer will build.
	// A single sentence longer than this is still emitted whole.
	MaxChars int

	// MinSectionChars drops sections shorter than this. Short lines are
	// treated as headers or extraction noise.
	MinSectionChars int
}

// DefaultConfig returns the standard chunking limits.
func DefaultConfig() Config {
	return Config{
		MaxChars:        500,
		MinSectionChars: 50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxChars <= 0 {
		c.MaxChars = d.MaxChars
	}
	if c.MinSectionChars < 0 {
		c.MinSectionChars = d.MinSectionChars
	}
	return c
}
