package config

// Settings controls how input strings are resolved and how file contents are
// normalized. Values are immutable: the With* methods return a modified copy.
type Settings struct {
	// AllowGlobs enables glob interpretation of inputs. When false every
	// input is a literal path, even if it contains metacharacters.
	AllowGlobs bool
	// TrimContents strips leading and trailing whitespace from loaded files.
	TrimContents bool
}

// DefaultSettings returns the settings used when no flags are given.
func DefaultSettings() Settings {
	return Settings{
		AllowGlobs:   true,
		TrimContents: true,
	}
}

// WithAllowGlobs returns a copy of s with AllowGlobs set.
func (s Settings) WithAllowGlobs(allow bool) Settings {
	s.AllowGlobs = allow
	return s
}

// WithTrimContents returns a copy of s with TrimContents set.
func (s Settings) WithTrimContents(trim bool) Settings {
	s.TrimContents = trim
	return s
}
