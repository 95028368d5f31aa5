// Package resolve turns user supplied inputs into concrete file paths,
// deciding per input whether it is a glob pattern or a literal path.
package resolve

import (
	"errors"

	"github.com/AntoineGS/tidyfmt/internal/config"
	"github.com/bmatcuk/doublestar/v4"
)

// Resolver expands inputs using a Globber.
type Resolver struct {
	globber Globber
}

// New creates a Resolver. A nil globber uses the host file system.
func New(globber Globber) *Resolver {
	if globber == nil {
		globber = FilepathGlobber{}
	}

	return &Resolver{globber: globber}
}

// Resolve expands inputs against the host file system.
func Resolve(inputs []string, settings config.Settings) ([]string, error) {
	return New(nil).Resolve(inputs, settings)
}

// Resolve maps inputs to an ordered list of paths.
//
// With globs disabled the inputs are returned unchanged. Otherwise each input
// is expanded on its own and the results are concatenated in input order,
// without deduplication. An input that is not a valid pattern is kept as a
// literal path; a valid pattern that matches nothing contributes nothing.
func (r *Resolver) Resolve(inputs []string, settings config.Settings) ([]string, error) {
	if !settings.AllowGlobs {
		paths := make([]string, len(inputs))
		copy(paths, inputs)
		return paths, nil
	}

	paths := make([]string, 0, len(inputs))
	for _, input := range inputs {
		matches, err := r.expand(input)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	return paths, nil
}

func (r *Resolver) expand(input string) ([]string, error) {
	matches, err := r.globber.Glob(input)
	switch {
	case err == nil:
		return matches, nil
	case errors.Is(err, doublestar.ErrBadPattern):
		return []string{input}, nil
	default:
		return nil, NewPatternError(input, err)
	}
}
