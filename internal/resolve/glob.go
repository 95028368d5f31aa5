package resolve

import (
	"errors"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
)

// Globber expands a pattern against a file system.
//
// Implementations must return an error wrapping doublestar.ErrBadPattern for
// patterns that are not syntactically valid, so the resolver can fall back
// to a literal path. Any other error is treated as a failed walk.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// FilepathGlobber expands patterns against the host file system using
// doublestar, which supports *, **, ?, [class] and {alt,ernatives}.
type FilepathGlobber struct{}

// Glob returns matches in the order doublestar walks the tree. Directories
// are read with fs.ReadDir, which sorts entries by name, so matches within a
// directory are lexical.
//
// A pattern that descends through a regular file (file.txt/x) matches
// nothing rather than failing.
func (FilepathGlobber) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFailOnIOErrors())
	if errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}

	return matches, err
}
