package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/AntoineGS/tidyfmt/internal/config"
	"github.com/AntoineGS/tidyfmt/internal/resolve"
)

// FileReader reads whole files.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OSReader reads from the host file system.
type OSReader struct{}

// ReadFile reads the named file with os.ReadFile.
func (OSReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // paths come from the user's inputs
}

// Builder loads resolved paths into a Context.
type Builder struct {
	reader   FileReader
	resolver *resolve.Resolver
}

// NewBuilder creates a Builder. Nil arguments fall back to the host file
// system.
func NewBuilder(reader FileReader, resolver *resolve.Resolver) *Builder {
	if reader == nil {
		reader = OSReader{}
	}
	if resolver == nil {
		resolver = resolve.New(nil)
	}

	return &Builder{reader: reader, resolver: resolver}
}

// Build loads paths from the host file system.
func Build(paths []string, settings config.Settings) (*Context, error) {
	return NewBuilder(nil, nil).Build(paths, settings)
}

// PopulateFrom resolves inputs and loads them from the host file system.
func PopulateFrom(inputs []string, settings config.Settings) (*Context, error) {
	return NewBuilder(nil, nil).PopulateFrom(inputs, settings)
}

// PopulateFrom resolves inputs into paths and loads them. Every error is an
// *Error.
func (b *Builder) PopulateFrom(inputs []string, settings config.Settings) (*Context, error) {
	paths, err := b.resolver.Resolve(inputs, settings)
	if err != nil {
		var patternErr *resolve.PatternError
		if errors.As(err, &patternErr) {
			return nil, NewError(KindPattern, patternErr.Pattern, patternErr.Err)
		}
		return nil, NewError(KindPattern, "", err)
	}

	return b.Build(paths, settings)
}

// Build loads every path in order. Loading stops at the first failure and
// nothing loaded so far is returned.
func (b *Builder) Build(paths []string, settings config.Settings) (*Context, error) {
	files := make([]FileEntry, 0, len(paths))
	for _, path := range paths {
		entry, err := b.load(path, settings)
		if err != nil {
			return nil, err
		}
		files = append(files, entry)
	}

	return &Context{files: files}, nil
}

func (b *Builder) load(path string, settings config.Settings) (FileEntry, error) {
	name, err := fileName(path)
	if err != nil {
		return FileEntry{}, err
	}

	data, err := b.reader.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileEntry{}, NewError(KindNotFound, path, err)
		}
		return FileEntry{}, NewError(KindIO, path, err)
	}

	if !utf8.Valid(data) {
		return FileEntry{}, NewError(KindDecode, path, nil)
	}

	contents := string(data)
	if settings.TrimContents {
		contents = strings.TrimSpace(contents)
	}

	return FileEntry{
		Name:     name,
		Path:     path,
		Contents: contents,
	}, nil
}

// fileName returns the last element of path, ignoring trailing separators
// and "." elements.
func fileName(path string) (string, error) {
	if path == "" || lastElement(path) == ".." {
		return "", NewError(KindInvalidPath, path, nil)
	}

	base := filepath.Base(filepath.Clean(path))
	if base == "." || base == ".." || strings.HasSuffix(base, string(filepath.Separator)) {
		return "", NewError(KindInvalidPath, path, nil)
	}

	return base, nil
}

// lastElement returns the final path element ignoring "." elements, before
// any ".." is folded into its parent.
func lastElement(path string) string {
	elems := strings.FieldsFunc(path, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})
	for i := len(elems) - 1; i >= 0; i-- {
		if elems[i] != "." {
			return elems[i]
		}
	}

	return ""
}
