// Package template builds the data context handed to templates and renders
// templates against it.
package template

import (
	"unicode/utf8"
)

// FileEntry is one loaded input file.
type FileEntry struct {
	// Name is the final path element.
	Name string `json:"name" yaml:"name"`
	// Path is the path the file was loaded from, exactly as resolved.
	Path string `json:"path" yaml:"path"`
	// Contents is the file text, trimmed if requested.
	Contents string `json:"contents" yaml:"contents"`
}

// Context is the ordered, read-only collection of files exposed to templates.
type Context struct {
	files []FileEntry
}

// NewContext creates a Context holding a copy of files.
func NewContext(files []FileEntry) *Context {
	c := &Context{files: make([]FileEntry, len(files))}
	copy(c.files, files)

	return c
}

// Files returns a copy of the entries in load order.
func (c *Context) Files() []FileEntry {
	files := make([]FileEntry, len(c.files))
	copy(files, c.files)

	return files
}

// Len returns the number of entries.
func (c *Context) Len() int {
	return len(c.files)
}

// Object returns the context as a tree of maps, slices and strings:
//
//	{"files": [{"name": ..., "path": ..., "contents": ...}, ...]}
//
// This is the only value templates see.
func (c *Context) Object() map[string]any {
	files := make([]any, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f.Object())
	}

	return map[string]any{
		"files": files,
	}
}

// Object returns the entry as a map. The path falls back to the name when it
// has no valid text form.
func (f FileEntry) Object() map[string]any {
	path := f.Path
	if !utf8.ValidString(path) {
		path = f.Name
	}

	return map[string]any{
		"name":     f.Name,
		"path":     path,
		"contents": f.Contents,
	}
}
