package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/group/all"
)

// Renderer renders template source against arbitrary data.
type Renderer interface {
	Render(name, source string, data any) (string, error)
}

// Engine renders Go text/template sources with the sprout function library.
type Engine struct {
	funcs template.FuncMap
}

// NewEngine creates an Engine. Sprout reports registry problems through
// logger; a nil logger uses slog.Default().
func NewEngine(logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	handler := sprout.New(sprout.WithLogger(logger))
	if err := handler.AddGroups(all.RegistryGroup()); err != nil {
		return nil, fmt.Errorf("registering template functions: %w", err)
	}

	return &Engine{funcs: template.FuncMap(handler.Build())}, nil
}

// Render parses source and executes it against data. Referencing a key that
// does not exist is an error.
func (e *Engine) Render(name, source string, data any) (string, error) {
	t, err := template.New(name).
		Option("missingkey=error").
		Funcs(e.funcs).
		Parse(source)
	if err != nil {
		return "", NewError(KindRender, name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", NewError(KindRender, name, err)
	}

	return buf.String(), nil
}

// RenderFile reads the template at path and renders ctx's object graph
// through r.
func RenderFile(r Renderer, path string, ctx *Context) (string, error) {
	source, err := os.ReadFile(path) //nolint:gosec // template path is supplied by the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewError(KindNotFound, path, err)
		}
		return "", NewError(KindIO, path, err)
	}

	out, err := r.Render(filepath.Base(path), string(source), ctx.Object())
	if err != nil {
		if KindOf(err) != 0 {
			return "", err
		}
		return "", NewError(KindRender, path, err)
	}

	return out, nil
}
