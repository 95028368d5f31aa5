// Package manager ties input resolution, context building and rendering
// together for the command line.
package manager

import (
	"io"
	"log/slog"
	"os"

	"github.com/AntoineGS/tidyfmt/internal/config"
	tmpl "github.com/AntoineGS/tidyfmt/internal/template"
)

// File permissions constants
const (
	// DirPerms are the default permissions for created directories (rwxr-x---)
	DirPerms os.FileMode = 0750

	// FilePerms are the default permissions for created files (rw-r--r--)
	FilePerms os.FileMode = 0644
)

// Manager formats templates against contexts built from input files.
// Rendered output goes to Stdout; logs go to stderr so they never mix with it.
type Manager struct {
	Stdout   io.Writer
	logOut   io.Writer
	logger   *slog.Logger
	builder  *tmpl.Builder
	renderer tmpl.Renderer
	Settings config.Settings
	Verbose  bool
}

// New creates a Manager using the host file system and the default
// template engine.
func New(settings config.Settings) (*Manager, error) {
	logger := newTextLogger(os.Stderr, false)

	engine, err := tmpl.NewEngine(logger)
	if err != nil {
		return nil, err
	}

	return &Manager{
		Settings: settings,
		Stdout:   os.Stdout,
		logOut:   os.Stderr,
		logger:   logger,
		builder:  tmpl.NewBuilder(nil, nil),
		renderer: engine,
	}, nil
}

// WithLogger sets a custom logger. A later WithVerbose or WithLogOutput
// replaces it with a text logger, so call WithLogger last.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	m2 := *m
	m2.logger = logger

	return &m2
}

// WithLogOutput returns a new Manager whose text logger writes to w at the
// current verbosity.
func (m *Manager) WithLogOutput(w io.Writer) *Manager {
	m2 := *m
	m2.logOut = w
	m2.logger = newTextLogger(w, m2.Verbose)

	return &m2
}

// WithVerbose returns a new Manager with adjusted log level based on verbose
// flag. The rebuilt logger keeps the destination set by WithLogOutput.
func (m *Manager) WithVerbose(verbose bool) *Manager {
	m2 := *m
	m2.Verbose = verbose
	m2.logger = newTextLogger(m2.logOut, verbose)

	return &m2
}

func newTextLogger(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithBuilder returns a new Manager loading files through b.
func (m *Manager) WithBuilder(b *tmpl.Builder) *Manager {
	m2 := *m
	m2.builder = b

	return &m2
}

// WithRenderer returns a new Manager rendering through r.
func (m *Manager) WithRenderer(r tmpl.Renderer) *Manager {
	m2 := *m
	m2.renderer = r

	return &m2
}

// Populate resolves inputs and loads them into a Context.
func (m *Manager) Populate(inputs []string) (*tmpl.Context, error) {
	m.logger.Debug("populating context",
		slog.Int("inputs", len(inputs)),
		slog.Bool("globs", m.Settings.AllowGlobs),
		slog.Bool("trim", m.Settings.TrimContents))

	ctx, err := m.builder.PopulateFrom(inputs, m.Settings)
	if err != nil {
		return nil, err
	}

	for _, f := range ctx.Files() {
		m.logger.Debug("loaded file",
			slog.String("name", f.Name),
			slog.String("path", f.Path),
			slog.Int("bytes", len(f.Contents)))
	}

	return ctx, nil
}

// Format renders the template at templatePath against the files named by
// inputs.
func (m *Manager) Format(templatePath string, inputs []string) (string, error) {
	ctx, err := m.Populate(inputs)
	if err != nil {
		return "", err
	}

	m.logger.Debug("rendering template",
		slog.String("template", templatePath),
		slog.Int("files", ctx.Len()))

	return tmpl.RenderFile(m.renderer, templatePath, ctx)
}
