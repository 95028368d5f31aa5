package manager

import (
	tmpl "github.com/AntoineGS/tidyfmt/internal/template"
)

// Populator defines the interface for building a context from inputs
type Populator interface {
	Populate(inputs []string) (*tmpl.Context, error)
}

// Formatter defines the interface for rendering and emitting output
type Formatter interface {
	Format(templatePath string, inputs []string) (string, error)
	Emit(rendered, outputPath string) error
}

// Checker defines the interface for drift detection
type Checker interface {
	Check(rendered, outputPath string) (string, error)
}

// TemplateFormatter combines all manager operations
type TemplateFormatter interface {
	Populator
	Formatter
	Checker
}
