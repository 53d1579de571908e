// Package generator turns one artifact identifier into a PDF: it resolves the
// artifact's paths, checks that the input document and every stylesheet are
// present, and hands the work to a Renderer.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/porticus-lab/artifact-pdf/internal/artifact"
	"github.com/porticus-lab/artifact-pdf/internal/logging"
)

var (
	// ErrMissingInput is returned when the HTML document does not exist or
	// the identifier cannot name one.
	ErrMissingInput = errors.New("HTML file not found")

	// ErrMissingAsset is returned for the first stylesheet that does not exist.
	ErrMissingAsset = errors.New("stylesheet not found")

	// ErrRender wraps every failure of the rendering engine.
	ErrRender = errors.New("error generating PDF")
)

// RenderJob is one HTML document to print, with its stylesheets in cascade
// order and the destination PDF path.
type RenderJob struct {
	HTML        string
	Stylesheets []string
	Output      string
}

// Renderer produces the PDF described by a job and reports its size in bytes.
// Implementations must not leave a partial file at job.Output on failure.
type Renderer interface {
	Render(ctx context.Context, job RenderJob) (int64, error)
}

// Outcome describes a successful generation.
type Outcome struct {
	Paths artifact.Paths
	Size  int64
}

// Generator converts artifacts laid out under one base directory.
type Generator struct {
	layout   artifact.Layout
	renderer Renderer
	log      logging.Logger
	stat     func(string) (os.FileInfo, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for progress messages. Defaults to logging.Nop.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithStatFunc replaces os.Stat for the existence checks.
func WithStatFunc(stat func(string) (os.FileInfo, error)) Option {
	return func(g *Generator) {
		if stat != nil {
			g.stat = stat
		}
	}
}

// New returns a Generator resolving paths with layout and rendering with r.
func New(layout artifact.Layout, r Renderer, opts ...Option) *Generator {
	g := &Generator{
		layout:   layout,
		renderer: r,
		log:      logging.Nop{},
		stat:     os.Stat,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate renders the artifact id to <base>/output/<id>.pdf.
//
// A missing input document or stylesheet is reported with ErrMissingInput
// or ErrMissingAsset before anything is rendered; stylesheets are checked in
// cascade order and the first missing one is reported. Renderer failures are
// wrapped in ErrRender.
func (g *Generator) Generate(ctx context.Context, id string) (*Outcome, error) {
	paths, err := g.layout.Paths(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	g.log.Debugf("artifact %q: html=%s pdf=%s", id, paths.HTML, paths.PDF)

	if !g.exists(paths.HTML) {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, paths.HTML)
	}

	for _, s := range paths.Stylesheets {
		if !g.exists(s.Path) {
			return nil, fmt.Errorf("%w: %s: %s", ErrMissingAsset, s.Role, s.Path)
		}
	}

	job := RenderJob{
		HTML:        paths.HTML,
		Stylesheets: paths.StylesheetPaths(),
		Output:      paths.PDF,
	}
	g.log.Debugf("rendering %s with %d stylesheets", job.HTML, len(job.Stylesheets))

	size, err := g.renderer.Render(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	g.log.Debugf("wrote %d bytes to %s", size, job.Output)

	return &Outcome{Paths: paths, Size: size}, nil
}

// exists reports whether path names something other than a directory.
func (g *Generator) exists(path string) bool {
	info, err := g.stat(path)
	return err == nil && !info.IsDir()
}
