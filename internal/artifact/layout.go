// Package artifact derives the on-disk locations used to turn one rendered
// HTML artifact into a PDF.
//
// The layout is fixed relative to a base directory:
//
//	<base>/output/<id>.html     input document
//	<base>/output/<id>.pdf      generated PDF
//	<base>/docs/assets/*.css    stylesheets, applied in cascade order
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory and file names of the fixed layout.
const (
	OutputDir = "output"
	AssetsDir = "docs/assets"

	HTMLExt = ".html"
	PDFExt  = ".pdf"
)

var (
	ErrInvalidID   = errors.New("invalid artifact identifier")
	ErrEscapesBase = errors.New("path escapes base directory")
	ErrEmptyBase   = errors.New("base directory is required")
)

// Stylesheet is one member of the fixed stylesheet set.
type Stylesheet struct {
	Role string // label used in diagnostics, e.g. "custom_css"
	Name string // file name inside the assets directory
	Path string
}

// stylesheetSet lists the stylesheets in cascade order: later entries
// override earlier ones.
var stylesheetSet = []struct{ role, name string }{
	{"markdown_css", "github-markdown.css"},
	{"custom_css", "style.css"},
	{"pdf_css", "pdf.css"},
}

// Stylesheets returns the fixed stylesheet set rooted at assetsDir, in
// cascade order.
func Stylesheets(assetsDir string) []Stylesheet {
	sheets := make([]Stylesheet, 0, len(stylesheetSet))
	for _, s := range stylesheetSet {
		sheets = append(sheets, Stylesheet{
			Role: s.role,
			Name: s.name,
			Path: filepath.Join(assetsDir, s.name),
		})
	}
	return sheets
}

// Paths holds every location derived from one artifact identifier.
type Paths struct {
	ID          string
	HTML        string
	PDF         string
	AssetsDir   string
	Stylesheets []Stylesheet
}

// StylesheetPaths returns the stylesheet file paths in cascade order.
func (p Paths) StylesheetPaths() []string {
	out := make([]string, len(p.Stylesheets))
	for i, s := range p.Stylesheets {
		out[i] = s.Path
	}
	return out
}

// Layout resolves artifact paths under a base directory.
type Layout struct {
	base string
}

// NewLayout returns a Layout rooted at base, made absolute and cleaned.
func NewLayout(base string) (Layout, error) {
	if strings.TrimSpace(base) == "" {
		return Layout{}, ErrEmptyBase
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving base directory: %w", err)
	}
	return Layout{base: abs}, nil
}

// Base returns the absolute base directory.
func (l Layout) Base() string { return l.base }

// Paths validates id and derives its input, output and asset locations.
func (l Layout) Paths(id string) (Paths, error) {
	if err := ValidateID(id); err != nil {
		return Paths{}, err
	}

	outputDir := filepath.Join(l.base, OutputDir)
	htmlPath, err := l.contain(filepath.Join(outputDir, id+HTMLExt))
	if err != nil {
		return Paths{}, err
	}
	pdfPath, err := l.contain(filepath.Join(outputDir, id+PDFExt))
	if err != nil {
		return Paths{}, err
	}

	// The assets live next to the output directory: <output>/../docs/assets.
	assetsDir, err := l.contain(filepath.Join(filepath.Dir(htmlPath), "..", filepath.FromSlash(AssetsDir)))
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		ID:          id,
		HTML:        htmlPath,
		PDF:         pdfPath,
		AssetsDir:   assetsDir,
		Stylesheets: Stylesheets(assetsDir),
	}, nil
}

// contain rejects target when, once cleaned, it is not inside the base.
func (l Layout) contain(target string) (string, error) {
	clean := filepath.Clean(target)
	prefix := l.base
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	if clean != l.base && !strings.HasPrefix(clean, prefix) {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, target)
	}
	return clean, nil
}

// ValidateID rejects identifiers that could address files outside the
// output directory.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	case strings.ContainsRune(id, 0):
		return fmt.Errorf("%w: contains a NUL byte", ErrInvalidID)
	}
	return nil
}
