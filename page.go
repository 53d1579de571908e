package htmlpdf

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/page"
)

const cmPerInch = 2.54

// PageSize is a sheet of paper in centimeters, portrait side up.
type PageSize struct {
	Width  float64
	Height float64
}

// ISO 216 and North American paper sizes.
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

var pageSizesByName = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// PageSizeByName looks up a paper size by case-insensitive name, e.g. "a4"
// or "Letter".
func PageSizeByName(name string) (PageSize, bool) {
	s, ok := pageSizesByName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// ParseOrientation maps "portrait" or "landscape" to an Orientation.
// An empty string yields Portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("htmlpdf: unknown orientation %q", s)
}

// Margin holds page margins in centimeters.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// UniformMargin returns a Margin of cm on every side.
func UniformMargin(cm float64) *Margin {
	return &Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig is the fallback print setup for a document. Stylesheets that
// declare @page rules override Size and Margin while PreferCSSPageSize is set.
//
// A nil PageConfig means [DefaultPageConfig]. In a non-nil one, a zero Size
// or Scale and a nil Margin take the default; the boolean fields are used as
// given.
type PageConfig struct {
	Size        PageSize
	Orientation Orientation

	// Margin is nil for 1 cm on every side. A zero Margin prints edge to edge.
	Margin *Margin

	// Scale of the rendered content, between 0.1 and 2.0.
	Scale float64

	// PrintBackground keeps background colors and images.
	PrintBackground bool

	// PreferCSSPageSize lets an @page size in the document win over Size.
	PreferCSSPageSize bool

	// Outline embeds a bookmark tree built from the document's headings.
	Outline bool
}

// DefaultPageConfig returns A4 portrait with 1 cm margins at scale 1, with
// backgrounds printed, @page sizes honored and a heading outline embedded.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:              A4,
		Orientation:       Portrait,
		Margin:            UniformMargin(1.0),
		Scale:             1.0,
		PrintBackground:   true,
		PreferCSSPageSize: true,
		Outline:           true,
	}
}

// resolved returns a copy of p with unset dimensions replaced by the
// defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Scale <= 0 {
		r.Scale = d.Scale
	}
	if r.Margin == nil {
		r.Margin = d.Margin
	}
	return r
}

// printParams translates p into a Page.printToPDF request. Chrome measures
// paper and margins in inches and applies the landscape swap itself.
func (p *PageConfig) printParams() *page.PrintToPDFParams {
	r := p.resolved()
	return page.PrintToPDF().
		WithPaperWidth(r.Size.Width / cmPerInch).
		WithPaperHeight(r.Size.Height / cmPerInch).
		WithMarginTop(r.Margin.Top / cmPerInch).
		WithMarginRight(r.Margin.Right / cmPerInch).
		WithMarginBottom(r.Margin.Bottom / cmPerInch).
		WithMarginLeft(r.Margin.Left / cmPerInch).
		WithLandscape(r.Orientation == Landscape).
		WithScale(r.Scale).
		WithPrintBackground(r.PrintBackground).
		WithPreferCSSPageSize(r.PreferCSSPageSize).
		WithGenerateDocumentOutline(r.Outline)
}
