package htmlpdf_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	htmlpdf "github.com/porticus-lab/artifact-pdf"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func newTestConverter(t *testing.T) *htmlpdf.Converter {
	t.Helper()
	skipIfNoChrome(t)
	c, err := htmlpdf.NewConverter(htmlpdf.WithNoSandbox())
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// assertPDF fails the test unless res holds a complete PDF.
func assertPDF(t *testing.T, res *htmlpdf.Result) {
	t.Helper()
	if err := res.Verify(); err != nil {
		t.Fatalf("output is not a complete PDF: %v", err)
	}
}

var mediaBoxRe = regexp.MustCompile(`/MediaBox\s*\[\s*[-\d.]+\s+[-\d.]+\s+([\d.]+)\s+([\d.]+)`)

// firstMediaBox returns the width and height in points of the first page
// box in data.
func firstMediaBox(t *testing.T, data []byte) (w, h float64) {
	t.Helper()
	m := mediaBoxRe.FindSubmatch(data)
	if m == nil {
		t.Fatal("no /MediaBox in PDF")
	}
	w, _ = strconv.ParseFloat(string(m[1]), 64)
	h, _ = strconv.ParseFloat(string(m[2]), 64)
	return w, h
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertFile(t *testing.T) {
	c := newTestConverter(t)

	path := filepath.Join(t.TempDir(), "test.html")
	writeFile(t, path, "<h1>From File</h1>")

	res, err := c.ConvertFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	assertPDF(t, res)
	if err := res.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestConvertFile_WithStylesheets(t *testing.T) {
	c := newTestConverter(t)

	dir := t.TempDir()
	html := filepath.Join(dir, "output", "doc.html")
	writeFile(t, html, `<!DOCTYPE html><html><head><title>t</title></head>
<body><article class="markdown-body"><h1>Styled</h1><p>Body text</p></article></body></html>`)

	assets := filepath.Join(dir, "docs", "assets")
	sheets := []string{
		filepath.Join(assets, "github-markdown.css"),
		filepath.Join(assets, "style.css"),
		filepath.Join(assets, "pdf.css"),
	}
	// Conflicting @page sizes: the last sheet linked must win.
	writeFile(t, sheets[0], ".markdown-body { font-family: sans-serif; }\n@page { size: A5; }")
	writeFile(t, sheets[1], "h1 { color: #336699; }\n@page { size: A4; }")
	writeFile(t, sheets[2], "@page { size: A3; margin: 2cm; }")

	res, err := c.ConvertFile(context.Background(), html, nil, sheets...)
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	assertPDF(t, res)

	// A3 is 297 x 420 mm, 842 x 1191 pt.
	w, h := firstMediaBox(t, res.Bytes())
	if math.Abs(w-842) > 1 || math.Abs(h-1191) > 1 {
		t.Errorf("MediaBox = %v x %v pt, want A3 842 x 1191 from pdf.css", w, h)
	}
}

func TestConvertFile_RelativeImage(t *testing.T) {
	c := newTestConverter(t)

	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "img", "dot.png"), buf.String())

	tests := []struct {
		name      string
		src       string
		wantImage bool
	}{
		{"resolves against document dir", "img/dot.png", true},
		{"broken src", "img/missing.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := filepath.Join(dir, "page.html")
			writeFile(t, html, `<p><img src="`+tt.src+`" width="40" height="40" alt=""></p>`)

			res, err := c.ConvertFile(context.Background(), html, nil)
			if err != nil {
				t.Fatalf("ConvertFile: %v", err)
			}
			assertPDF(t, res)

			got := bytes.Contains(res.Bytes(), []byte("/Subtype /Image"))
			if got != tt.wantImage {
				t.Errorf("image XObject present = %v, want %v", got, tt.wantImage)
			}
		})
	}
}

func TestConvertFile_NotFound(t *testing.T) {
	c := newTestConverter(t)

	_, err := c.ConvertFile(context.Background(), "/nonexistent/file.html", nil)
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestConvertFile_MissingStylesheet(t *testing.T) {
	c := newTestConverter(t)

	dir := t.TempDir()
	html := filepath.Join(dir, "doc.html")
	writeFile(t, html, "<p>x</p>")

	_, err := c.ConvertFile(context.Background(), html, nil, filepath.Join(dir, "missing.css"))
	if !errors.Is(err, htmlpdf.ErrStylesheetLoad) {
		t.Fatalf("expected ErrStylesheetLoad, got %v", err)
	}
}

func TestConvertFile_CanceledContext(t *testing.T) {
	c := newTestConverter(t)

	html := filepath.Join(t.TempDir(), "doc.html")
	writeFile(t, html, "<p>x</p>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ConvertFile(ctx, html, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConvertFile_Timeout(t *testing.T) {
	skipIfNoChrome(t)

	c, err := htmlpdf.NewConverter(htmlpdf.WithNoSandbox(), htmlpdf.WithTimeout(time.Nanosecond))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	html := filepath.Join(t.TempDir(), "doc.html")
	writeFile(t, html, "<p>x</p>")

	if _, err := c.ConvertFile(context.Background(), html, nil); err == nil {
		t.Fatal("expected an error when the conversion deadline has passed")
	}
}

func TestConvertHTML_Basic(t *testing.T) {
	c := newTestConverter(t)

	res, err := c.ConvertHTML(context.Background(), "<h1>Hello World</h1>", nil)
	if err != nil {
		t.Fatalf("ConvertHTML: %v", err)
	}
	assertPDF(t, res)
	if res.Len() < 100 {
		t.Errorf("PDF unexpectedly small: %d bytes", res.Len())
	}
}

func TestConvertHTML_WithPageConfig(t *testing.T) {
	c := newTestConverter(t)

	page := &htmlpdf.PageConfig{
		Size:            htmlpdf.Letter,
		Orientation:     htmlpdf.Landscape,
		Margin:          htmlpdf.UniformMargin(2.0),
		Scale:           1.0,
		PrintBackground: true,
	}

	res, err := c.ConvertHTML(context.Background(), "<p>landscape</p>", page)
	if err != nil {
		t.Fatalf("ConvertHTML: %v", err)
	}
	assertPDF(t, res)
}

func TestConverter_CloseIdempotent(t *testing.T) {
	skipIfNoChrome(t)

	c, err := htmlpdf.NewConverter(htmlpdf.WithNoSandbox())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestConverter_UsedAfterClose(t *testing.T) {
	skipIfNoChrome(t)

	c, err := htmlpdf.NewConverter(htmlpdf.WithNoSandbox())
	if err != nil {
		t.Fatal(err)
	}
	c.Close()

	_, err = c.ConvertHTML(context.Background(), "<p>test</p>", nil)
	if !errors.Is(err, htmlpdf.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestConvertFile_PackageLevel(t *testing.T) {
	skipIfNoChrome(t)

	path := filepath.Join(t.TempDir(), "doc.html")
	writeFile(t, path, "<p>Package-level function</p>")

	res, err := htmlpdf.ConvertFile(context.Background(), path, nil, nil, htmlpdf.WithNoSandbox())
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	assertPDF(t, res)
}

func TestAllPageSizes(t *testing.T) {
	c := newTestConverter(t)

	for _, name := range []string{"a3", "a4", "a5", "letter", "legal", "tabloid"} {
		t.Run(name, func(t *testing.T) {
			size, ok := htmlpdf.PageSizeByName(name)
			if !ok {
				t.Fatalf("PageSizeByName(%q) not found", name)
			}
			res, err := c.ConvertHTML(context.Background(), "<p>"+name+"</p>", &htmlpdf.PageConfig{
				Size:            size,
				Scale:           1.0,
				PrintBackground: true,
			})
			if err != nil {
				t.Fatalf("ConvertHTML(%s): %v", name, err)
			}
			assertPDF(t, res)
		})
	}
}

func TestResult_WriteToFileFromBrowser(t *testing.T) {
	c := newTestConverter(t)

	res, err := c.ConvertHTML(context.Background(), "<p>file test</p>", nil)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := res.WriteToFile(path, 0o644); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:5]) != "%PDF-" {
		t.Fatal("written file does not start with a PDF header")
	}
	if len(data) != res.Len() {
		t.Errorf("written %d bytes, expected %d", len(data), res.Len())
	}
}
