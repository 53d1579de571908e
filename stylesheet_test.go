package htmlpdf

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFileURL(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/out/report.html", "file:///tmp/out/report.html"},
		{"/tmp/my docs/a#b.css", "file:///tmp/my%20docs/a%23b.css"},
	}
	for _, tt := range tests {
		if got := fileURL(tt.path); got != tt.want {
			t.Errorf("fileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStylesheetURLs_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"github-markdown.css", "style.css", "pdf.css"}
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("body{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	hrefs, err := stylesheetURLs(paths)
	if err != nil {
		t.Fatalf("stylesheetURLs: %v", err)
	}
	if len(hrefs) != len(names) {
		t.Fatalf("got %d hrefs, want %d", len(hrefs), len(names))
	}
	for i, n := range names {
		if !strings.HasPrefix(hrefs[i], "file://") || !strings.HasSuffix(hrefs[i], "/"+n) {
			t.Errorf("hrefs[%d] = %q, want file URL ending in %s", i, hrefs[i], n)
		}
	}
}

func TestStylesheetURLs_Missing(t *testing.T) {
	_, err := stylesheetURLs([]string{filepath.Join(t.TempDir(), "nope.css")})
	if !errors.Is(err, ErrStylesheetLoad) {
		t.Fatalf("stylesheetURLs(missing) = %v, want ErrStylesheetLoad", err)
	}
}

func TestStylesheetExpression(t *testing.T) {
	expr, err := stylesheetExpression([]string{"file:///a.css", "file:///b.css"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(expr, "((hrefs) =>") {
		t.Errorf("expression does not start with the attach function: %.40s", expr)
	}
	if !strings.HasSuffix(expr, `)(["file:///a.css","file:///b.css"])`) {
		t.Errorf("expression does not end with the ordered href list: %s", expr[len(expr)-60:])
	}
}
