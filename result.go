package htmlpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/porticus-lab/artifact-pdf/internal/pdfcheck"
)

// Result is a printed PDF held in memory. Nothing reaches the filesystem
// until [Result.WriteToFile] is called.
type Result struct {
	data []byte
}

// Bytes returns the PDF. The slice is shared, not copied.
func (r *Result) Bytes() []byte {
	return r.data
}

// Base64 returns the PDF in standard base64, e.g. for a data: URL or JSON.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns a new reader positioned at the start of the PDF.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// Verify checks that the content is a structurally complete PDF: a %PDF
// header, a startxref offset inside the data and a trailing %%EOF marker.
func (r *Result) Verify() error {
	if _, err := pdfcheck.Inspect(r.data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return nil
}

// WriteToFile verifies the PDF and writes it to path, replacing any
// existing file. The content goes to a temporary file in the same directory
// first and is renamed into place, so path never holds a partial PDF.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	if err := r.Verify(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("htmlpdf: creating temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(r.data); err != nil {
		return fmt.Errorf("htmlpdf: writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("htmlpdf: syncing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("htmlpdf: setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("htmlpdf: closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("htmlpdf: replacing %s: %w", path, err)
	}
	return nil
}
