package generator

import (
	"context"
	"os"
	"sync"

	htmlpdf "github.com/porticus-lab/artifact-pdf"
)

// ChromeRenderer renders jobs with headless Chromium. The browser is started
// on the first Render call, so runs that fail their file checks never
// launch it.
type ChromeRenderer struct {
	page *htmlpdf.PageConfig
	opts []htmlpdf.Option
	perm os.FileMode

	mu   sync.Mutex
	conv *htmlpdf.Converter
}

// NewChromeRenderer returns a ChromeRenderer printing with page settings pg
// (nil for defaults) and converter options opts.
func NewChromeRenderer(pg *htmlpdf.PageConfig, opts ...htmlpdf.Option) *ChromeRenderer {
	return &ChromeRenderer{page: pg, opts: opts, perm: 0o644}
}

// Render prints job.HTML with its stylesheets and atomically replaces
// job.Output with the result.
func (r *ChromeRenderer) Render(ctx context.Context, job RenderJob) (int64, error) {
	conv, err := r.converter()
	if err != nil {
		return 0, err
	}

	res, err := conv.ConvertFile(ctx, job.HTML, r.page, job.Stylesheets...)
	if err != nil {
		return 0, err
	}
	if err := res.WriteToFile(job.Output, r.perm); err != nil {
		return 0, err
	}
	return int64(res.Len()), nil
}

// Close stops the browser if it was started.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conv == nil {
		return nil
	}
	err := r.conv.Close()
	r.conv = nil
	return err
}

func (r *ChromeRenderer) converter() (*htmlpdf.Converter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conv != nil {
		return r.conv, nil
	}
	conv, err := htmlpdf.NewConverter(r.opts...)
	if err != nil {
		return nil, err
	}
	r.conv = conv
	return conv, nil
}
