package htmlpdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chromedp/chromedp"
)

// Converter prints HTML documents, with extra stylesheets, to PDF.
//
// A Converter owns one headless browser that is reused across conversions;
// each conversion gets its own tab. It is safe for concurrent use. Call
// [Converter.Close] to stop the browser.
type Converter struct {
	cfg     converterConfig
	browser *browser

	mu     sync.Mutex
	closed bool
}

// NewConverter starts a headless browser configured by opts.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	b, err := launchBrowser(cfg)
	if err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg, browser: b}, nil
}

// Close stops the browser. Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browser.shutdown()
	return nil
}

// ConvertFile prints the HTML file at path.
//
// The document is opened through its own file:// URL, so relative images,
// fonts and links resolve against its directory. The stylesheets are linked
// after the document's own styles in the order given, so later sheets
// override earlier ones; every one must load or the conversion fails with
// [ErrStylesheetLoad]. A nil pg means [DefaultPageConfig].
func (c *Converter) ConvertFile(ctx context.Context, path string, pg *PageConfig, stylesheets ...string) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("htmlpdf: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("htmlpdf: %w", err)
	}

	hrefs, err := stylesheetURLs(stylesheets)
	if err != nil {
		return nil, err
	}
	return c.print(ctx, fileURL(abs), pg, hrefs)
}

// ConvertHTML prints an in-memory document. The markup is staged in a
// temporary file, so relative references in it do not resolve; use
// [Converter.ConvertFile] for documents with their own assets.
func (c *Converter) ConvertHTML(ctx context.Context, html string, pg *PageConfig, stylesheets ...string) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "htmlpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("htmlpdf: staging document: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	_, err = f.WriteString(html)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("htmlpdf: staging document: %w", err)
	}

	return c.ConvertFile(ctx, name, pg, stylesheets...)
}

// print loads target in a fresh tab, links hrefs and prints the page.
func (c *Converter) print(ctx context.Context, target string, pg *PageConfig, hrefs []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("htmlpdf: conversion failed: %w", err)
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browser.ctx)
	defer tabCancel()

	// Tabs derive from the browser context, not ctx; close ours when ctx ends.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, c.cfg.timeout)
		defer cancel()
	}

	var pdf []byte
	actions := []chromedp.Action{
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if len(hrefs) > 0 {
		actions = append(actions, attachStylesheets(hrefs))
	}
	actions = append(actions,
		waitForFonts(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = pg.printParams().Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("htmlpdf: conversion failed: %w", err)
	}
	return &Result{data: pdf}, nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// fileURL returns the file:// URL of an absolute path.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/...
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// ConvertFile prints one file with a temporary [Converter]. Create a
// Converter with [NewConverter] to reuse the browser across documents.
func ConvertFile(ctx context.Context, path string, pg *PageConfig, stylesheets []string, opts ...Option) (*Result, error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.ConvertFile(ctx, path, pg, stylesheets...)
}

// ConvertHTML prints one in-memory document with a temporary [Converter].
func ConvertHTML(ctx context.Context, html string, pg *PageConfig, stylesheets []string, opts ...Option) (*Result, error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.ConvertHTML(ctx, html, pg, stylesheets...)
}
