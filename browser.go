package htmlpdf

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
)

// browser is one headless Chromium process and its root tab.
type browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// launchBrowser starts Chromium eagerly so a missing or broken executable is
// reported here rather than on the first conversion.
func launchBrowser(cfg converterConfig) (*browser, error) {
	opts, err := cfg.allocatorOptions()
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("htmlpdf: starting browser: %w", err)
	}
	return &browser{ctx: ctx, cancel: cancel, allocCancel: allocCancel}, nil
}

// shutdown kills the browser process.
func (b *browser) shutdown() {
	b.cancel()
	b.allocCancel()
}

// allocatorOptions returns the Chromium command line for cfg.
func (c converterConfig) allocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	execPath, err := c.chromeExecutable()
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		// @font-face sources under file:// are CORS-checked without it.
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	if c.noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts, nil
}

// chromeExecutable returns the executable to launch, or "" to let chromedp
// search the standard locations.
func (c converterConfig) chromeExecutable() (string, error) {
	switch {
	case c.chromePath != "":
		return c.chromePath, nil
	case c.autoDownload:
		// Cached under ~/.cache/rod/browser, so only the first run downloads.
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return "", fmt.Errorf("htmlpdf: downloading browser: %w", err)
		}
		return path, nil
	}
	return "", nil
}
