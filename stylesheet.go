package htmlpdf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// attachScript appends one <link rel="stylesheet"> per href to the document
// head, in order, and resolves once every sheet has loaded. Insertion order,
// not load order, decides the cascade.
const attachScript = `(hrefs) => Promise.all(hrefs.map((href) => new Promise((resolve, reject) => {
	const link = document.createElement("link");
	link.rel = "stylesheet";
	link.href = href;
	link.onload = () => resolve(href);
	link.onerror = () => reject(new Error("cannot load " + href));
	(document.head || document.documentElement).appendChild(link);
})))`

// stylesheetURLs checks that every stylesheet exists and returns their
// file:// URLs in the same order.
func stylesheetURLs(paths []string) ([]string, error) {
	hrefs := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStylesheetLoad, p, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStylesheetLoad, err)
		}
		hrefs = append(hrefs, fileURL(abs))
	}
	return hrefs, nil
}

// stylesheetExpression builds the expression that runs attachScript.
func stylesheetExpression(hrefs []string) (string, error) {
	arg, err := json.Marshal(hrefs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s)(%s)", attachScript, arg), nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// attachStylesheets injects hrefs into the loaded page and waits for them.
func attachStylesheets(hrefs []string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		expr, err := stylesheetExpression(hrefs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStylesheetLoad, err)
		}
		var loaded []string
		if err := chromedp.Evaluate(expr, &loaded, awaitPromise).Do(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrStylesheetLoad, err)
		}
		return nil
	})
}

// waitForFonts blocks until web fonts referenced by the page are ready, so
// the PDF is not printed with fallback fonts.
func waitForFonts() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var ready bool
		return chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &ready, awaitPromise).Do(ctx)
	})
}
