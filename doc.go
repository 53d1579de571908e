// Package htmlpdf prints HTML files to PDF with headless Chromium, driven over
// the Chrome DevTools Protocol.
//
// A [Converter] keeps one browser running and opens a tab per document:
//
//	c, err := htmlpdf.NewConverter(htmlpdf.WithTimeout(time.Minute))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	res, err := c.ConvertFile(ctx, "output/report.html", nil,
//	    "docs/assets/github-markdown.css",
//	    "docs/assets/style.css",
//	    "docs/assets/pdf.css",
//	)
//	if err != nil {
//	    return err
//	}
//	return res.WriteToFile("output/report.pdf", 0o644)
//
// Documents are opened from their own file:// URL, so relative images and
// fonts resolve next to the HTML file. Extra stylesheets are linked after the
// document's own styles in argument order and must all load before the page
// is printed; @page rules in them take precedence over [PageConfig] sizes.
//
// [Result.WriteToFile] checks that the bytes form a complete PDF and swaps the
// file into place with a rename, so a failed run never leaves a truncated PDF
// behind. [ConvertFile] and [ConvertHTML] are one-shot variants that start and
// stop their own browser.
//
// Chromium is found in the usual install locations, taken from
// [WithChromePath], or downloaded once with [WithAutoDownload].
package htmlpdf
