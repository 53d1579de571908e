package htmlpdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Converter].
	ErrClosed = errors.New("htmlpdf: converter is closed")

	// ErrStylesheetLoad is returned when an attached stylesheet cannot be loaded.
	ErrStylesheetLoad = errors.New("htmlpdf: stylesheet failed to load")

	// ErrInvalidPDF is returned when the rendered bytes are not a complete PDF.
	ErrInvalidPDF = errors.New("htmlpdf: invalid PDF output")
)
