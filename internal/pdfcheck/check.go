// Package pdfcheck performs a cheap structural check on PDF bytes produced by
// the renderer before they are allowed to replace an output file.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotPDF    = errors.New("pdfcheck: not a PDF file")
	ErrTruncated = errors.New("pdfcheck: missing end-of-file marker")
	ErrBadXRef   = errors.New("pdfcheck: invalid startxref")
)

// tailWindow is how far from the end of the file startxref and %%EOF are searched.
const tailWindow = 1024

// Info describes a PDF that passed inspection.
type Info struct {
	Version   string // e.g. "1.4"
	StartXRef int64  // byte offset of the cross-reference section
	Size      int
}

// Inspect checks the %PDF-n.n header, the trailing %%EOF marker and that the
// startxref offset points inside the file.
func Inspect(data []byte) (Info, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return Info{}, ErrNotPDF
	}

	tail := data[max(0, len(data)-tailWindow):]
	if !bytes.Contains(tail, []byte("%%EOF")) {
		return Info{}, ErrTruncated
	}

	offset, err := startXRef(tail)
	if err != nil {
		return Info{}, err
	}
	if offset <= 0 || offset >= int64(len(data)) {
		return Info{}, fmt.Errorf("%w: offset %d outside file of %d bytes", ErrBadXRef, offset, len(data))
	}

	return Info{
		Version:   version(data),
		StartXRef: offset,
		Size:      len(data),
	}, nil
}

// version returns the header version string, or "?" when it cannot be read.
func version(data []byte) string {
	if len(data) < 8 {
		return "?"
	}
	head := data[5:min(len(data), 20)]
	end := bytes.IndexAny(head, "\r\n")
	if end < 0 {
		end = len(head)
	}
	v := strings.TrimSpace(string(head[:end]))
	if v == "" {
		return "?"
	}
	return v
}

func startXRef(tail []byte) (int64, error) {
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("%w: keyword not found", ErrBadXRef)
	}
	pos := idx + len("startxref")
	for pos < len(tail) && isWhitespace(tail[pos]) {
		pos++
	}
	end := pos
	for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
		end++
	}
	if end == pos {
		return 0, fmt.Errorf("%w: no offset value", ErrBadXRef)
	}
	offset, err := strconv.ParseInt(string(tail[pos:end]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadXRef, err)
	}
	return offset, nil
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}
