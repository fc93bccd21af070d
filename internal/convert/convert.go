// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts the text layer of a PDF schedule with pluggable
// backends and splits it into lines.
package convert

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/schedule-parser/internal/container"
	"github.com/pdiddy/schedule-parser/pkg/types"
)

// Converter extracts the text of every page of a PDF. Different backends
// (textlayer, mupdf, pdftotext) implement this interface.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns the text of all pages
	// concatenated in page order. Each page's text ends with a line break.
	Convert(pdfPath string) (string, error)
}

// New returns the converter selected by cfg.Backend. An empty backend
// selects mupdf.
func New(cfg types.ExtractionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendMuPDF, "":
		return NewMuPDFConverter(), nil
	case types.BackendTextLayer:
		return NewTextLayerConverter(), nil
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		image := cfg.ContainerImage
		if image == "" {
			image = types.DefaultPdftotextImage
		}
		return NewPdftotextConverter(rt, image)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use %s, %s, or %s",
			cfg.Backend, types.BackendMuPDF, types.BackendTextLayer, types.BackendPdftotext)
	}
}

// Lines converts the PDF at pdfPath and splits the text into lines.
func Lines(c Converter, pdfPath string) ([]string, error) {
	text, err := c.Convert(pdfPath)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// SplitLines breaks text at every line boundary: \n, \r, \r\n, \v, \f,
// the file/group/record separators, NEL, and the Unicode line and
// paragraph separators. A trailing boundary does not produce an empty
// final line.
func SplitLines(text string) []string {
	var (
		lines []string
		start int
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// terminatePage appends a line break to page text that does not already
// end with one, so the last row of a page never joins the first row of the
// next.
func terminatePage(b *strings.Builder, text string) {
	b.WriteString(text)
	if text == "" {
		return
	}
	if last, _ := utf8.DecodeLastRuneInString(text); !isLineBreak(last) {
		b.WriteByte('\n')
	}
}
