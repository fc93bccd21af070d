// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDFConverter extracts page text with MuPDF. Its line breaks follow
// MuPDF's own text-block layout rather than row positions.
type MuPDFConverter struct{}

// NewMuPDFConverter creates a MuPDF-backed converter.
func NewMuPDFConverter() *MuPDFConverter {
	return &MuPDFConverter{}
}

// Convert concatenates the text of every page in page order.
func (c *MuPDFConverter) Convert(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i+1, pdfPath, err)
		}
		terminatePage(&b, text)
	}
	return b.String(), nil
}
