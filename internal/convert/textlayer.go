// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// spaceGapRatio is the horizontal gap, as a fraction of the font size,
// beyond which two fragments on one row are separated by a space.
const spaceGapRatio = 0.2

// TextLayerConverter reads the embedded text layer with a pure-Go PDF
// reader. It needs no external tools.
type TextLayerConverter struct{}

// NewTextLayerConverter creates a pure-Go converter.
func NewTextLayerConverter() *TextLayerConverter {
	return &TextLayerConverter{}
}

// Convert reads every page row by row, top to bottom, and returns one line
// per row.
func (c *TextLayerConverter) Convert(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		var pageText strings.Builder
		for _, row := range rows {
			pageText.WriteString(joinRow(row.Content))
			pageText.WriteByte('\n')
		}
		terminatePage(&b, pageText.String())
	}
	return b.String(), nil
}

// joinRow concatenates the fragments of one row left to right, inserting a
// space where the fragments are visibly apart.
func joinRow(texts pdf.TextHorizontal) string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		b       strings.Builder
		prevEnd float64
		prevS   string
	)
	for i, t := range sorted {
		if i > 0 && needsSpace(prevS, t, prevEnd) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		prevS = t.S
	}
	return b.String()
}

func needsSpace(prev string, next pdf.Text, prevEnd float64) bool {
	if strings.HasSuffix(prev, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	threshold := spaceGapRatio * next.FontSize
	if threshold <= 0 {
		threshold = 1
	}
	return next.X-prevEnd > threshold
}
