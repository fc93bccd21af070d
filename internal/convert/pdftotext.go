// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/schedule-parser/internal/container"
)

// pdftotextArgs make the tool read the PDF from stdin and write plain text
// to stdout. Pages are separated by form feeds, which SplitLines treats as
// line breaks.
var pdftotextArgs = []string{"-enc", "UTF-8", "-", "-"}

// PdftotextConverter converts PDFs by piping them through a pdftotext
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type PdftotextConverter struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextConverter creates a converter that runs image with rt. It
// verifies that the image exists locally before returning.
func NewPdftotextConverter(rt container.Runtime, image string) (*PdftotextConverter, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextConverter{runtime: rt, image: image}, nil
}

// Convert pipes the PDF at pdfPath through the container and returns the
// resulting text.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(p.image, pdftotextArgs, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with pdftotext: %w", pdfPath, err)
	}
	return out.String(), nil
}
