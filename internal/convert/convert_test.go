// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// fakeConverter implements Converter for testing. It returns canned text or
// an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
}

func (f *fakeConverter) Convert(pdfPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// fakeRuntime implements container.Runtime for the pdftotext backend.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string                   { return "docker" }
func (f *fakeRuntime) Available() bool                { return true }
func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "trailing newline dropped", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "blank lines kept", in: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "crlf is one break", in: "Monday\r\n7A - Math (Lee)\r\n", want: []string{"Monday", "7A - Math (Lee)"}},
		{name: "lone cr", in: "a\rb", want: []string{"a", "b"}},
		{name: "form feed between pages", in: "page one\fpage two", want: []string{"page one", "page two"}},
		{name: "unicode separators", in: "a\u2028b\u2029c\u0085d", want: []string{"a", "b", "c", "d"}},
		{name: "record separators", in: "a\x1cb\x1dc\x1ed\ve", want: []string{"a", "b", "c", "d", "e"}},
		{name: "tab is not a break", in: "a\tb", want: []string{"a\tb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTerminatePage(t *testing.T) {
	var b strings.Builder
	terminatePage(&b, "Monday\n7A - Math (Lee)")
	terminatePage(&b, "")
	terminatePage(&b, "Tuesday\n")
	if got, want := b.String(), "Monday\n7A - Math (Lee)\nTuesday\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoinRow(t *testing.T) {
	// Glyph-per-fragment row: "7A" then a visible gap, then "-".
	row := pdf.TextHorizontal{
		{S: "A", X: 16, W: 6, FontSize: 10},
		{S: "7", X: 10, W: 6, FontSize: 10},
		{S: "-", X: 30, W: 4, FontSize: 10},
		{S: " Math", X: 34, W: 25, FontSize: 10},
	}
	if got, want := joinRow(row), "7A - Math"; got != want {
		t.Errorf("joinRow = %q, want %q", got, want)
	}
}

func TestJoinRow_ZeroFontSize(t *testing.T) {
	row := pdf.TextHorizontal{
		{S: "Mon", X: 0, W: 15},
		{S: "day", X: 15.5, W: 15},
		{S: "(Lee)", X: 40, W: 20},
	}
	if got, want := joinRow(row), "Monday (Lee)"; got != want {
		t.Errorf("joinRow = %q, want %q", got, want)
	}
}

func TestLines(t *testing.T) {
	conv := &fakeConverter{output: "Monday\n7A - Math (Lee)\n"}
	lines, err := Lines(conv, "schedule.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Monday" || lines[1] != "7A - Math (Lee)" {
		t.Errorf("lines = %q", lines)
	}

	_, err = Lines(&fakeConverter{err: errors.New("broken xref")}, "schedule.pdf")
	if err == nil || !strings.Contains(err.Error(), "broken xref") {
		t.Errorf("expected converter error, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend types.ExtractionBackend
		want    string
		wantErr bool
	}{
		{backend: "", want: "*convert.MuPDFConverter"},
		{backend: types.BackendTextLayer, want: "*convert.TextLayerConverter"},
		{backend: types.BackendMuPDF, want: "*convert.MuPDFConverter"},
		{backend: "ocr", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			c, err := New(types.ExtractionConfig{Backend: tt.backend})
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "unsupported backend") {
					t.Fatalf("expected unsupported backend error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(c); got != tt.want {
				t.Errorf("converter type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(c Converter) string {
	switch c.(type) {
	case *TextLayerConverter:
		return "*convert.TextLayerConverter"
	case *MuPDFConverter:
		return "*convert.MuPDFConverter"
	case *PdftotextConverter:
		return "*convert.PdftotextConverter"
	}
	return "unknown"
}

func TestTextLayerConverter_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := NewTextLayerConverter().Convert(missing)
	if err == nil {
		t.Fatal("expected error for missing PDF")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

// fixturePDF has two pages: Monday with two class rows, the first holding
// two tokens side by side, and Tuesday with one class row.
const fixturePDF = "testdata/schedule.pdf"

func TestTextLayerConverter_Fixture(t *testing.T) {
	lines, err := Lines(NewTextLayerConverter(), fixturePDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Monday",
		"7A - Math (Lee) 8B - Art (Roy)",
		"7A - English (Ng)",
		"Tuesday",
		"8B - Science & Nature (Smith)",
	}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestMuPDFConverter_Fixture(t *testing.T) {
	text, err := NewMuPDFConverter().Convert(fixturePDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Errorf("page text should end with a line break, got %q", text)
	}

	lines := SplitLines(text)
	for _, want := range []string{"Monday", "7A - English (Ng)", "Tuesday", "8B - Science & Nature (Smith)"} {
		if !containsLine(lines, want) {
			t.Errorf("no line containing %q in %q", want, lines)
		}
	}
	if !containsLine(lines, "7A - Math (Lee)") || !containsLine(lines, "8B - Art (Roy)") {
		t.Errorf("side-by-side tokens missing from %q", lines)
	}
	if strings.Index(text, "Monday") > strings.Index(text, "Tuesday") {
		t.Errorf("pages out of order: %q", text)
	}
}

func TestMuPDFConverter_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := NewMuPDFConverter().Convert(missing)
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("expected error naming %s, got %v", missing, err)
	}
}

func containsLine(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestPdftotextConverter(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "schedule.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	rt := &fakeRuntime{output: "Monday\n7A - Math (Lee)\f"}
	conv, err := NewPdftotextConverter(rt, types.DefaultPdftotextImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, err := Lines(conv, pdfPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[1] != "7A - Math (Lee)" {
		t.Errorf("lines = %q", lines)
	}
	if rt.gotInput != "%PDF-1.4 fake" {
		t.Errorf("container stdin = %q", rt.gotInput)
	}
	if strings.Join(rt.gotArgs, " ") != "-enc UTF-8 - -" {
		t.Errorf("args = %v", rt.gotArgs)
	}
}

func TestPdftotextConverter_Failures(t *testing.T) {
	if _, err := NewPdftotextConverter(&fakeRuntime{imageErr: errors.New("no such image")}, "pdftotext:latest"); err == nil {
		t.Error("expected error when image is missing")
	}

	pdfPath := filepath.Join(t.TempDir(), "schedule.pdf")
	if err := os.WriteFile(pdfPath, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	conv, err := NewPdftotextConverter(&fakeRuntime{runErr: errors.New("exit status 1")}, "pdftotext:latest")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conv.Convert(pdfPath); err == nil || !strings.Contains(err.Error(), "pdftotext") {
		t.Errorf("expected wrapped run error, got %v", err)
	}
}
