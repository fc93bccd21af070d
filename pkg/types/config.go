// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default input and output locations used when no flag, environment
// variable, or config file entry overrides them.
const (
	DefaultPDFPath    = "Middle School Schedule 24-25.pdf"
	DefaultOutputJSON = "class_schedule.json"
)

// ExtractionBackend identifies the PDF text-extraction tool.
type ExtractionBackend string

const (
	BackendTextLayer ExtractionBackend = "textlayer"
	BackendMuPDF     ExtractionBackend = "mupdf"
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// DefaultPdftotextImage is the container image used by the pdftotext backend.
// The image must read a PDF on stdin and write text on stdout.
const DefaultPdftotextImage = "pdftotext:latest"

// ExtractionConfig holds settings for the text-extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: mupdf, textlayer, or pdftotext.
	// Empty selects mupdf.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// ContainerImage is the image run by the pdftotext backend.
	ContainerImage string `json:"container_image" yaml:"container_image" mapstructure:"container_image"`
}

// IndexConfig holds settings for the SQLite schedule index.
type IndexConfig struct {
	// DBPath is the SQLite database file. Empty disables the index.
	DBPath string `json:"index_db" yaml:"index_db" mapstructure:"index_db"`
}

// ParseConfig groups everything one parse run needs.
type ParseConfig struct {
	ExtractionConfig `yaml:",inline" mapstructure:",squash"`
	IndexConfig      `yaml:",inline" mapstructure:",squash"`

	// PDFPath is the source schedule document.
	PDFPath string `json:"pdf_path" yaml:"pdf_path" mapstructure:"pdf_path"`

	// OutputJSON is where the grouped schedule is written.
	OutputJSON string `json:"output_json" yaml:"output_json" mapstructure:"output_json"`

	// OutputYAML optionally receives the same schedule as YAML.
	OutputYAML string `json:"output_yaml,omitempty" yaml:"output_yaml,omitempty" mapstructure:"output_yaml"`

	// OutputXLSX optionally receives an XLSX workbook of the schedule.
	OutputXLSX string `json:"output_xlsx,omitempty" yaml:"output_xlsx,omitempty" mapstructure:"output_xlsx"`
}

// DefaultParseConfig returns the configuration of a run with no overrides.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		ExtractionConfig: ExtractionConfig{
			Backend:        BackendMuPDF,
			ContainerImage: DefaultPdftotextImage,
		},
		PDFPath:    DefaultPDFPath,
		OutputJSON: DefaultOutputJSON,
	}
}
