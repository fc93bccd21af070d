// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schedule-parser/internal/convert"
	"github.com/pdiddy/schedule-parser/internal/pipeline"
	"github.com/pdiddy/schedule-parser/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse the schedule PDF and write the class schedule",
	Long: `Parse extracts the text of the schedule PDF, assigns each class token to
a day and time block, groups the entries by class, and writes the result
as JSON. Optional flags also write YAML, an XLSX workbook, or save the
entries to a SQLite index for lookup.

Settings come from flags, SCHEDULE_PARSER_* environment variables (a .env
file in the working directory is loaded first), or schedule-parser.yaml.`,
	RunE: runParse,
}

// parseFlags maps parse flags to their config keys.
var parseFlags = []struct {
	flag, key string
}{
	{"pdf", "pdf_path"},
	{"output", "output_json"},
	{"yaml", "output_yaml"},
	{"xlsx", "output_xlsx"},
	{"index-db", "index_db"},
	{"backend", "backend"},
	{"container-image", "container_image"},
}

func addParseFlags(cmd *cobra.Command) {
	def := types.DefaultParseConfig()
	cmd.Flags().String("pdf", def.PDFPath, "schedule PDF to parse")
	cmd.Flags().StringP("output", "o", def.OutputJSON, "JSON output file")
	cmd.Flags().String("yaml", "", "also write the schedule as YAML to this file")
	cmd.Flags().String("xlsx", "", "also write an XLSX workbook to this file")
	cmd.Flags().String("index-db", "", "also save entries to this SQLite index")
	cmd.Flags().String("backend", string(def.Backend), "text extraction backend: mupdf, textlayer, or pdftotext")
	cmd.Flags().String("container-image", def.ContainerImage, "container image for the pdftotext backend")
}

// parseConfig resolves the parse settings for cmd. Flags set on the command
// line win over environment variables, which win over the config file.
func parseConfig(cmd *cobra.Command) (types.ParseConfig, error) {
	for _, f := range parseFlags {
		if err := viper.BindPFlag(f.key, cmd.Flags().Lookup(f.flag)); err != nil {
			return types.ParseConfig{}, fmt.Errorf("binding --%s: %w", f.flag, err)
		}
	}

	cfg := types.ParseConfig{
		ExtractionConfig: types.ExtractionConfig{
			Backend:        types.ExtractionBackend(viper.GetString("backend")),
			ContainerImage: viper.GetString("container_image"),
		},
		IndexConfig: types.IndexConfig{
			DBPath: viper.GetString("index_db"),
		},
		PDFPath:    viper.GetString("pdf_path"),
		OutputJSON: viper.GetString("output_json"),
		OutputYAML: viper.GetString("output_yaml"),
		OutputXLSX: viper.GetString("output_xlsx"),
	}
	if cfg.PDFPath == "" {
		return cfg, fmt.Errorf("no schedule PDF configured: set --pdf")
	}
	if cfg.OutputJSON == "" {
		return cfg, fmt.Errorf("no JSON output configured: set --output")
	}
	return cfg, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}

	conv, err := convert.New(cfg.ExtractionConfig)
	if err != nil {
		return err
	}

	_, err = pipeline.Run(context.Background(), cfg, conv, os.Stdout)
	return err
}

func init() {
	addParseFlags(parseCmd)
	rootCmd.AddCommand(parseCmd)
}
