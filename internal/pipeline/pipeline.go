// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one schedule parse: extract the PDF text, classify
// the lines onto the weekly grid, group by class, and write the outputs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/schedule-parser/internal/convert"
	"github.com/pdiddy/schedule-parser/internal/export"
	"github.com/pdiddy/schedule-parser/internal/schedule"
	"github.com/pdiddy/schedule-parser/internal/store"
	"github.com/pdiddy/schedule-parser/pkg/types"
)

// Result summarizes a parse run.
type Result struct {
	Entries int
	Classes int
	Unknown int
}

// Run parses cfg.PDFPath with conv and writes the grouped schedule to
// cfg.OutputJSON, then to any optional YAML, XLSX, or index targets set in
// cfg. A confirmation line for each written file goes to w. Nothing is
// written when text extraction fails. Classification tracing goes to
// slog.Default().
func Run(ctx context.Context, cfg types.ParseConfig, conv convert.Converter, w io.Writer) (Result, error) {
	return RunWithLogger(ctx, cfg, conv, w, slog.Default())
}

// RunWithLogger is Run with an explicit logger for classification tracing.
func RunWithLogger(ctx context.Context, cfg types.ParseConfig, conv convert.Converter, w io.Writer, log *slog.Logger) (Result, error) {
	lines, err := convert.Lines(conv, cfg.PDFPath)
	if err != nil {
		return Result{}, fmt.Errorf("extracting text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	layout := types.DefaultLayout()
	entries := schedule.NewClassifier(layout, log).Classify(lines)
	grouped := schedule.Group(entries)
	res := Result{
		Entries: len(entries),
		Classes: len(grouped.Classes()),
		Unknown: schedule.CountUnknown(entries),
	}
	log.Info("classified schedule",
		"lines", len(lines), "entries", res.Entries,
		"classes", res.Classes, "unknown", res.Unknown)

	if err := export.WriteJSON(cfg.OutputJSON, grouped); err != nil {
		return res, err
	}
	fmt.Fprintf(w, "Schedule saved to: %s\n", cfg.OutputJSON)

	if cfg.OutputYAML != "" {
		if err := export.WriteYAML(cfg.OutputYAML, grouped); err != nil {
			return res, err
		}
		fmt.Fprintf(w, "YAML saved to: %s\n", cfg.OutputYAML)
	}

	if cfg.OutputXLSX != "" {
		if err := export.WriteXLSX(cfg.OutputXLSX, grouped, layout); err != nil {
			return res, err
		}
		fmt.Fprintf(w, "Workbook saved to: %s\n", cfg.OutputXLSX)
	}

	if cfg.DBPath != "" {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := saveIndex(ctx, cfg, entries); err != nil {
			return res, err
		}
		fmt.Fprintf(w, "Indexed %d entries in: %s\n", len(entries), cfg.DBPath)
	}

	return res, nil
}

func saveIndex(ctx context.Context, cfg types.ParseConfig, entries []types.ScheduleEntry) error {
	s, err := store.NewStore(cfg.IndexConfig)
	if err != nil {
		return fmt.Errorf("opening schedule index: %w", err)
	}
	defer s.Close()

	if err := s.Save(ctx, cfg.PDFPath, entries); err != nil {
		return fmt.Errorf("indexing %s: %w", cfg.PDFPath, err)
	}
	return nil
}
