// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

const (
	entriesSheet  = "Entries"
	maxSheetName  = 31
	cellSeparator = "; "
)

var entriesHeader = []any{"Class", "Grade", "Day", "Time", "Subject", "Teacher"}

// WriteXLSX writes the schedule to path as a workbook. The Entries sheet
// lists one row per slot, class by class; each class then gets its own
// sheet laid out as a timetable with time blocks down and days across.
func WriteXLSX(path string, s *types.ClassSchedule, layout types.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return fmt.Errorf("naming entries sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeEntries(f, s, bold); err != nil {
		return err
	}
	for _, class := range s.Classes() {
		if err := writeTimetable(f, class, s.Slots(class), layout, bold); err != nil {
			return err
		}
	}

	idx, err := f.GetSheetIndex(entriesSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeEntries(f *excelize.File, s *types.ClassSchedule, headerStyle int) error {
	if err := setRow(f, entriesSheet, 1, entriesHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(entriesSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("styling entries header: %w", err)
	}

	row := 2
	for _, class := range s.Classes() {
		for _, slot := range s.Slots(class) {
			values := []any{class, types.GradeOf(class), slot.Day, slot.Time, slot.Subject, slot.Teacher}
			if err := setRow(f, entriesSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	_ = f.SetColWidth(entriesSheet, "A", "D", 12)
	_ = f.SetColWidth(entriesSheet, "E", "E", 28)
	_ = f.SetColWidth(entriesSheet, "F", "F", 18)
	return nil
}

func writeTimetable(f *excelize.File, class string, slots []types.ClassSlot, layout types.Layout, headerStyle int) error {
	sheet := sheetName(class)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet for %s: %w", class, err)
	}

	blocks := append([]string(nil), layout.TimeBlocks...)
	for _, slot := range slots {
		if slot.Time == types.UnknownTimeBlock {
			blocks = append(blocks, types.UnknownTimeBlock)
			break
		}
	}

	rowOf := make(map[string]int, len(blocks))
	for i, b := range blocks {
		rowOf[b] = i + 2
	}
	colOf := make(map[string]int, len(layout.Days))
	for i, d := range layout.Days {
		colOf[d] = i + 2
	}

	header := []any{"Time"}
	for _, d := range layout.Days {
		header = append(header, d)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for _, b := range blocks {
		if err := setCell(f, sheet, 1, rowOf[b], b); err != nil {
			return err
		}
	}

	cells := make(map[[2]int][]string)
	for _, slot := range slots {
		row, okRow := rowOf[slot.Time]
		col, okCol := colOf[slot.Day]
		if !okRow || !okCol {
			continue
		}
		key := [2]int{col, row}
		cells[key] = append(cells[key], fmt.Sprintf("%s (%s)", slot.Subject, slot.Teacher))
	}
	for key, values := range cells {
		if err := setCell(f, sheet, key[0], key[1], strings.Join(values, cellSeparator)); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(layout.Days) + 1)
	if err != nil {
		return fmt.Errorf("sizing sheet %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("styling sheet %s: %w", sheet, err)
	}
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", last, 24)
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// sheetName makes a class identifier usable as a worksheet name.
func sheetName(class string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, class)
	if name == "" || strings.EqualFold(name, entriesSheet) {
		name = "Class " + name
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}
