// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule turns extracted schedule text into entries placed on the
// weekly grid and groups those entries by class.
package schedule

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// classEntryPattern matches tokens such as "7A - Science & Nature (Smith)".
// \d and \w are spelled as Unicode classes so non-ASCII names still match.
var classEntryPattern = regexp.MustCompile(
	`(?P<class>\p{Nd}+[A-Z]) - (?P<subject>[\p{L}\p{N}_ &]+) \((?P<teacher>[\p{L}\p{N}_]+)\)`,
)

var (
	groupClass   = classEntryPattern.SubexpIndex("class")
	groupSubject = classEntryPattern.SubexpIndex("subject")
	groupTeacher = classEntryPattern.SubexpIndex("teacher")
)

// Classifier assigns class tokens to days and time blocks by the order in
// which their lines appear.
type Classifier struct {
	layout types.Layout
	log    *slog.Logger
}

// NewClassifier returns a classifier for layout. A nil logger discards
// trace output.
func NewClassifier(layout types.Layout, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Classifier{layout: layout, log: log}
}

// DayIndex returns the index of the first day label, in canonical day
// order, that occurs anywhere in line, or -1 if none does. A line holding
// "Tuesday / Monday" resolves to Monday.
func (c *Classifier) DayIndex(line string) int {
	for i, day := range c.layout.Days {
		if strings.Contains(line, day) {
			return i
		}
	}
	return -1
}

// IsClassRow reports whether line holds at least one class token.
func IsClassRow(line string) bool {
	return classEntryPattern.MatchString(line)
}

// FilterLines keeps the lines that carry a day label or a class token,
// trimmed of surrounding whitespace.
func (c *Classifier) FilterLines(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if c.DayIndex(line) >= 0 || IsClassRow(line) {
			kept = append(kept, strings.TrimSpace(line))
		}
	}
	return kept
}

// Classify scans lines once and emits an entry for every class token.
//
// A line with a day label switches the current day and restarts the time
// blocks; any class tokens on that line are ignored. Every other kept line
// is a class row: all its tokens share the current time block, and the
// block advances by one afterwards. Rows past the last block get
// types.UnknownTimeBlock. Class rows seen before any day label belong to
// the first day.
func (c *Classifier) Classify(lines []string) []types.ScheduleEntry {
	var (
		entries  []types.ScheduleEntry
		dayIdx   int
		blockIdx int
	)

	for _, line := range c.FilterLines(lines) {
		if d := c.DayIndex(line); d >= 0 {
			dayIdx = d
			blockIdx = 0
			c.log.Debug("day header", "day", c.layout.Day(dayIdx), "line", line)
			continue
		}

		day := c.layout.Day(dayIdx)
		timeBlock := c.layout.TimeBlock(blockIdx)
		for _, m := range classEntryPattern.FindAllStringSubmatch(line, -1) {
			entries = append(entries, types.NewScheduleEntry(
				day, timeBlock, m[groupClass], m[groupSubject], m[groupTeacher],
			))
		}
		if timeBlock == types.UnknownTimeBlock {
			c.log.Debug("row past last time block",
				"day", day, "row", blockIdx, "line", line)
		} else {
			c.log.Debug("class row", "day", day, "time", timeBlock, "line", line)
		}
		blockIdx++
	}

	return entries
}
