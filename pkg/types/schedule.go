// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// UnknownTimeBlock is recorded when a day block has more class rows than
// there are time blocks.
const UnknownTimeBlock = "Unknown"

// Days are the weekday labels in canonical order. They serve both as header
// tokens in the source text and as the day index.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeBlocks are the class-period labels in order. A row's time block is
// chosen by its position within the day, never parsed from the text.
var TimeBlocks = []string{
	"7:50-8:15", "8:15-9:10", "9:10-10:05", "10:05-10:20", "10:20-10:40",
	"10:40-11:35", "11:35-12:25", "12:25-12:40", "12:40-1:00", "1:00-1:55", "1:55-2:50",
}

// Layout pairs the day labels with the time-block labels of a schedule.
type Layout struct {
	Days       []string
	TimeBlocks []string
}

// DefaultLayout returns the fixed five-day, eleven-block layout.
func DefaultLayout() Layout {
	return Layout{
		Days:       append([]string(nil), Days...),
		TimeBlocks: append([]string(nil), TimeBlocks...),
	}
}

// TimeBlock returns the label for the block at index i, or UnknownTimeBlock
// when i is out of range.
func (l Layout) TimeBlock(i int) string {
	if i < 0 || i >= len(l.TimeBlocks) {
		return UnknownTimeBlock
	}
	return l.TimeBlocks[i]
}

// Day returns the label for day index i. Out-of-range indexes fall back to
// the first day.
func (l Layout) Day(i int) string {
	if len(l.Days) == 0 {
		return ""
	}
	if i < 0 || i >= len(l.Days) {
		return l.Days[0]
	}
	return l.Days[i]
}

// ScheduleEntry is one recognized class token placed on the weekly grid.
type ScheduleEntry struct {
	Day     string `json:"day" yaml:"day"`
	Time    string `json:"time" yaml:"time"`
	Class   string `json:"class" yaml:"class"`
	Grade   string `json:"grade" yaml:"grade"`
	Subject string `json:"subject" yaml:"subject"`
	Teacher string `json:"teacher" yaml:"teacher"`
}

// NewScheduleEntry builds an entry whose grade is the first character of
// class.
func NewScheduleEntry(day, timeBlock, class, subject, teacher string) ScheduleEntry {
	return ScheduleEntry{
		Day:     day,
		Time:    timeBlock,
		Class:   class,
		Grade:   GradeOf(class),
		Subject: subject,
		Teacher: teacher,
	}
}

// GradeOf returns the first character of a class identifier.
func GradeOf(class string) string {
	if class == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(class)
	return class[:size]
}

// Slot drops the class and grade from the entry.
func (e ScheduleEntry) Slot() ClassSlot {
	return ClassSlot{Day: e.Day, Time: e.Time, Subject: e.Subject, Teacher: e.Teacher}
}

// ClassSlot is one period of a class's week in the grouped output.
type ClassSlot struct {
	Day     string `json:"day" yaml:"day"`
	Time    string `json:"time" yaml:"time"`
	Subject string `json:"subject" yaml:"subject"`
	Teacher string `json:"teacher" yaml:"teacher"`
}

// ClassSchedule maps class identifiers to their slots. Classes keep the
// order in which they were first added, and that order is kept through
// JSON encoding and decoding.
type ClassSchedule struct {
	order []string
	slots map[string][]ClassSlot
}

// NewClassSchedule returns an empty schedule.
func NewClassSchedule() *ClassSchedule {
	return &ClassSchedule{slots: make(map[string][]ClassSlot)}
}

// Append adds a slot to the end of class's list, registering class on first
// use.
func (s *ClassSchedule) Append(class string, slot ClassSlot) {
	if s.slots == nil {
		s.slots = make(map[string][]ClassSlot)
	}
	if _, ok := s.slots[class]; !ok {
		s.order = append(s.order, class)
	}
	s.slots[class] = append(s.slots[class], slot)
}

// Classes returns the class identifiers in first-seen order.
func (s *ClassSchedule) Classes() []string {
	return append([]string(nil), s.order...)
}

// Slots returns the slots recorded for class, in insertion order.
func (s *ClassSchedule) Slots(class string) []ClassSlot {
	return s.slots[class]
}

// Len returns the number of classes.
func (s *ClassSchedule) Len() int {
	return len(s.order)
}

// MarshalJSON encodes the schedule as an object whose keys appear in
// first-seen order. HTML characters such as '&' are written verbatim.
func (s *ClassSchedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, class := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(class); err != nil {
			return nil, fmt.Errorf("encoding class %q: %w", class, err)
		}
		buf.Truncate(buf.Len() - 1) // Encode terminates each value with '\n'
		buf.WriteByte(':')
		slots := s.slots[class]
		if slots == nil {
			slots = []ClassSlot{}
		}
		if err := enc.Encode(slots); err != nil {
			return nil, fmt.Errorf("encoding slots for %q: %w", class, err)
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of class identifiers, keeping the key
// order of the document.
func (s *ClassSchedule) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading schedule: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schedule must be a JSON object, got %v", tok)
	}

	out := NewClassSchedule()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading class key: %w", err)
		}
		class, ok := tok.(string)
		if !ok {
			return fmt.Errorf("class key must be a string, got %v", tok)
		}
		var slots []ClassSlot
		if err := dec.Decode(&slots); err != nil {
			return fmt.Errorf("decoding slots for %q: %w", class, err)
		}
		if _, seen := out.slots[class]; !seen {
			out.order = append(out.order, class)
		}
		out.slots[class] = append(out.slots[class], slots...)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading schedule end: %w", err)
	}

	*s = *out
	return nil
}
