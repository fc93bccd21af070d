// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutTimeBlock(t *testing.T) {
	l := DefaultLayout()
	require.Len(t, l.TimeBlocks, 11)
	require.Len(t, l.Days, 5)

	assert.Equal(t, "7:50-8:15", l.TimeBlock(0))
	assert.Equal(t, "1:55-2:50", l.TimeBlock(10))
	assert.Equal(t, UnknownTimeBlock, l.TimeBlock(11))
	assert.Equal(t, UnknownTimeBlock, l.TimeBlock(-1))
	assert.Equal(t, "Monday", l.Day(0))
	assert.Equal(t, "Friday", l.Day(4))
}

func TestDefaultLayoutIsACopy(t *testing.T) {
	l := DefaultLayout()
	l.Days[0] = "Sunday"
	assert.Equal(t, "Monday", Days[0])
}

func TestGradeOf(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"7A", "7"},
		{"12C", "1"},
		{"٣B", "٣"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeOf(tt.class), "class %q", tt.class)
	}
}

func TestNewScheduleEntry(t *testing.T) {
	e := NewScheduleEntry("Monday", "7:50-8:15", "8B", "Art", "Roy")
	assert.Equal(t, "8", e.Grade)
	assert.Equal(t, ClassSlot{Day: "Monday", Time: "7:50-8:15", Subject: "Art", Teacher: "Roy"}, e.Slot())
}

func TestClassScheduleMarshalJSON(t *testing.T) {
	s := NewClassSchedule()
	s.Append("8B", ClassSlot{Day: "Monday", Time: "7:50-8:15", Subject: "Science & Nature", Teacher: "Smith"})
	s.Append("7A", ClassSlot{Day: "Monday", Time: "7:50-8:15", Subject: "Math", Teacher: "Lee"})
	s.Append("8B", ClassSlot{Day: "Tuesday", Time: "8:15-9:10", Subject: "Art", Teacher: "Roy"})

	data, err := s.MarshalJSON()
	require.NoError(t, err)

	want := `{"8B":[{"day":"Monday","time":"7:50-8:15","subject":"Science & Nature","teacher":"Smith"},` +
		`{"day":"Tuesday","time":"8:15-9:10","subject":"Art","teacher":"Roy"}],` +
		`"7A":[{"day":"Monday","time":"7:50-8:15","subject":"Math","teacher":"Lee"}]}`
	assert.Equal(t, want, string(data))
}

func TestClassScheduleUnmarshalJSON(t *testing.T) {
	var s ClassSchedule
	err := json.Unmarshal([]byte(`{
  "9Z": [{"day": "Friday", "time": "Unknown", "subject": "Art", "teacher": "Roy"}],
  "1A": []
}`), &s)
	require.NoError(t, err)

	assert.Equal(t, []string{"9Z", "1A"}, s.Classes())
	assert.Equal(t, UnknownTimeBlock, s.Slots("9Z")[0].Time)
	assert.Empty(t, s.Slots("1A"))
}

func TestClassScheduleUnmarshalJSON_RejectsNonObject(t *testing.T) {
	var s ClassSchedule
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"7A": "x"}`), &s))
}
