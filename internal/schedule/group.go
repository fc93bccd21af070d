// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import "github.com/pdiddy/schedule-parser/pkg/types"

// Group collects entries by class. Classes appear in the order they were
// first seen and each class keeps its entries in emission order.
func Group(entries []types.ScheduleEntry) *types.ClassSchedule {
	grouped := types.NewClassSchedule()
	for _, e := range entries {
		grouped.Append(e.Class, e.Slot())
	}
	return grouped
}

// CountUnknown returns how many entries fell past the last time block.
func CountUnknown(entries []types.ScheduleEntry) int {
	n := 0
	for _, e := range entries {
		if e.Time == types.UnknownTimeBlock {
			n++
		}
	}
	return n
}
