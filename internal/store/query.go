// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// QueryOptions holds the filters for an index lookup. Empty fields match
// everything; set fields combine with AND.
type QueryOptions struct {
	Source  string
	Class   string
	Grade   string
	Day     string
	Teacher string

	// MaxResults limits result count. Zero returns every match.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Source == "" && q.Class == "" && q.Grade == "" && q.Day == "" && q.Teacher == ""
}

// QueryResult is an indexed entry with the document it came from and its
// position among that document's entries.
type QueryResult struct {
	types.ScheduleEntry `yaml:",inline"`
	Source              string `json:"source" yaml:"source"`
	Sequence            int    `json:"sequence" yaml:"sequence"`
}

// Query returns entries matching opts, ordered by source and then by the
// order in which they were encountered in that source.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT source, seq, day, time, class, grade, subject, teacher
		FROM entries
		WHERE 1=1`)

	filters := []struct {
		column string
		value  string
	}{
		{"source", opts.Source},
		{"class", opts.Class},
		{"grade", opts.Grade},
		{"day", opts.Day},
		{"teacher", opts.Teacher},
	}
	for _, f := range filters {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&qb, ` AND %s = ?`, f.column)
		args = append(args, f.value)
	}

	qb.WriteString(` ORDER BY source, seq`)
	if opts.MaxResults > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.MaxResults)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying schedule index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		if err := rows.Scan(
			&r.Source, &r.Sequence, &r.Day, &r.Time,
			&r.Class, &r.Grade, &r.Subject, &r.Teacher,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Classes lists the distinct class identifiers in the index in the order
// they are first encountered, walking sources by name.
func (s *Store) Classes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT class FROM entries ORDER BY source, seq`)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var classes []string
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if !seen[class] {
			seen[class] = true
			classes = append(classes, class)
		}
	}
	return classes, rows.Err()
}

// Schedule rebuilds the grouped schedule of one indexed source.
func (s *Store) Schedule(ctx context.Context, source string) (*types.ClassSchedule, error) {
	results, err := s.Query(ctx, QueryOptions{Source: source})
	if err != nil {
		return nil, err
	}
	grouped := types.NewClassSchedule()
	for _, r := range results {
		grouped.Append(r.Class, r.Slot())
	}
	return grouped, nil
}
