// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schedule-parser/internal/store"
	"github.com/pdiddy/schedule-parser/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Query entries saved to the schedule index",
	Long: `Lookup reads the SQLite index written by parse --index-db and prints the
entries that match every given filter, ordered by source document and then
by position in that document.

Use --classes to list the indexed class identifiers, or --documents to list
the indexed PDFs.`,
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("index_db", cmd.Flags().Lookup("index-db")); err != nil {
		return fmt.Errorf("binding --index-db: %w", err)
	}
	dbPath := viper.GetString("index_db")
	if dbPath == "" {
		return fmt.Errorf("no index configured: set --index-db or SCHEDULE_PARSER_INDEX_DB")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("opening index %s: %w", dbPath, err)
	}

	s, err := store.NewStore(types.IndexConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if listClasses, _ := cmd.Flags().GetBool("classes"); listClasses {
		classes, err := s.Classes(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, classes)
		}
		for _, c := range classes {
			fmt.Println(c)
		}
		return nil
	}

	if listDocs, _ := cmd.Flags().GetBool("documents"); listDocs {
		docs, err := s.Documents(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, docs)
		}
		for _, d := range docs {
			fmt.Printf("%s  %d entries  indexed %s\n", d.Source, d.EntryCount, d.IndexedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	results, err := s.Query(ctx, lookupOptsFromFlags(cmd))
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, results)
	}
	formatLookupOutput(os.Stdout, results)
	return nil
}

func lookupOptsFromFlags(cmd *cobra.Command) store.QueryOptions {
	class, _ := cmd.Flags().GetString("class")
	grade, _ := cmd.Flags().GetString("grade")
	day, _ := cmd.Flags().GetString("day")
	teacher, _ := cmd.Flags().GetString("teacher")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Source:     source,
		Class:      class,
		Grade:      grade,
		Day:        day,
		Teacher:    teacher,
		MaxResults: limit,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatLookupOutput(w io.Writer, results []store.QueryResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-10s  %-12s  %-30s  %s\n",
		"Class", "Day", "Time", "Subject", "Teacher")
	fmt.Fprintln(w, strings.Repeat("-", 76))

	for _, r := range results {
		fmt.Fprintf(w, "%-6s  %-10s  %-12s  %-30s  %s\n",
			r.Class, r.Day, r.Time, truncate(r.Subject, 30), r.Teacher)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(results))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	lookupCmd.Flags().String("index-db", "", "SQLite index written by parse --index-db")
	lookupCmd.Flags().String("class", "", "filter by class, e.g. 7A")
	lookupCmd.Flags().String("grade", "", "filter by grade, e.g. 7")
	lookupCmd.Flags().String("day", "", "filter by day, e.g. Monday")
	lookupCmd.Flags().String("teacher", "", "filter by teacher")
	lookupCmd.Flags().String("source", "", "filter by source PDF path")
	lookupCmd.Flags().Int("limit", 0, "maximum number of entries (0 for all)")
	lookupCmd.Flags().Bool("json", false, "output as JSON")
	lookupCmd.Flags().Bool("classes", false, "list indexed class identifiers")
	lookupCmd.Flags().Bool("documents", false, "list indexed source documents")

	rootCmd.AddCommand(lookupCmd)
}
