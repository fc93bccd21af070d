// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the schedule-parser CLI. Run without
// a subcommand it parses the weekly schedule PDF into class_schedule.json.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// envFile is loaded into the process environment before any command runs.
const envFile = ".env"

// rootCmd is the base command for the schedule-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "schedule-parser",
	Short: "Extract a weekly class schedule from a school timetable PDF",
	Long: `schedule-parser reads a weekly timetable PDF, places every class token on
the day and time-block grid by the order in which rows appear, and writes a
JSON object mapping each class to its slots.

With no subcommand it runs parse using the configured PDF and output paths.
Use lookup to query entries saved to the optional SQLite index.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		slog.SetDefault(newLogger(verbose))
		return nil
	},
	RunE:         runParse,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./schedule-parser.yaml or ~/.config/schedule-parser/schedule-parser.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace day headers and class rows to stderr")
	addParseFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schedule-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schedule-parser"))
		}
	}

	viper.SetEnvPrefix("SCHEDULE_PARSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger writes warnings to stderr, or every record from debug up when
// verbose is set.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
