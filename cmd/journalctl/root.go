package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/journalkit/internal/logger"
	"github.com/joshuapare/journalkit/internal/metrics"
	"github.com/joshuapare/journalkit/journal"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	logLevel    string
	logFormat   string
	metricsFile string

	log      = zap.NewNop()
	registry *prometheus.Registry
	jm       *metrics.Journal

	// numbers groups digits in text output.
	numbers = message.NewPrinter(language.English)
)

var rootCmd = &cobra.Command{
	Use:   "journalctl",
	Short: "Create, inspect and repair journal file headers",
	Long: `journalctl works on the header region of journal files: the journal
geometry and the two alternating state slots that record the last committed
transaction. It can create new journals, dump and verify headers, run
recovery and take or restore compressed header snapshots.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().
		StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	l, err := logger.New(logger.Config{Level: logLevel, Format: logFormat, OutputFile: "stderr"})
	if err != nil {
		return err
	}
	log = l

	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		if jm, err = metrics.New(registry); err != nil {
			return err
		}
	}
	return nil
}

func teardown() error {
	_ = log.Sync()
	if metricsFile == "" || registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// newHeader returns a detached header wired to the command's logger and
// metrics.
func newHeader(opts ...journal.Option) *journal.Header {
	return journal.NewHeader(append([]journal.Option{
		journal.WithLogger(log),
		journal.WithMetrics(jm),
	}, opts...)...)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// num formats n with grouped digits.
func num[T ~int | ~int64 | ~uint32](n T) string {
	return numbers.Sprintf("%d", n)
}
