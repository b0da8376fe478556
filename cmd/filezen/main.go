package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"filezen/internal/cleaner"
	"filezen/internal/config"
	"filezen/internal/progress"
	"filezen/internal/report"
	"filezen/internal/runner"
	"filezen/internal/scanner"
	"filezen/internal/ui"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	sortBySize bool
	cleanup    bool
	ageDays    int
	outputFmt  string
	historyN   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "filezen [folder]",
	Short: "Organize folders by file type",
	Long: `FileZen tidies a folder by moving every file into a subfolder named
after its uppercase extension (PDF, TXT, MP3, ...). Files without an
extension go to OTHER. Optionally deletes files older than a given
number of days first.

Run without arguments for interactive mode.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if len(args) == 1 {
			cfg.DefaultRoot = args[0]
		}
		return ui.RunInteractive(cfg)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <folder>",
	Short: "Organize a folder",
	Long:  `Organizes the folder: optional stale-file cleanup, then moves every file into its category subfolder.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		opts := runner.Options{
			SortBySize:     cfg.SortBySize,
			CleanupEnabled: cfg.Cleanup.Enabled,
			CleanupAgeDays: cfg.Cleanup.AgeDays,
		}
		if cmd.Flags().Changed("sort-by-size") {
			opts.SortBySize = sortBySize
		}
		if cmd.Flags().Changed("cleanup") {
			opts.CleanupEnabled = cleanup
		}
		if cmd.Flags().Changed("age-days") {
			opts.CleanupAgeDays = ageDays
			opts.CleanupEnabled = true
		}

		format, err := report.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := runner.New(args[0], opts)
		if verbose {
			r.SetProgressReporter(newVerboseReporter())
		}

		result, err := r.Run(ctx)
		if err != nil {
			return err
		}

		if err := report.New(os.Stdout, format).RunReport(result); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		saveHistory(args[0], opts, result)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Preview the category breakdown without moving anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := absRoot(args[0])
		if err := runner.ValidateRoot(root); err != nil {
			return err
		}

		format, err := report.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		result, err := scanner.New().Scan(cmd.Context(), root)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		return report.New(os.Stdout, format).ScanReport(result)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean <folder>",
	Short: "Delete files older than a number of days",
	Long:  `Deletes files in the folder older than the threshold. Does not organize. Subfolders are never touched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := absRoot(args[0])
		if err := runner.ValidateRoot(root); err != nil {
			return err
		}
		if ageDays <= 0 {
			return fmt.Errorf("--age-days must be positive")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cl := cleaner.New(ageDays)
		if verbose {
			cl.SetProgressReporter(newVerboseReporter())
		}

		result, err := cl.Clean(ctx, root)
		if err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}

		fmt.Printf("Deleted %d files\n", len(result.DeletedFiles))
		if result.Canceled {
			fmt.Println("Canceled; results are partial")
		}
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetHistoryDir()
		if err != nil {
			return err
		}

		records, err := config.ListRunRecords(dir)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		if historyN > 0 && len(records) > historyN {
			records = records[:historyN]
		}
		fmt.Println(report.HistoryTable(records))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("\nExample configuration:")
			fmt.Print(config.GetExampleConfig())
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	runCmd.Flags().BoolVar(&sortBySize, "sort-by-size", false, "move smaller files first within each category")
	runCmd.Flags().BoolVar(&cleanup, "cleanup", false, "delete old files before organizing")
	runCmd.Flags().IntVar(&ageDays, "age-days", 0, "age threshold in days for cleanup (implies --cleanup)")
	runCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")

	scanCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")

	cleanCmd.Flags().IntVar(&ageDays, "age-days", 30, "age threshold in days")

	historyCmd.Flags().IntVar(&historyN, "limit", 10, "number of runs to show")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

// absRoot resolves a user-supplied folder to an absolute path so
// reports and history records do not depend on the working directory
func absRoot(root string) string {
	if root == "" {
		return root
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// newVerboseReporter prints progress messages to stderr as they arrive
func newVerboseReporter() *progress.Reporter {
	rep := progress.NewReporter()
	ch := rep.Subscribe()
	go func() {
		for ev := range ch {
			if ev.Message != "" {
				fmt.Fprintln(os.Stderr, ev.Message)
			}
		}
	}()
	return rep
}

// saveHistory records the run; failures are reported but never fail
// the command
func saveHistory(root string, opts runner.Options, result *runner.OperationResult) {
	dir, err := config.GetHistoryDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not locate history directory: %v\n", err)
		return
	}
	if err := config.SaveRunRecord(dir, config.NewRunRecord(root, opts, result)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save run record: %v\n", err)
	}
}
