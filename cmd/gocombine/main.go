package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gocombine/app"
	"gocombine/internal/combine"
	"gocombine/internal/config"
)

func main() {
	// Optional .env next to the binary; environment overrides the settings
	// document for per-deployment fields.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gocombine",
		Short: "Combine spreadsheet and delimited files from a folder into one table",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var configPath string
	var inputFolder string
	var outputFolder string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a combine pass using a settings file",
		Long: `Scan the configured folder, combine every recognized file into one table,
optionally enrich rows from the lookup file, and write the result.

Example: gocombine run --config config.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, inputFolder, outputFolder)
			if err != nil {
				return err
			}

			service := app.NewCombineService(newLogProgress())
			report, err := service.Run(cmd.Context(), cfg)
			printFailures(report)
			if err != nil {
				return err
			}

			fmt.Printf("Done in %s. %d rows from %d files written to %s\n",
				time.Since(report.StartedAt.Time()).Round(time.Millisecond),
				report.TotalRows, report.SuccessCount(), report.OutputPath)
			if report.MergeMatched+report.MergeUnmatched > 0 {
				fmt.Printf("Merge: %d matched, %d unmatched\n", report.MergeMatched, report.MergeUnmatched)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.json", "Path to the settings file")
	cmd.Flags().StringVar(&inputFolder, "input", "", "Override the source folder")
	cmd.Flags().StringVar(&outputFolder, "output", "", "Override the output folder")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a settings file without processing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFile(configPath); err != nil {
				return err
			}
			fmt.Printf("%s is valid\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.json", "Path to the settings file")

	return cmd
}

func loadConfig(path, inputFolder, outputFolder string) (*config.Config, error) {
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	settings.ApplyEnv()
	if inputFolder != "" {
		settings.InputFolder = inputFolder
	}
	if outputFolder != "" {
		settings.OutputFolder = outputFolder
	}
	return settings.Build()
}

func printFailures(report *combine.Report) {
	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	fmt.Printf("Skipped %d file(s):\n", len(failures))
	for _, f := range failures {
		fmt.Printf("  %s: %v\n", f.Path, f.Err)
	}
}
