package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/i18nkeys/analyzer"
	"github.com/viant/i18nkeys/catalog"
	"github.com/viant/i18nkeys/inspector/repository"
	"github.com/viant/i18nkeys/pipeline"
)

// errTemplateCreated signals that a config template was written instead of running
var errTemplateCreated = errors.New("config template created")

var (
	rootCmd = &cobra.Command{
		Use:           "i18nkeys",
		Short:         "Extracts translation keys from JavaScript and TypeScript sources",
		Long:          `i18nkeys extracts translation keys, including keys built from templates, constants, imports and iterations, and builds a language by key translation matrix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	runCmd = &cobra.Command{
		Use:   "run [config]",
		Short: "Runs the extraction pipeline and writes the translation matrix",
		Long:  `Scans sources, extracts keys, writes the extraction output and the matrix restricted to extracted keys. A missing config is created as a template.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPipelineCommand,
	}
	extractCmd = &cobra.Command{
		Use:   "extract <dir>",
		Short: "Prints the keys used by the sources of a folder as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtractCommand,
	}
	xlsCmd = &cobra.Command{
		Use:   "xls [matrix.json] [out.xls]",
		Short: "Converts a matrix JSON document into a spreadsheet table",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runXLSCommand,
	}
	watchCmd = &cobra.Command{
		Use:   "watch [config]",
		Short: "Re-runs the pipeline whenever a source changes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatchCommand,
	}
	verbose bool
	literal bool
	workers int
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	extractCmd.Flags().BoolVar(&literal, "literal", false, "only extract literal keys")
	extractCmd.Flags().IntVar(&workers, "workers", 0, "number of files analyzed in parallel (default: CPU count)")
	rootCmd.AddCommand(runCmd, extractCmd, xlsCmd, watchCmd)
}

func exitCode(err error) int {
	if !errors.Is(err, errTemplateCreated) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return 1
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func absArg(args []string, index int, fallback string) (string, error) {
	location := fallback
	if len(args) > index {
		location = args[index]
	}
	return filepath.Abs(location)
}

// loadConfig loads the pipeline config, writing a template when it does not exist yet
func loadConfig(ctx context.Context, cmd *cobra.Command, args []string) (*pipeline.Config, error) {
	location, err := absArg(args, 0, pipeline.DefaultConfigFile)
	if err != nil {
		return nil, err
	}
	cfg, err := pipeline.Load(location)
	if errors.Is(err, pipeline.ErrConfigNotFound) {
		if err = pipeline.WriteTemplate(ctx, location); err != nil {
			return nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Config template created: %v\n", location)
		fmt.Fprintln(cmd.ErrOrStderr(), "Edit this file with your project paths, then run the command again.")
		return nil, errTemplateCreated
	}
	return cfg, err
}

func runPipelineCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	cfg, err := loadConfig(ctx, cmd, args)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.OutputMatrixFile)
	return nil
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	cfg, err := loadConfig(ctx, cmd, args)
	if err != nil {
		return err
	}
	return pipeline.Watch(ctx, cfg, func(result *pipeline.Result, err error) {
		if err != nil {
			slog.Error("pipeline failed", "error", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.OutputMatrixFile)
	})
}

func runExtractCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	scanner, err := repository.NewScanner(nil, nil, []string{"**/*.test.*", "**/*.spec.*", "**/node_modules/**", "**/dist/**"})
	if err != nil {
		return err
	}
	files, err := scanner.Scan(root)
	if err != nil {
		return err
	}

	options := []analyzer.Option{analyzer.WithLogger(slog.Default())}
	if workers > 0 {
		options = append(options, analyzer.WithWorkers(workers))
	}
	mode := analyzer.Dynamic
	if literal {
		mode = analyzer.Literal
	}
	keys, err := analyzer.New(nil, append(options, analyzer.WithMode(mode))...).ExtractKeys(ctx, files)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(keys.Keys())
}

func runXLSCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	input, err := absArg(args, 0, "matrix.json")
	if err != nil {
		return err
	}
	output, err := absArg(args, 1, "translations.xls")
	if err != nil {
		return err
	}
	if err = catalog.ConvertMatrixToXLS(ctx, afs.New(), input, output); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
