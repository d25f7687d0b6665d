// Package main provides the CLI entry point for sheetimport.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/clinicapay/sheetimport/pkg/sheetimport"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/config"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/output"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/server"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/store"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
	configPath string
	envFiles   []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetimport",
		Short: "Import billing-platform spreadsheet exports",
		Long: `sheetimport reads billing exports (.xlsx or .xls), recovers the clinic
identity and the monthly metric tables, and prints or stores the records.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env", ".env.local"}, "dotenv files to load")

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Parse a workbook and print the records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	importCmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Parse a workbook and upsert the records into the store",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload endpoint",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	rootCmd.AddCommand(parseCmd, importCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	opts := sheetimport.DefaultOptions()
	opts.Logger = logger

	result, err := sheetimport.ParseFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return err
	}

	opts := sheetimport.DefaultOptions()
	opts.Logger = logger
	result, err := sheetimport.ParseFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	summary, err := store.NewImporter(st, logger).Import(ctx, filepath.Base(args[0]), result)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	jsonData, err := output.SummaryToJSON(summary, true)
	if err != nil {
		return err
	}
	fmt.Println(string(jsonData))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := server.New(store.NewImporter(st, logger), logger, cfg.MaxUpload)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}
	logger.Info("listening", "addr", cfg.ListenAddr, "backend", cfg.Backend)
	return httpServer.ListenAndServe()
}

// openStore builds the configured backend and returns its cleanup func.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Backend == config.BackendPostgres {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	client := &http.Client{Timeout: cfg.Timeout}
	return store.NewRESTStore(cfg.StoreURL, cfg.ServiceKey, client), func() {}, nil
}
