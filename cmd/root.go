package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/hotelscope/internal/config"
	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	flagData  string
	flagTable string
	flagSheet string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	debugColor = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "hotelscope",
	Short: "hotelscope: explore hotel booking cancellations against weather",
	Long: `hotelscope loads a hotel booking dataset joined with weather conditions and
recomputes filtered summaries: cancellation rates per category, weather
cross-tabulations and numerical summaries by weather, from the command line or over HTTP.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hotelscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "dataset path (csv/tsv/xlsx) or postgres:// / sqlite:// DSN (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "SQL table holding bookings (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX sheet name (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		warnf("failed to load config: %v", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") {
		cfg.DataPath = flagData
	}
	if f.Changed("table") && flagTable != "" {
		cfg.SQLTable = flagTable
	}
	if f.Changed("sheet") {
		cfg.SheetName = flagSheet
	}
}

func success(w io.Writer, format string, a ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func warnf(format string, a ...any) {
	warnColor.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", a...)
}

func debugf(format string, a ...any) {
	if debug {
		debugColor.Fprintf(os.Stderr, "[debug] "+format+"\n", a...)
	}
}

// explorerOptions maps configured limits onto the explorer.
func explorerOptions(c *cfgpkg.Global) analysis.Options {
	opt := analysis.DefaultOptions()
	if c.PreviewRows >= 0 {
		opt.PreviewRows = c.PreviewRows
	}
	if c.TopCategories > 0 {
		opt.TopCategories = c.TopCategories
	}
	if c.TopWeathers > 0 {
		opt.TopWeathers = c.TopWeathers
	}
	if c.SampleCap > 0 {
		opt.SampleCap = c.SampleCap
	}
	opt.SampleSeed = c.SampleSeed
	if c.Jitter >= 0 {
		opt.Jitter = c.Jitter
	}
	if c.HistogramBins > 0 {
		opt.HistogramBins = c.HistogramBins
	}
	return opt
}

// openExplorer loads the configured dataset once and binds an explorer to it.
func openExplorer(ctx context.Context) (*analysis.Explorer, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	if cfg.DataPath == "" {
		return nil, errors.New("no dataset configured (use --data or `hotelscope config set data_path <path>`)")
	}
	opt := dataset.DefaultOptions()
	if cfg.SQLTable != "" {
		opt.Table = cfg.SQLTable
	}
	opt.Sheet = cfg.SheetName
	start := time.Now()
	ds, err := dataset.Load(ctx, cfg.DataPath, opt)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	debugf("loaded %s in %s", ds, time.Since(start).Round(time.Millisecond))
	if ds.Len() == 0 {
		warnf("dataset %s has no rows", ds.Source())
	}
	return analysis.NewExplorer(ds, explorerOptions(cfg)), nil
}
