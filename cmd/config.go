package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/hotelscope/internal/config"
	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set hotelscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "sql_table: %s\n", cfg.SQLTable)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(out, "top_categories: %d\n", cfg.TopCategories)
		fmt.Fprintf(out, "top_weathers: %d\n", cfg.TopWeathers)
		fmt.Fprintf(out, "sample_cap: %d\n", cfg.SampleCap)
		fmt.Fprintf(out, "sample_seed: %d\n", cfg.SampleSeed)
		fmt.Fprintf(out, "jitter: %.3f\n", cfg.Jitter)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Fprintf(out, "default_categorical: %s\n", cfg.DefaultCategorical)
		fmt.Fprintf(out, "default_numerical: %s\n", cfg.DefaultNumerical)
		fmt.Fprintf(out, "serve_addr: %s\n", cfg.ServeAddr)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "sql_table":
			cfg.SQLTable = val
		case "sheet_name":
			cfg.SheetName = val
		case "preview_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for preview_rows: %v", val)
			}
			cfg.PreviewRows = i
		case "top_categories", "top_weathers", "sample_cap", "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "top_categories":
				cfg.TopCategories = i
			case "top_weathers":
				cfg.TopWeathers = i
			case "sample_cap":
				cfg.SampleCap = i
			case "histogram_bins":
				cfg.HistogramBins = i
			}
		case "sample_seed":
			u, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid uint for sample_seed: %w", err)
			}
			cfg.SampleSeed = u
		case "jitter":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for jitter: %v", val)
			}
			cfg.Jitter = f
		case "default_categorical":
			c, ok := dataset.ParseCategorical(val)
			if !ok {
				return &analysis.VariableError{Kind: "categorical", Name: val}
			}
			cfg.DefaultCategorical = c.String()
		case "default_numerical":
			n, ok := dataset.ParseNumerical(val)
			if !ok {
				return &analysis.VariableError{Kind: "numerical", Name: val}
			}
			cfg.DefaultNumerical = n.String()
		case "serve_addr":
			cfg.ServeAddr = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
