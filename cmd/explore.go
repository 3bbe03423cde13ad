package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	"github.com/KaramelBytes/hotelscope/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	expHotels    []string
	expLocations []string
	expYears     []string
	expCat       string
	expNum       string
	expFormat    string
	expOutput    string
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Filter the bookings and summarize one categorical and one numerical variable",
	Long: `Explore filters bookings by hotel type, location and arrival year, then reports
cancellation rates and weather cross-tabs for the categorical variable and
weather-grouped summaries for the numerical variable.

A filter flag that is not given selects every option; a flag given with an
empty value (--hotel "") selects nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := openExplorer(cmd.Context())
		if err != nil {
			return err
		}
		req := analysis.Request{Filter: analysis.AllOf(ex.Dataset().Options())}
		f := cmd.Flags()
		if f.Changed("hotel") {
			req.Filter.Hotels = nonEmpty(expHotels)
		}
		if f.Changed("location") {
			req.Filter.Locations = nonEmpty(expLocations)
		}
		if f.Changed("year") {
			years, err := parseYears(expYears)
			if err != nil {
				return err
			}
			req.Filter.Years = years
		}
		cat, num := expCat, expNum
		if cat == "" {
			cat = cfg.DefaultCategorical
		}
		if num == "" {
			num = cfg.DefaultNumerical
		}
		req.Categorical, req.Numerical, err = analysis.ResolveVariables(cat, num)
		if err != nil {
			return err
		}

		res, err := ex.Explore(req)
		if err != nil {
			return err
		}
		debugf("request %s: %s", res.RequestID, req)

		out, err := render(res, expFormat)
		if err != nil {
			return err
		}
		if expOutput != "" {
			if err := utils.SafeWriteFile(expOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			success(cmd.OutOrStdout(), "Wrote %s report to %s", expFormat, expOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringSliceVar(&expHotels, "hotel", nil, "hotel types to include (repeatable; default all)")
	exploreCmd.Flags().StringSliceVar(&expLocations, "location", nil, "locations to include (repeatable; default all)")
	exploreCmd.Flags().StringSliceVar(&expYears, "year", nil, "arrival years to include (repeatable; default all)")
	exploreCmd.Flags().StringVar(&expCat, "cat", "", "categorical variable (default from config)")
	exploreCmd.Flags().StringVar(&expNum, "num", "", "numerical variable (default from config)")
	exploreCmd.Flags().StringVarP(&expFormat, "format", "f", "markdown", "output format: markdown|json|yaml")
	exploreCmd.Flags().StringVarP(&expOutput, "output", "o", "", "optional path to write the report")
}

func render(res *analysis.Result, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		return []byte(res.Markdown()), nil
	case "json":
		return utils.PrettyJSON(res)
	case "yaml", "yml":
		b, err := yaml.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", format)
	}
}

// nonEmpty trims values and drops blanks and repeats, keeping first-seen order.
func nonEmpty(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func parseYears(vals []string) ([]int, error) {
	out := make([]int, 0, len(vals))
	for _, v := range nonEmpty(vals) {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid --year %q", v)
		}
		out = append(out, y)
	}
	return out, nil
}
