package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/KaramelBytes/hotelscope/internal/utils"
	"github.com/spf13/cobra"
)

var optJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List filter values and variable names offered by the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := openExplorer(cmd.Context())
		if err != nil {
			return err
		}
		opts := ex.Dataset().Options()
		out := cmd.OutOrStdout()
		if optJSON {
			b, err := utils.PrettyJSON(map[string]any{
				"filters":     opts,
				"categorical": dataset.Categoricals(),
				"numerical":   dataset.Numericals(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		years := make([]string, len(opts.Years))
		for i, y := range opts.Years {
			years[i] = strconv.Itoa(y)
		}
		var cats, nums []string
		for _, c := range dataset.Categoricals() {
			cats = append(cats, c.String())
		}
		for _, n := range dataset.Numericals() {
			nums = append(nums, n.String())
		}
		fmt.Fprintf(out, "Dataset: %s\n", ex.Dataset())
		fmt.Fprintf(out, "Hotels: %s\n", strings.Join(opts.Hotels, ", "))
		fmt.Fprintf(out, "Locations: %s\n", strings.Join(opts.Locations, ", "))
		fmt.Fprintf(out, "Years: %s\n", strings.Join(years, ", "))
		fmt.Fprintf(out, "Categorical: %s\n", strings.Join(cats, ", "))
		fmt.Fprintf(out, "Numerical: %s\n", strings.Join(nums, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optJSON, "json", false, "print options as JSON")
}
