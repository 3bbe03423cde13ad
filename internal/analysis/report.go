package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Markdown renders the result as markdown sections and tables.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[FILTERED DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Booking Count: %d\n", r.Summary.Bookings))
	b.WriteString(fmt.Sprintf("Cancellation Rate (%%): %.2f\n", r.Summary.CancelRate))
	b.WriteString(fmt.Sprintf("Hotel Types: %d\n", r.Summary.HotelTypes))
	b.WriteString(fmt.Sprintf("Locations: %d\n", r.Summary.Locations))
	if len(r.Preview) > 0 {
		b.WriteString("\n[HEAD ROWS]\n")
		writeTable(&b, r.PreviewColumns, r.Preview)
	}

	cv := r.Categorical
	b.WriteString(fmt.Sprintf("\n[CATEGORICAL VARIABLE: %s]\n", cv.Variable))
	if cv.State == StateEmpty {
		b.WriteString("Filtered dataset is empty, adjust filter selections.\n")
	} else {
		writeCategorical(&b, cv)
	}

	nv := r.Numerical
	b.WriteString(fmt.Sprintf("\n[NUMERICAL VARIABLE: %s]\n", nv.Variable))
	if r.Summary.Bookings == 0 {
		b.WriteString("Filtered dataset is empty, adjust filter selections.\n")
	} else {
		writeNumerical(&b, nv)
	}
	return b.String()
}

func writeCategorical(b *strings.Builder, cv CategoricalView) {
	name := cv.Variable.String()
	b.WriteString("(a) Cancellation Rate by Category (all bookings)\n")
	rows := make([][]string, 0, len(cv.Rates.Rows))
	for _, r := range cv.Rates.Rows {
		rows = append(rows, []string{r.Category, strconv.Itoa(r.Total), strconv.Itoa(r.Canceled), fmt.Sprintf("%.2f", r.Rate)})
	}
	writeTable(b, []string{name, "total_bookings", "canceled_bookings", "cancel_rate"}, rows)

	ct := cv.CrossTab
	if len(ct.RestrictedTo) > 0 {
		b.WriteString(fmt.Sprintf("\nRestricted to top %d categories: %s\n", len(ct.RestrictedTo), strings.Join(ct.RestrictedTo, ", ")))
	}
	b.WriteString("\n(b1) Weather counts by category (ALL bookings)\n")
	writeTable(b, append([]string{name}, ct.Weathers...), countRows(ct.All))
	b.WriteString("\n(b1) Weather counts by category (CANCELED only)\n")
	if ct.CanceledState == StateAbsent {
		b.WriteString("No canceled records.\n")
	} else {
		writeTable(b, append([]string{name}, ct.Weathers...), countRows(ct.Canceled))
	}
	b.WriteString("\n(b2) Weather percentage within category (ALL bookings)\n")
	writeTable(b, append([]string{name}, ct.Weathers...), percentRows(ct.AllPercent))
	b.WriteString("\n(b2) Weather percentage within category (CANCELED only)\n")
	if ct.CanceledState == StateAbsent {
		b.WriteString("No canceled records.\n")
	} else {
		writeTable(b, append([]string{name}, ct.Weathers...), percentRows(ct.CanceledPercent))
	}
}

func writeNumerical(b *strings.Builder, nv NumericalView) {
	b.WriteString(fmt.Sprintf("Distribution by cancellation status: not canceled n=%d, canceled n=%d\n",
		nv.NotCanceled.Count, nv.Canceled.Count))
	if nv.State == StateEmpty {
		b.WriteString("No non-missing values for this variable in the current filter.\n")
		return
	}
	b.WriteString("\nSummary by weather (ALL bookings)\n")
	writeTable(b, summaryHeader, summaryRows(nv.SummaryAll))
	b.WriteString(fmt.Sprintf("Plotted points: %d\n", len(nv.PointsAll)))
	b.WriteString("\nSummary by weather (CANCELED only)\n")
	if nv.CanceledState == StateAbsent {
		b.WriteString("No canceled bookings with these weather types in the current filter.\n")
		return
	}
	writeTable(b, summaryHeader, summaryRows(nv.SummaryCanceled))
	b.WriteString(fmt.Sprintf("Plotted points: %d\n", len(nv.PointsCanceled)))
}

var summaryHeader = []string{"weather", "count", "mean", "median", "std"}

func summaryRows(rows []SummaryRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Weather, strconv.Itoa(r.Count), r.Mean.String(), r.Median.String(), r.Std.String()})
	}
	return out
}

func countRows(p *Pivot) [][]string {
	if p == nil {
		return nil
	}
	out := make([][]string, 0, len(p.Categories))
	for i, cat := range p.Categories {
		row := []string{cat}
		for _, c := range p.Counts[i] {
			row = append(row, strconv.Itoa(c))
		}
		out = append(out, row)
	}
	return out
}

func percentRows(p *PercentPivot) [][]string {
	if p == nil {
		return nil
	}
	out := make([][]string, 0, len(p.Categories))
	for i, cat := range p.Categories {
		row := []string{cat}
		for j := range p.Weathers {
			if !p.Rows[i].Defined {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%.2f", p.Rows[i].Values[j]))
		}
		out = append(out, row)
	}
	return out
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(b)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tw.SetCenterSeparator("|")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = safeVal(c)
		}
		tw.Append(cells)
	}
	tw.Render()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
