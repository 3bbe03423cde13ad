package analysis

import (
	"sort"

	"github.com/KaramelBytes/hotelscope/internal/dataset"
)

const (
	// UnknownCategory replaces missing categorical values before grouping.
	UnknownCategory = "Unknown"
	// UnknownWeather replaces missing weather values before grouping.
	UnknownWeather = "Unknown_weather"
)

func categoryLabel(c dataset.Categorical, b *dataset.Booking) string {
	if v := c.Value(b); v != "" {
		return v
	}
	return UnknownCategory
}

func weatherLabel(b *dataset.Booking) string {
	if b.Weather != "" {
		return b.Weather
	}
	return UnknownWeather
}

// RateRow is the cancellation outcome of one category.
type RateRow struct {
	Category string  `json:"category" yaml:"category"`
	Total    int     `json:"total_bookings" yaml:"total_bookings"`
	Canceled int     `json:"canceled_bookings" yaml:"canceled_bookings"`
	Rate     float64 `json:"cancel_rate" yaml:"cancel_rate"`
}

// RateTable lists categories by ascending cancellation rate.
type RateTable struct {
	State State     `json:"state" yaml:"state"`
	Rows  []RateRow `json:"rows" yaml:"rows"`
}

// CancellationRates groups rows by the categorical variable and computes
// canceled/total*100 per group, sorted by rate then category.
func CancellationRates(rows []*dataset.Booking, c dataset.Categorical) RateTable {
	if len(rows) == 0 {
		return RateTable{State: StateEmpty}
	}
	type acc struct{ total, canceled int }
	groups := map[string]*acc{}
	for _, b := range rows {
		key := categoryLabel(c, b)
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.total++
		if b.IsCanceled {
			a.canceled++
		}
	}
	out := make([]RateRow, 0, len(groups))
	for k, a := range groups {
		out = append(out, RateRow{Category: k, Total: a.total, Canceled: a.canceled, Rate: percent(a.canceled, a.total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate == out[j].Rate {
			return out[i].Category < out[j].Category
		}
		return out[i].Rate < out[j].Rate
	})
	return RateTable{State: StateReady, Rows: out}
}

// Pivot holds counts keyed by (category, weather). Counts[i][j] belongs to
// Categories[i] and Weathers[j].
type Pivot struct {
	Categories []string `json:"categories" yaml:"categories"`
	Weathers   []string `json:"weathers" yaml:"weathers"`
	Counts     [][]int  `json:"counts" yaml:"counts"`
}

// RowTotal sums the counts of row i.
func (p *Pivot) RowTotal(i int) int {
	var n int
	for _, c := range p.Counts[i] {
		n += c
	}
	return n
}

// PercentRow is one row-normalized pivot row. Rows whose count total is
// zero have no percentages and are not Defined.
type PercentRow struct {
	Defined bool      `json:"defined" yaml:"defined"`
	Values  []float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// PercentPivot is a Pivot with each row divided by its own total.
type PercentPivot struct {
	Categories []string     `json:"categories" yaml:"categories"`
	Weathers   []string     `json:"weathers" yaml:"weathers"`
	Rows       []PercentRow `json:"rows" yaml:"rows"`
}

// Percentages row-normalizes the pivot to percentages rounded to 2 decimals.
func (p *Pivot) Percentages() *PercentPivot {
	out := &PercentPivot{Categories: p.Categories, Weathers: p.Weathers, Rows: make([]PercentRow, len(p.Counts))}
	for i, row := range p.Counts {
		total := p.RowTotal(i)
		if total == 0 {
			continue
		}
		vals := make([]float64, len(row))
		for j, c := range row {
			vals[j] = percent(c, total)
		}
		out.Rows[i] = PercentRow{Defined: true, Values: vals}
	}
	return out
}

// CrossTabOptions sets the top-N limits of the weather cross-tabulation.
type CrossTabOptions struct {
	// TopCategories restricts the country variable to its most frequent values.
	TopCategories int
	// TopWeathers restricts the weather dimension.
	TopWeathers int
}

// CrossTab compares weather distributions per category for all bookings
// and for canceled bookings only. Both pivots share category and weather order.
type CrossTab struct {
	State State `json:"state" yaml:"state"`
	// RestrictedTo lists the categories kept by the country top-N restriction, if applied.
	RestrictedTo []string      `json:"restricted_to,omitempty" yaml:"restricted_to,omitempty"`
	Weathers     []string      `json:"weathers" yaml:"weathers"`
	All          *Pivot        `json:"all,omitempty" yaml:"all,omitempty"`
	AllPercent   *PercentPivot `json:"all_percent,omitempty" yaml:"all_percent,omitempty"`
	// CanceledState is StateAbsent when no canceled booking falls in the top weathers.
	CanceledState   State         `json:"canceled_state" yaml:"canceled_state"`
	Canceled        *Pivot        `json:"canceled,omitempty" yaml:"canceled,omitempty"`
	CanceledPercent *PercentPivot `json:"canceled_percent,omitempty" yaml:"canceled_percent,omitempty"`
}

// WeatherCrossTab builds the all-bookings and canceled-only pivots of the
// categorical variable against the top weathers of the all-bookings rows.
// The canceled pivot is reindexed onto the all-bookings category order.
func WeatherCrossTab(rows []*dataset.Booking, c dataset.Categorical, opt CrossTabOptions) CrossTab {
	if len(rows) == 0 {
		return CrossTab{State: StateEmpty, CanceledState: StateEmpty}
	}
	cats := make([]string, len(rows))
	for i, b := range rows {
		cats[i] = categoryLabel(c, b)
	}

	var ct CrossTab
	keep := rows
	if c == dataset.CatCountry {
		ct.RestrictedTo = TopN(cats, opt.TopCategories)
		allowed := stringSet(ct.RestrictedTo)
		keep = make([]*dataset.Booking, 0, len(rows))
		kept := make([]string, 0, len(rows))
		for i, b := range rows {
			if _, ok := allowed[cats[i]]; ok {
				keep = append(keep, b)
				kept = append(kept, cats[i])
			}
		}
		cats = kept
	}

	weathers := make([]string, len(keep))
	for i, b := range keep {
		weathers[i] = weatherLabel(b)
	}
	ct.Weathers = TopN(weathers, opt.TopWeathers)
	col := make(map[string]int, len(ct.Weathers))
	for j, w := range ct.Weathers {
		col[w] = j
	}

	all := map[string][]int{}
	canceled := map[string][]int{}
	canceledRows := 0
	for i, b := range keep {
		j, ok := col[weathers[i]]
		if !ok {
			continue
		}
		addCell(all, cats[i], j, len(ct.Weathers))
		if b.IsCanceled {
			addCell(canceled, cats[i], j, len(ct.Weathers))
			canceledRows++
		}
	}

	order := categoryOrder(all)
	ct.State = StateReady
	ct.All = buildPivot(all, order, ct.Weathers)
	ct.AllPercent = ct.All.Percentages()
	if canceledRows == 0 {
		ct.CanceledState = StateAbsent
		return ct
	}
	ct.CanceledState = StateReady
	ct.Canceled = buildPivot(canceled, order, ct.Weathers)
	ct.CanceledPercent = ct.Canceled.Percentages()
	return ct
}

func addCell(m map[string][]int, cat string, j, width int) {
	row := m[cat]
	if row == nil {
		row = make([]int, width)
		m[cat] = row
	}
	row[j]++
}

// categoryOrder sorts categories by descending row total; ties fall back to
// lexical order.
func categoryOrder(m map[string][]int) []string {
	type kv struct {
		key   string
		total int
	}
	list := make([]kv, 0, len(m))
	for k, row := range m {
		t := 0
		for _, c := range row {
			t += c
		}
		list = append(list, kv{k, t})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].key < list[j].key })
	sort.SliceStable(list, func(i, j int) bool { return list[i].total > list[j].total })
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.key
	}
	return out
}

// buildPivot lays counts out in the given category order; categories
// absent from m become zero rows.
func buildPivot(m map[string][]int, order, weathers []string) *Pivot {
	p := &Pivot{Categories: order, Weathers: weathers, Counts: make([][]int, len(order))}
	for i, cat := range order {
		if row, ok := m[cat]; ok {
			p.Counts[i] = row
		} else {
			p.Counts[i] = make([]int, len(weathers))
		}
	}
	return p
}
