package analysis

import "github.com/KaramelBytes/hotelscope/internal/dataset"

// Filter selects bookings by hotel type, location and arrival year.
// A booking passes only when it matches all three dimensions; an empty
// selection on any dimension matches nothing.
type Filter struct {
	Hotels    []string `json:"hotels" yaml:"hotels"`
	Locations []string `json:"locations" yaml:"locations"`
	Years     []int    `json:"years" yaml:"years"`
}

// AllOf builds the filter that selects every offered option.
func AllOf(opt dataset.FilterOptions) Filter {
	return Filter{
		Hotels:    append([]string(nil), opt.Hotels...),
		Locations: append([]string(nil), opt.Locations...),
		Years:     append([]int(nil), opt.Years...),
	}
}

// Apply returns the bookings satisfying the filter, in input order.
func (f Filter) Apply(rows []*dataset.Booking) []*dataset.Booking {
	hotels := stringSet(f.Hotels)
	locs := stringSet(f.Locations)
	years := make(map[int64]struct{}, len(f.Years))
	for _, y := range f.Years {
		years[int64(y)] = struct{}{}
	}
	out := make([]*dataset.Booking, 0)
	if len(hotels) == 0 || len(locs) == 0 || len(years) == 0 {
		return out
	}
	for _, b := range rows {
		if b.Hotel == "" || b.Location == "" || !b.ArrivalYear.Valid {
			continue
		}
		if _, ok := hotels[b.Hotel]; !ok {
			continue
		}
		if _, ok := locs[b.Location]; !ok {
			continue
		}
		if _, ok := years[b.ArrivalYear.Int64]; !ok {
			continue
		}
		out = append(out, b)
	}
	return out
}

func stringSet(vals []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}
