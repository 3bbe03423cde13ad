package dataset

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Dataset is the loaded, read-only booking table. It is built once per
// process and shared by every recomputation.
type Dataset struct {
	source   string
	loadedAt time.Time
	rows     []Booking
}

// New wraps already-decoded bookings. The slice must not be modified afterwards.
func New(source string, rows []Booking) *Dataset {
	return &Dataset{source: source, loadedAt: time.Now(), rows: rows}
}

// Load reads and decodes the bookings at location using the first
// registered source that accepts it.
func Load(ctx context.Context, location string, opt Options) (*Dataset, error) {
	src, err := sourceFor(location)
	if err != nil {
		return nil, err
	}
	records, err := src.Records(ctx, location, opt)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRecords(location, records)
	if err != nil {
		return nil, err
	}
	return New(location, rows), nil
}

// Source returns the location the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt reports when the dataset was loaded.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len returns the number of bookings.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns pointers into the shared table. Callers must treat them as read-only.
func (d *Dataset) Rows() []*Booking {
	out := make([]*Booking, len(d.rows))
	for i := range d.rows {
		out[i] = &d.rows[i]
	}
	return out
}

// FilterOptions lists the distinct values offered for each filter dimension.
type FilterOptions struct {
	Hotels    []string `json:"hotels" yaml:"hotels"`
	Locations []string `json:"locations" yaml:"locations"`
	Years     []int    `json:"years" yaml:"years"`
}

// Options returns sorted distinct hotels, locations and years; missing values are skipped.
func (d *Dataset) Options() FilterOptions {
	hotels := map[string]struct{}{}
	locs := map[string]struct{}{}
	years := map[int]struct{}{}
	for i := range d.rows {
		b := &d.rows[i]
		if b.Hotel != "" {
			hotels[b.Hotel] = struct{}{}
		}
		if b.Location != "" {
			locs[b.Location] = struct{}{}
		}
		if b.ArrivalYear.Valid {
			years[int(b.ArrivalYear.Int64)] = struct{}{}
		}
	}
	opt := FilterOptions{
		Hotels:    sortedKeys(hotels),
		Locations: sortedKeys(locs),
		Years:     make([]int, 0, len(years)),
	}
	for y := range years {
		opt.Years = append(opt.Years, y)
	}
	sort.Ints(opt.Years)
	return opt
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// String summarizes the dataset for logs.
func (d *Dataset) String() string {
	return fmt.Sprintf("%s (%d bookings)", d.source, len(d.rows))
}
