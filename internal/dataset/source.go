package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Options controls how a source is read.
type Options struct {
	// Table is the SQL table holding bookings (sql sources only).
	Table string
	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Table: "hotel_weather"}
}

// Source reads raw rows (header first) from one kind of location.
type Source interface {
	CanLoad(location string) bool
	Records(ctx context.Context, location string, opt Options) ([][]string, error)
}

var registry []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

func sourceFor(location string) (Source, error) {
	for _, s := range registry {
		if s.CanLoad(location) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
}

func init() {
	Register(sqlSource{})
	Register(xlsxSource{})
	Register(csvSource{})
}

// ErrUnsupportedSource indicates no registered source understands the location.
var ErrUnsupportedSource = errors.New("unsupported data source")

// SchemaError reports required columns absent from a source header.
type SchemaError struct {
	Location string
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %s: missing required columns: %s", e.Location, strings.Join(e.Missing, ", "))
}
