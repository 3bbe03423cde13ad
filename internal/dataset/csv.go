package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type csvSource struct{}

func (csvSource) CanLoad(location string) bool {
	name := strings.ToLower(location)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// Records reads the file into an all-string DataFrame so every cell keeps
// its raw text; typing happens in decodeRecords.
func (csvSource) Records(_ context.Context, location string, opt Options) ([][]string, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(location)
	}
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithDelimiter(delim),
		dataframe.NaNValues([]string{"NA", "NaN", "nan", "<nil>"}),
	)
	if df.Err != nil {
		// gota refuses a header without rows; treat that as an empty table.
		if header, ok := headerOnly(location, delim); ok {
			return [][]string{header}, nil
		}
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return df.Records(), nil
}

// headerOnly reports whether the file holds a header and no data rows.
func headerOnly(location string, delim rune) ([]string, bool) {
	f, err := os.Open(location)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil || len(header) == 0 {
		return nil, false
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return header, true
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
