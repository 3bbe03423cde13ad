package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/xuri/excelize/v2"
)

const bookingsCSV = "hotel,location,arrival_date_year,arrival_date_month,is_canceled,weather,lead_time,original_arrival_date\n" +
	"City Hotel,Lisbon,2016,July,1,Rain,10,2016-07-01\n" +
	"Resort Hotel,Algarve,2017,August,0,Sunny,NA,2017-08-03\n" +
	"City Hotel,Porto,2016,July,0,,5,garbage\n" +
	"Resort Hotel,,2015,May,0,Cloudy,7,2015-05-09\n"

func TestLoadCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "hotel_weather.csv")
	if err := os.WriteFile(p, []byte(bookingsCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := dataset.Load(context.Background(), p, dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("len = %d, want 4", ds.Len())
	}
	rows := ds.Rows()
	if rows[1].LeadTime.Valid {
		t.Fatalf("NA lead_time should be missing")
	}
	if rows[2].Weather != "" || rows[2].OriginalArrivalDate.Valid {
		t.Fatalf("row 3 should have missing weather and date: %+v", rows[2])
	}

	opts := ds.Options()
	if strings.Join(opts.Hotels, "|") != "City Hotel|Resort Hotel" {
		t.Fatalf("hotels = %v", opts.Hotels)
	}
	if strings.Join(opts.Locations, "|") != "Algarve|Lisbon|Porto" {
		t.Fatalf("locations = %v", opts.Locations)
	}
	if len(opts.Years) != 3 || opts.Years[0] != 2015 || opts.Years[2] != 2017 {
		t.Fatalf("years = %v", opts.Years)
	}
}

func TestLoadTSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bookings.tsv")
	body := strings.ReplaceAll(bookingsCSV, ",", "\t")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := dataset.Load(context.Background(), p, dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 4 || ds.Rows()[0].Location != "Lisbon" {
		t.Fatalf("unexpected tsv decode: %d rows", ds.Len())
	}
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bookings.xlsx")
	f := excelize.NewFile()
	if _, err := f.NewSheet("bookings"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, line := range strings.Split(strings.TrimSpace(bookingsCSV), "\n") {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("bookings", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	opt := dataset.DefaultOptions()
	opt.Sheet = "Bookings"
	ds, err := dataset.Load(context.Background(), p, opt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 4 || !ds.Rows()[0].IsCanceled {
		t.Fatalf("unexpected xlsx decode: %d rows", ds.Len())
	}

	opt.Sheet = "nope"
	if _, err := dataset.Load(context.Background(), p, opt); err == nil || !strings.Contains(err.Error(), "Available sheets") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}

func TestLoadUnsupportedAndSchema(t *testing.T) {
	_, err := dataset.Load(context.Background(), "bookings.parquet", dataset.DefaultOptions())
	if !errors.Is(err, dataset.ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}

	p := filepath.Join(t.TempDir(), "thin.csv")
	if err := os.WriteFile(p, []byte("hotel,weather\nCity Hotel,Rain\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = dataset.Load(context.Background(), p, dataset.DefaultOptions())
	var se *dataset.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestLoadHeaderOnlyCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.csv")
	header := strings.SplitN(bookingsCSV, "\n", 2)[0] + "\n"
	if err := os.WriteFile(p, []byte(header), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := dataset.Load(context.Background(), p, dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("header-only csv should load as empty: %v", err)
	}
	if ds.Len() != 0 || len(ds.Options().Hotels) != 0 {
		t.Fatalf("expected no rows, got %d", ds.Len())
	}

	if err := os.WriteFile(p, []byte("hotel,weather\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var se *dataset.SchemaError
	if _, err := dataset.Load(context.Background(), p, dataset.DefaultOptions()); !errors.As(err, &se) {
		t.Fatalf("header-only csv still needs required columns, got %v", err)
	}
}
