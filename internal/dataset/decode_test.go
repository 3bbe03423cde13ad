package dataset

import (
	"errors"
	"testing"
)

func TestDecodeRecordsMissingAndCoercion(t *testing.T) {
	records := [][]string{
		{"Hotel", "location", "arrival_date_year", "is_canceled", "weather", "lead_time", "adr", "original_arrival_date", "meal"},
		{"City Hotel", "Lisbon", "2016", "1", "Rain", "34", "99.5", "2016-07-01", "BB"},
		{"Resort Hotel", "NA", "2017.0", "0", "", "NaN", "x", "not-a-date", ""},
		{"Resort Hotel", "Algarve", "", "true", "Sunny"},
		{"City Hotel", "Porto", "inf", "Infinity", "Fog", "inf", "-Infinity"},
	}
	rows, err := decodeRecords("mem", records)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	first := rows[0]
	if first.Hotel != "City Hotel" || !first.IsCanceled || first.Weather != "Rain" || first.Meal != "BB" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if !first.ArrivalYear.Valid || first.ArrivalYear.Int64 != 2016 {
		t.Fatalf("year = %+v", first.ArrivalYear)
	}
	if !first.LeadTime.Valid || first.LeadTime.Float64 != 34 {
		t.Fatalf("lead_time = %+v", first.LeadTime)
	}
	if !first.OriginalArrivalDate.Valid || first.OriginalArrivalDate.Time.Month() != 7 {
		t.Fatalf("date = %+v", first.OriginalArrivalDate)
	}

	second := rows[1]
	if second.Location != "" || second.Weather != "" || second.Meal != "" {
		t.Fatalf("missing tokens should decode to empty: %+v", second)
	}
	if second.IsCanceled {
		t.Fatalf("0 should not be canceled")
	}
	if !second.ArrivalYear.Valid || second.ArrivalYear.Int64 != 2017 {
		t.Fatalf("2017.0 should decode as year 2017, got %+v", second.ArrivalYear)
	}
	if second.LeadTime.Valid || second.ADR.Valid {
		t.Fatalf("NaN / garbage numerics should be missing: %+v %+v", second.LeadTime, second.ADR)
	}
	if second.OriginalArrivalDate.Valid {
		t.Fatalf("unparseable date should be missing")
	}

	third := rows[2]
	if third.ArrivalYear.Valid {
		t.Fatalf("short row should leave year missing")
	}
	if !third.IsCanceled {
		t.Fatalf("'true' should be canceled")
	}

	fourth := rows[3]
	if fourth.LeadTime.Valid || fourth.ADR.Valid || fourth.ArrivalYear.Valid {
		t.Fatalf("infinite numerics should be missing: %+v %+v %+v", fourth.LeadTime, fourth.ADR, fourth.ArrivalYear)
	}
	if fourth.IsCanceled {
		t.Fatalf("'Infinity' should not be canceled")
	}
}

func TestDecodeRecordsSchemaError(t *testing.T) {
	_, err := decodeRecords("bad.csv", [][]string{{"hotel", "weather"}})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	want := []string{"arrival_date_year", "is_canceled", "location"}
	if len(se.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", se.Missing, want)
	}
	for i := range want {
		if se.Missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", se.Missing, want)
		}
	}
}

func TestParseVariables(t *testing.T) {
	if c, ok := ParseCategorical(" Country "); !ok || c != CatCountry {
		t.Fatalf("ParseCategorical country = %v %v", c, ok)
	}
	if _, ok := ParseCategorical("lead_time"); ok {
		t.Fatalf("lead_time is not categorical")
	}
	if n, ok := ParseNumerical("adr"); !ok || n != NumADR {
		t.Fatalf("ParseNumerical adr = %v %v", n, ok)
	}
	for _, c := range Categoricals() {
		if back, ok := ParseCategorical(c.String()); !ok || back != c {
			t.Errorf("categorical %v does not round-trip", c)
		}
	}
	for _, n := range Numericals() {
		if back, ok := ParseNumerical(n.String()); !ok || back != n {
			t.Errorf("numerical %v does not round-trip", n)
		}
	}
}

func TestCellsMatchPreviewColumns(t *testing.T) {
	rows, err := decodeRecords("mem", [][]string{
		{"hotel", "location", "arrival_date_year", "is_canceled", "weather", "adr"},
		{"City Hotel", "Lisbon", "2016", "1", "Rain", "80.25"},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cells := rows[0].Cells()
	if len(cells) != len(PreviewColumns) {
		t.Fatalf("cells = %d, columns = %d", len(cells), len(PreviewColumns))
	}
	got := map[string]string{}
	for i, c := range PreviewColumns {
		got[c] = cells[i]
	}
	if got["adr"] != "80.25" || got["is_canceled"] != "1" || got["arrival_date_year"] != "2016" || got["lead_time"] != "" {
		t.Fatalf("unexpected cells: %v", got)
	}
}
