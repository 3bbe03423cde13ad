package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLDriverRouting(t *testing.T) {
	cases := []struct {
		in, driver, dsn string
		ok              bool
	}{
		{"postgres://u:p@localhost/db?sslmode=disable", "postgres", "postgres://u:p@localhost/db?sslmode=disable", true},
		{"postgresql://localhost/db", "postgres", "postgresql://localhost/db", true},
		{"sqlite:///tmp/hotel.db", "sqlite3", "/tmp/hotel.db", true},
		{"hotel.csv", "", "", false},
	}
	for _, tc := range cases {
		d, dsn, ok := sqlDriver(tc.in)
		if d != tc.driver || dsn != tc.dsn || ok != tc.ok {
			t.Errorf("sqlDriver(%q) = %q %q %v", tc.in, d, dsn, ok)
		}
	}
}

func TestSQLRejectsBadTable(t *testing.T) {
	_, err := sqlSource{}.Records(context.Background(), "sqlite://x.db", Options{Table: "bookings; DROP TABLE x"})
	if err == nil || !strings.Contains(err.Error(), "invalid table name") {
		t.Fatalf("expected invalid table error, got %v", err)
	}
}

func TestSQLiteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE hotel_weather (hotel TEXT, location TEXT, arrival_date_year INTEGER, is_canceled INTEGER, weather TEXT, adr REAL)`); err != nil {
		if strings.Contains(err.Error(), "cgo") {
			t.Skipf("sqlite unavailable: %v", err)
		}
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO hotel_weather VALUES ('City Hotel','Lisbon',2016,1,'Rain',80.5), ('Resort Hotel','Algarve',2017,0,NULL,NULL)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ds, err := Load(context.Background(), "sqlite://"+path, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rows := ds.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if !rows[0].IsCanceled || rows[0].ArrivalYear.Int64 != 2016 || rows[0].ADR.Float64 != 80.5 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Weather != "" || rows[1].ADR.Valid {
		t.Fatalf("NULLs should decode as missing: %+v", rows[1])
	}
}
