package server

import (
	"database/sql"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	year := func(y int64) sql.NullInt64 { return sql.NullInt64{Int64: y, Valid: true} }
	rows := []dataset.Booking{
		{Hotel: "City Hotel", Location: "Lisbon", ArrivalYear: year(2016), IsCanceled: true, Weather: "Sunny", ArrivalMonth: "July"},
		{Hotel: "City Hotel", Location: "Lisbon", ArrivalYear: year(2017), Weather: "Rain", ArrivalMonth: "August"},
		{Hotel: "Resort Hotel", Location: "Algarve", ArrivalYear: year(2016), Weather: "Sunny", ArrivalMonth: "July"},
	}
	opt := analysis.DefaultOptions()
	opt.JitterSource = rand.NewPCG(3, 3)
	ex := analysis.NewExplorer(dataset.New("memory", rows), opt)
	return New(ex, Config{Categorical: dataset.CatArrivalMonth, Numerical: dataset.NumLeadTime})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, newTestServer(t), "/healthz")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"bookings":3`) {
		t.Fatalf("healthz: %d %s", w.Code, w.Body.String())
	}
}

func TestOptions(t *testing.T) {
	w := get(t, newTestServer(t), "/options")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		Filters     dataset.FilterOptions `json:"filters"`
		Categorical []string              `json:"categorical"`
		DefaultCat  string                `json:"default_categorical"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Filters.Hotels) != 2 || len(body.Filters.Years) != 2 || body.DefaultCat != "arrival_date_month" {
		t.Fatalf("unexpected options: %+v", body)
	}
	if len(body.Categorical) != len(dataset.Categoricals()) || body.Categorical[0] != "hotel" {
		t.Fatalf("categorical names = %v", body.Categorical)
	}
}

func TestExploreDefaultsToAllOptions(t *testing.T) {
	w := get(t, newTestServer(t), "/explore")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Summary     analysis.Summary `json:"summary"`
		Categorical struct {
			Variable string `json:"variable"`
			State    string `json:"state"`
		} `json:"categorical"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Summary.Bookings != 3 || res.Summary.CancelRate != 33.33 {
		t.Fatalf("summary = %+v", res.Summary)
	}
	if res.Categorical.Variable != "arrival_date_month" || res.Categorical.State != "ready" {
		t.Fatalf("categorical = %+v", res.Categorical)
	}
}

func TestExploreFilters(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/explore?hotel=City+Hotel&year=2016&cat=hotel&num=adr")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"bookings":1`) {
		t.Fatalf("filtered explore: %d %s", w.Code, w.Body.String())
	}
	w = get(t, s, "/explore?location=")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"bookings":0`) || !strings.Contains(w.Body.String(), `"state":"empty"`) {
		t.Fatalf("empty selection: %d %s", w.Code, w.Body.String())
	}
}

func TestExploreBadRequests(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/explore?cat=nope", "/explore?num=nope", "/explore?year=abc"} {
		w := get(t, s, target)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"error"`) {
			t.Errorf("%s: got %d %s", target, w.Code, w.Body.String())
		}
	}
}

func TestExploreDeduplicatesRepeatedParams(t *testing.T) {
	w := get(t, newTestServer(t), "/explore?hotel=City+Hotel&hotel=City+Hotel&location=Lisbon&location=+Lisbon+&year=2016&year=2016")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Summary analysis.Summary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Summary.HotelTypes != 1 || res.Summary.Locations != 1 || res.Summary.Bookings != 1 {
		t.Fatalf("summary = %+v", res.Summary)
	}
}
