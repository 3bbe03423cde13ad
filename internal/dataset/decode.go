package dataset

import (
	"database/sql"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var requiredColumns = []string{"hotel", "location", "arrival_date_year", "is_canceled", "weather"}

var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "<na>": {}, "nat": {},
}

func isMissing(v string) bool {
	_, ok := missingTokens[strings.ToLower(v)]
	return ok
}

// decodeRecords maps raw rows (header first) onto Bookings. Columns are
// resolved by name once; unknown columns are ignored.
func decodeRecords(location string, records [][]string) ([]Booking, error) {
	if len(records) == 0 {
		return nil, &SchemaError{Location: location, Missing: requiredColumns}
	}
	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Location: location, Missing: missing}
	}

	out := make([]Booking, 0, len(records)-1)
	for _, rec := range records[1:] {
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			v := strings.TrimSpace(rec[i])
			if isMissing(v) {
				return ""
			}
			return v
		}
		num := func(col string) sql.NullFloat64 {
			x, ok := parseNumber(get(col))
			return sql.NullFloat64{Float64: x, Valid: ok}
		}
		b := Booking{
			Hotel:               get("hotel"),
			Location:            get("location"),
			ArrivalMonth:        get("arrival_date_month"),
			Meal:                get("meal"),
			Country:             get("country"),
			MarketSegment:       get("market_segment"),
			DistributionChannel: get("distribution_channel"),
			DepositType:         get("deposit_type"),
			CustomerType:        get("customer_type"),
			ReservationStatus:   get("reservation_status"),
			IsCanceled:          parseFlag(get("is_canceled")),
			Weather:             get("weather"),

			LeadTime:             num("lead_time"),
			StaysWeekendNights:   num("stays_in_weekend_nights"),
			StaysWeekNights:      num("stays_in_week_nights"),
			Adults:               num("adults"),
			Children:             num("children"),
			Babies:               num("babies"),
			ADR:                  num("adr"),
			DaysInWaitingList:    num("days_in_waiting_list"),
			TotalSpecialRequests: num("total_of_special_requests"),
		}
		if y, ok := parseNumber(get("arrival_date_year")); ok && y == math.Trunc(y) {
			b.ArrivalYear = sql.NullInt64{Int64: int64(y), Valid: true}
		}
		if t, ok := parseTimeMaybe(get("original_arrival_date")); ok {
			b.OriginalArrivalDate = sql.NullTime{Time: t, Valid: true}
		}
		out = append(out, b)
	}
	return out, nil
}

// parseNumber accepts finite numbers only; NaN and ±Inf count as missing.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseFlag reports whether a cancellation cell means "canceled".
func parseFlag(s string) bool {
	if f, ok := parseNumber(s); ok {
		return f == 1
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// parseTimeMaybe coerces a date cell; unparseable values are treated as missing.
func parseTimeMaybe(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006/01/02", "01/02/2006", "1/2/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
