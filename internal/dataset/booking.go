package dataset

import (
	"database/sql"
	"strconv"
	"strings"
)

// Booking is one reservation joined with its customer record and the
// weather observed at the hotel location. Missing categorical values are
// stored as "".
type Booking struct {
	Hotel               string
	Location            string
	ArrivalYear         sql.NullInt64
	ArrivalMonth        string
	Meal                string
	Country             string
	MarketSegment       string
	DistributionChannel string
	DepositType         string
	CustomerType        string
	ReservationStatus   string
	IsCanceled          bool
	Weather             string
	OriginalArrivalDate sql.NullTime

	LeadTime             sql.NullFloat64
	StaysWeekendNights   sql.NullFloat64
	StaysWeekNights      sql.NullFloat64
	Adults               sql.NullFloat64
	Children             sql.NullFloat64
	Babies               sql.NullFloat64
	ADR                  sql.NullFloat64
	DaysInWaitingList    sql.NullFloat64
	TotalSpecialRequests sql.NullFloat64
}

// Categorical names a categorical booking attribute.
type Categorical int

const (
	CatHotel Categorical = iota
	CatLocation
	CatArrivalMonth
	CatMeal
	CatCountry
	CatMarketSegment
	CatDistributionChannel
	CatDepositType
	CatCustomerType
	CatReservationStatus
)

var categoricalNames = []string{
	"hotel", "location", "arrival_date_month", "meal", "country",
	"market_segment", "distribution_channel", "deposit_type",
	"customer_type", "reservation_status",
}

// Categoricals lists every categorical variable in menu order.
func Categoricals() []Categorical {
	out := make([]Categorical, len(categoricalNames))
	for i := range out {
		out[i] = Categorical(i)
	}
	return out
}

func (c Categorical) String() string {
	if c < 0 || int(c) >= len(categoricalNames) {
		return "categorical(" + strconv.Itoa(int(c)) + ")"
	}
	return categoricalNames[c]
}

// Value returns the raw value of the attribute ("" when missing).
func (c Categorical) Value(b *Booking) string {
	switch c {
	case CatHotel:
		return b.Hotel
	case CatLocation:
		return b.Location
	case CatArrivalMonth:
		return b.ArrivalMonth
	case CatMeal:
		return b.Meal
	case CatCountry:
		return b.Country
	case CatMarketSegment:
		return b.MarketSegment
	case CatDistributionChannel:
		return b.DistributionChannel
	case CatDepositType:
		return b.DepositType
	case CatCustomerType:
		return b.CustomerType
	case CatReservationStatus:
		return b.ReservationStatus
	}
	return ""
}

// ParseCategorical resolves a column name to its Categorical.
func ParseCategorical(name string) (Categorical, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range categoricalNames {
		if cn == n {
			return Categorical(i), true
		}
	}
	return 0, false
}

// Numerical names a numerical booking attribute.
type Numerical int

const (
	NumLeadTime Numerical = iota
	NumStaysWeekendNights
	NumStaysWeekNights
	NumAdults
	NumChildren
	NumBabies
	NumADR
	NumDaysInWaitingList
	NumTotalSpecialRequests
)

var numericalNames = []string{
	"lead_time", "stays_in_weekend_nights", "stays_in_week_nights",
	"adults", "children", "babies", "adr", "days_in_waiting_list",
	"total_of_special_requests",
}

// Numericals lists every numerical variable in menu order.
func Numericals() []Numerical {
	out := make([]Numerical, len(numericalNames))
	for i := range out {
		out[i] = Numerical(i)
	}
	return out
}

func (n Numerical) String() string {
	if n < 0 || int(n) >= len(numericalNames) {
		return "numerical(" + strconv.Itoa(int(n)) + ")"
	}
	return numericalNames[n]
}

// Value returns the attribute value and whether it is present.
func (n Numerical) Value(b *Booking) (float64, bool) {
	var v sql.NullFloat64
	switch n {
	case NumLeadTime:
		v = b.LeadTime
	case NumStaysWeekendNights:
		v = b.StaysWeekendNights
	case NumStaysWeekNights:
		v = b.StaysWeekNights
	case NumAdults:
		v = b.Adults
	case NumChildren:
		v = b.Children
	case NumBabies:
		v = b.Babies
	case NumADR:
		v = b.ADR
	case NumDaysInWaitingList:
		v = b.DaysInWaitingList
	case NumTotalSpecialRequests:
		v = b.TotalSpecialRequests
	}
	return v.Float64, v.Valid
}

// ParseNumerical resolves a column name to its Numerical.
func ParseNumerical(name string) (Numerical, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, nn := range numericalNames {
		if nn == n {
			return Numerical(i), true
		}
	}
	return 0, false
}

// PreviewColumns is the column order used by Cells.
var PreviewColumns = []string{
	"hotel", "location", "arrival_date_year", "arrival_date_month",
	"original_arrival_date", "is_canceled", "weather",
	"meal", "country", "market_segment", "distribution_channel",
	"deposit_type", "customer_type", "reservation_status",
	"lead_time", "stays_in_weekend_nights", "stays_in_week_nights",
	"adults", "children", "babies", "adr", "days_in_waiting_list",
	"total_of_special_requests",
}

// Cells formats the booking as display strings in PreviewColumns order.
// Missing values render as "".
func (b *Booking) Cells() []string {
	year := ""
	if b.ArrivalYear.Valid {
		year = strconv.FormatInt(b.ArrivalYear.Int64, 10)
	}
	date := ""
	if b.OriginalArrivalDate.Valid {
		date = b.OriginalArrivalDate.Time.Format("2006-01-02")
	}
	canceled := "0"
	if b.IsCanceled {
		canceled = "1"
	}
	cells := []string{
		b.Hotel, b.Location, year, b.ArrivalMonth, date, canceled, b.Weather,
		b.Meal, b.Country, b.MarketSegment, b.DistributionChannel,
		b.DepositType, b.CustomerType, b.ReservationStatus,
	}
	for _, n := range Numericals() {
		if v, ok := n.Value(b); ok {
			cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
		} else {
			cells = append(cells, "")
		}
	}
	return cells
}

// MarshalText encodes the variable as its column name.
func (c Categorical) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText encodes the variable as its column name.
func (n Numerical) MarshalText() ([]byte, error) { return []byte(n.String()), nil }
