package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/google/uuid"
)

// Options controls the limits used by an Explorer.
type Options struct {
	// PreviewRows is the number of leading filtered rows returned.
	PreviewRows int
	// TopCategories limits the country variable in the weather cross-tab.
	TopCategories int
	// TopWeathers limits the weather dimension.
	TopWeathers int
	// SampleCap is the maximum number of plotted points per weather group.
	SampleCap int
	// SampleSeed seeds every per-group draw.
	SampleSeed uint64
	// Jitter is the half-width of the horizontal display jitter.
	Jitter float64
	// HistogramBins is the number of bins per cancellation series.
	HistogramBins int
	// JitterSource seeds display jitter; nil means clock-seeded. Each
	// Explore call derives its own generator from it, so it may be shared.
	JitterSource rand.Source
}

// DefaultOptions returns the dashboard limits.
func DefaultOptions() Options {
	return Options{
		PreviewRows:   5,
		TopCategories: 10,
		TopWeathers:   8,
		SampleCap:     500,
		SampleSeed:    42,
		Jitter:        0.2,
		HistogramBins: 30,
	}
}

// Request is one interaction: the filters plus the chosen variables.
type Request struct {
	Filter      Filter
	Categorical dataset.Categorical
	Numerical   dataset.Numerical
}

// Summary holds the headline metrics of the filtered subset.
type Summary struct {
	Bookings   int     `json:"bookings" yaml:"bookings"`
	CancelRate float64 `json:"cancel_rate" yaml:"cancel_rate"`
	HotelTypes int     `json:"hotel_types" yaml:"hotel_types"`
	Locations  int     `json:"locations" yaml:"locations"`
}

// CategoricalView is the categorical explorer output.
type CategoricalView struct {
	Variable dataset.Categorical `json:"variable" yaml:"variable"`
	State    State               `json:"state" yaml:"state"`
	Rates    RateTable           `json:"rates" yaml:"rates"`
	CrossTab CrossTab            `json:"crosstab" yaml:"crosstab"`
}

// NumericalView is the numerical explorer output.
type NumericalView struct {
	Variable dataset.Numerical `json:"variable" yaml:"variable"`
	State    State             `json:"state" yaml:"state"`
	// NotCanceled and Canceled split the non-missing values by cancellation flag.
	NotCanceled Histogram `json:"not_canceled" yaml:"not_canceled"`
	Canceled    Histogram `json:"canceled" yaml:"canceled"`
	// Weathers is the shared top weather order; point groups index into it.
	Weathers        []string     `json:"weathers" yaml:"weathers"`
	SummaryAll      []SummaryRow `json:"summary_all" yaml:"summary_all"`
	PointsAll       []Point      `json:"points_all" yaml:"points_all"`
	CanceledState   State        `json:"canceled_state" yaml:"canceled_state"`
	SummaryCanceled []SummaryRow `json:"summary_canceled,omitempty" yaml:"summary_canceled,omitempty"`
	PointsCanceled  []Point      `json:"points_canceled,omitempty" yaml:"points_canceled,omitempty"`
}

// Result is everything the presentation layer needs for one interaction.
type Result struct {
	RequestID      string          `json:"request_id" yaml:"request_id"`
	Summary        Summary         `json:"summary" yaml:"summary"`
	PreviewColumns []string        `json:"preview_columns" yaml:"preview_columns"`
	Preview        [][]string      `json:"preview" yaml:"preview"`
	Categorical    CategoricalView `json:"categorical" yaml:"categorical"`
	Numerical      NumericalView   `json:"numerical" yaml:"numerical"`
}

// Explorer recomputes every view from a shared read-only dataset. It is
// safe for concurrent use.
type Explorer struct {
	data *dataset.Dataset
	rows []*dataset.Booking
	opt  Options

	mu     sync.Mutex
	jitter *rand.Rand // nil when opt.JitterSource is nil
}

// NewExplorer binds an explorer to a loaded dataset.
func NewExplorer(ds *dataset.Dataset, opt Options) *Explorer {
	e := &Explorer{data: ds, rows: ds.Rows(), opt: opt}
	if opt.JitterSource != nil {
		e.jitter = rand.New(opt.JitterSource)
	}
	return e
}

// jitterSource returns a fresh per-request source, or nil for clock seeding.
func (e *Explorer) jitterSource() rand.Source {
	if e.jitter == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return rand.NewPCG(e.jitter.Uint64(), e.jitter.Uint64())
}

// Dataset returns the dataset the explorer reads.
func (e *Explorer) Dataset() *dataset.Dataset { return e.data }

// Explore filters the dataset and computes all views for the request.
func (e *Explorer) Explore(req Request) (*Result, error) {
	if req.Categorical < 0 || int(req.Categorical) >= len(dataset.Categoricals()) {
		return nil, &VariableError{Kind: "categorical", Name: req.Categorical.String()}
	}
	if req.Numerical < 0 || int(req.Numerical) >= len(dataset.Numericals()) {
		return nil, &VariableError{Kind: "numerical", Name: req.Numerical.String()}
	}
	subset := req.Filter.Apply(e.rows)

	res := &Result{
		RequestID:      uuid.NewString(),
		Summary:        summarize(subset, req.Filter),
		PreviewColumns: dataset.PreviewColumns,
		Preview:        preview(subset, e.opt.PreviewRows),
	}
	res.Categorical = CategoricalView{
		Variable: req.Categorical,
		State:    stateOf(len(subset)),
		Rates:    CancellationRates(subset, req.Categorical),
		CrossTab: WeatherCrossTab(subset, req.Categorical, CrossTabOptions{
			TopCategories: e.opt.TopCategories,
			TopWeathers:   e.opt.TopWeathers,
		}),
	}
	res.Numerical = e.numerical(subset, req.Numerical)
	return res, nil
}

func stateOf(n int) State {
	if n == 0 {
		return StateEmpty
	}
	return StateReady
}

func summarize(subset []*dataset.Booking, f Filter) Summary {
	s := Summary{Bookings: len(subset), HotelTypes: len(stringSet(f.Hotels)), Locations: len(stringSet(f.Locations))}
	if len(subset) == 0 {
		return s
	}
	canceled := 0
	for _, b := range subset {
		if b.IsCanceled {
			canceled++
		}
	}
	s.CancelRate = percent(canceled, len(subset))
	return s
}

func preview(subset []*dataset.Booking, n int) [][]string {
	if n > len(subset) {
		n = len(subset)
	}
	out := make([][]string, 0, n)
	for _, b := range subset[:n] {
		out = append(out, b.Cells())
	}
	return out
}

type observation struct {
	weather  string
	value    float64
	canceled bool
}

// numerical builds the histogram split, the top-weather summaries and the
// sampled strip-plot points for one numerical variable.
func (e *Explorer) numerical(subset []*dataset.Booking, n dataset.Numerical) NumericalView {
	v := NumericalView{Variable: n, State: stateOf(len(subset)), CanceledState: StateEmpty}
	if len(subset) == 0 {
		return v
	}

	var canceledVals, keptVals []float64
	obs := make([]observation, 0, len(subset))
	labels := make([]string, 0, len(subset))
	for _, b := range subset {
		x, ok := n.Value(b)
		if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if b.IsCanceled {
			canceledVals = append(canceledVals, x)
		} else {
			keptVals = append(keptVals, x)
		}
		w := weatherLabel(b)
		obs = append(obs, observation{weather: w, value: x, canceled: b.IsCanceled})
		labels = append(labels, w)
	}
	v.NotCanceled = NewHistogram("Not canceled", keptVals, e.opt.HistogramBins)
	v.Canceled = NewHistogram("Canceled", canceledVals, e.opt.HistogramBins)
	if len(obs) == 0 {
		v.State = StateEmpty
		return v
	}

	v.Weathers = TopN(labels, e.opt.TopWeathers)
	pos := make(map[string]int, len(v.Weathers))
	for i, w := range v.Weathers {
		pos[w] = i
	}
	all := make([][]float64, len(v.Weathers))
	canceled := make([][]float64, len(v.Weathers))
	canceledRows := 0
	for _, o := range obs {
		i, ok := pos[o.weather]
		if !ok {
			continue
		}
		all[i] = append(all[i], o.value)
		if o.canceled {
			canceled[i] = append(canceled[i], o.value)
			canceledRows++
		}
	}

	proj := NewProjector(e.opt.SampleCap, e.opt.SampleSeed, e.opt.Jitter, e.jitterSource())
	v.SummaryAll = SummarizeGroups(v.Weathers, all)
	v.PointsAll = proj.Project(v.Weathers, all)
	if canceledRows == 0 {
		v.CanceledState = StateAbsent
		return v
	}
	v.CanceledState = StateReady
	v.SummaryCanceled = SummarizeGroups(v.Weathers, canceled)
	v.PointsCanceled = proj.Project(v.Weathers, canceled)
	return v
}

// String identifies the request in debug output.
func (r Request) String() string {
	return fmt.Sprintf("hotels=%v locations=%v years=%v cat=%s num=%s",
		r.Filter.Hotels, r.Filter.Locations, r.Filter.Years, r.Categorical, r.Numerical)
}
