package analysis

import (
	"fmt"
	"math"
	"strconv"
)

// State tells the presentation layer whether a view carries data.
type State int

const (
	// StateReady means the view holds computed data.
	StateReady State = iota
	// StateEmpty means the filtered subset (or the rows usable by the view) is empty.
	StateEmpty
	// StateAbsent means overall data exists but the canceled-only view has none.
	StateAbsent
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateAbsent:
		return "absent"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stat is a rounded statistic that may be undefined (NaN).
// Undefined values encode as JSON null.
type Stat float64

// Defined reports whether the statistic has a value.
func (s Stat) Defined() bool { return !math.IsNaN(float64(s)) && !math.IsInf(float64(s), 0) }

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Defined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'f', -1, 64), nil
}

func (s Stat) String() string {
	if !s.Defined() {
		return "NaN"
	}
	return strconv.FormatFloat(float64(s), 'f', 2, 64)
}

// round2 rounds half to even at two decimals, matching numpy's round.
func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.RoundToEven(x*100) / 100
}

// percent returns part/whole*100 rounded; whole must be positive.
func percent(part, whole int) float64 {
	return round2(float64(part) * 100.0 / float64(whole))
}
