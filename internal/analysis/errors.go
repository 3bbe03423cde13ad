package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/hotelscope/internal/dataset"
)

// VariableError indicates an unknown categorical or numerical variable.
type VariableError struct {
	Kind string // categorical|numerical
	Name string
}

func (e *VariableError) Error() string {
	var valid []string
	if e.Kind == "categorical" {
		for _, c := range dataset.Categoricals() {
			valid = append(valid, c.String())
		}
	} else {
		for _, n := range dataset.Numericals() {
			valid = append(valid, n.String())
		}
	}
	return fmt.Sprintf("unknown %s variable %q (use one of: %s)", e.Kind, e.Name, strings.Join(valid, ", "))
}

// ResolveVariables parses variable names into their typed accessors.
func ResolveVariables(categorical, numerical string) (dataset.Categorical, dataset.Numerical, error) {
	c, ok := dataset.ParseCategorical(categorical)
	if !ok {
		return 0, 0, &VariableError{Kind: "categorical", Name: categorical}
	}
	n, ok := dataset.ParseNumerical(numerical)
	if !ok {
		return 0, 0, &VariableError{Kind: "numerical", Name: numerical}
	}
	return c, n, nil
}
