package analysis

import "sort"

// CategoryCount is a value with its frequency.
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// ValueCounts returns value frequencies, most frequent first. Ties keep
// the order in which values first appear in the input.
func ValueCounts(values []string) []CategoryCount {
	pos := make(map[string]int)
	var out []CategoryCount
	for _, v := range values {
		i, ok := pos[v]
		if !ok {
			i = len(out)
			pos[v] = i
			out = append(out, CategoryCount{Value: v})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN returns the n most frequent values (see ValueCounts for tie order).
func TopN(values []string, n int) []string {
	counts := ValueCounts(values)
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Value
	}
	return out
}
