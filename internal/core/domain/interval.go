package domain

import (
	"strings"
	"time"
)

// Interval is a delivery or pickup window. The service does not enforce
// ordering or disjointness across a window list; that is a caller concern.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IntervalsEqual compares two window lists by value: same length, same order,
// pairwise equal instants. Comparing serialized forms instead would report
// spurious differences for equal lists rendered with different precision.
func IntervalsEqual(a, b []Interval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
			return false
		}
	}
	return true
}

// RenderIntervals produces the deterministic textual form used in audit
// records: each interval as "start/end" in RFC3339Nano UTC, joined by "; ".
func RenderIntervals(list []Interval) string {
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, iv := range list {
		parts = append(parts,
			iv.Start.UTC().Format(time.RFC3339Nano)+"/"+iv.End.UTC().Format(time.RFC3339Nano))
	}
	return strings.Join(parts, "; ")
}
