// Package recurrence derives suggested repurchase intervals from an item's
// purchase history. The analysis is a heuristic over recent timestamps, not a
// forecast: an item is considered regular only when its recent purchase gaps
// cluster tightly around their mean.
package recurrence

import (
	"sort"
	"time"
)

// Estimate is the outcome of interval analysis over recent purchases.
type Estimate struct {
	// Interval is the mean gap between adjacent purchases in the analyzed
	// window. Zero when there were not enough purchases to analyze.
	Interval time.Duration

	// Regular is true when every adjacent gap in the analyzed window lies
	// within the tolerance of the mean interval.
	Regular bool
}

// Analyze inspects purchase timestamps (in any order) and reports whether the
// most recent minPurchases of them form a regular repurchase pattern. Fewer
// than minPurchases timestamps, or a minPurchases below two, never count as
// regular.
func Analyze(purchases []time.Time, minPurchases int, tolerance time.Duration) Estimate {
	if minPurchases < 2 || len(purchases) < minPurchases {
		return Estimate{}
	}

	sorted := make([]time.Time, len(purchases))
	copy(sorted, purchases)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	recent := sorted[len(sorted)-minPurchases:]

	gaps := make([]time.Duration, 0, len(recent)-1)
	var total time.Duration
	for i := 1; i < len(recent); i++ {
		gap := recent[i].Sub(recent[i-1])
		gaps = append(gaps, gap)
		total += gap
	}

	mean := total / time.Duration(len(gaps))

	for _, gap := range gaps {
		delta := gap - mean
		if delta < 0 {
			delta = -delta
		}
		if delta > tolerance {
			return Estimate{Interval: mean}
		}
	}

	return Estimate{Interval: mean, Regular: true}
}
