package ranking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Term is one weighted input of a trending formula. Column is the name of
// the raw count column the aggregation query selects for it.
type Term struct {
	Column string
	Weight float64
}

// Formula is a weighted linear combination of activity counters. The same
// value renders the SQL ordering expression and computes the returned
// score, so the two cannot drift apart.
type Formula struct {
	terms []Term
}

// NewFormula returns a formula over the given terms, in order.
func NewFormula(terms ...Term) Formula {
	return Formula{terms: append([]Term(nil), terms...)}
}

var (
	// CreatorFormula scores creators on trailing-window follows, views and
	// profile visits plus lifetime catalog size.
	CreatorFormula = NewFormula(
		Term{Column: "recent_followers", Weight: 0.40},
		Term{Column: "recent_views", Weight: 0.35},
		Term{Column: "recent_profile_visits", Weight: 0.15},
		Term{Column: "video_count", Weight: 0.10},
	)

	// VideoFormula scores single videos.
	VideoFormula = NewFormula(
		Term{Column: "recent_views", Weight: 0.5},
		Term{Column: "recent_likes", Weight: 0.3},
		Term{Column: "view_count", Weight: 0.2},
	)

	// SeriesFormula scores multi-video series.
	SeriesFormula = NewFormula(
		Term{Column: "recent_purchases", Weight: 0.6},
		Term{Column: "recent_series_views", Weight: 0.25},
		Term{Column: "view_count", Weight: 0.15},
	)
)

// Terms returns a copy of the formula's terms.
func (f Formula) Terms() []Term {
	return append([]Term(nil), f.terms...)
}

// WeightSum returns the sum of all weights. Formulas are expected to sum
// to 1.0 so scores stay on the same scale when weights are retuned.
func (f Formula) WeightSum() float64 {
	sum := 0.0
	for _, t := range f.terms {
		sum += t.Weight
	}
	return sum
}

// Raw returns the unrounded weighted sum. values are given in term order.
func (f Formula) Raw(values ...int64) float64 {
	if len(values) != len(f.terms) {
		panic(fmt.Sprintf("ranking: formula has %d terms, got %d values", len(f.terms), len(values)))
	}
	sum := 0.0
	for i, t := range f.terms {
		sum += float64(values[i]) * t.Weight
	}
	return sum
}

// Score returns the weighted sum rounded to the nearest integer.
func (f Formula) Score(values ...int64) int64 {
	return int64(math.Round(f.Raw(values...)))
}

// OrderExpr renders the formula as a SQL expression over its columns,
// e.g. "(recent_views * 0.5 + recent_likes * 0.3 + view_count * 0.2)".
func (f Formula) OrderExpr() string {
	parts := make([]string, 0, len(f.terms))
	for _, t := range f.terms {
		parts = append(parts, t.Column+" * "+strconv.FormatFloat(t.Weight, 'f', -1, 64))
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// quota is the share of a result limit reserved for one content kind.
type quota float64

const (
	videoShowQuota      quota = 0.7
	seriesShowQuota     quota = 0.3
	videoFeaturedQuota  quota = 0.6
	seriesFeaturedQuota quota = 0.4
)

// of returns ceil(limit * q).
func (q quota) of(limit int) int {
	return int(math.Ceil(float64(limit) * float64(q)))
}

// withOrder substitutes the formula's SQL expression into query's single
// %s ordering slot.
func withOrder(query string, f Formula) string {
	return fmt.Sprintf(query, f.OrderExpr())
}
