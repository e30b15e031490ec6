// aggregate.go — mean-by-product and score-histogram derivations.
package report

import (
	"fmt"
	"math"
	"sort"

	"avalanche/warehouse"
)

// Notices for tables the derivations cannot chart. Schema absence and
// empty aggregation are distinct conditions.
const (
	NoticeNeedColumns  = "Need columns PRODUCT and SENTIMENT_SCORE for this chart."
	NoticeNoScores     = "No sentiment scores to aggregate."
	NoticeNoHistData   = "No numeric SENTIMENT_SCORE values to plot."
	NoticeNoScoreCol   = "SENTIMENT_SCORE column not found."
	NoticeNoProductCol = "PRODUCT column not found; showing all rows."
)

// ProductMean is one bar of the mean-sentiment chart.
type ProductMean struct {
	Product string
	Mean    float64
}

// MeanByProduct groups rows by product and averages the coerced scores,
// ascending by mean. A non-empty notice means no chart is drawn.
func MeanByProduct(t *warehouse.Table, caps Capabilities) ([]ProductMean, string) {
	if !caps.HasProduct || !caps.HasScore {
		return nil, NoticeNeedColumns
	}

	pIdx := t.ColumnIndex(ColProduct)
	sIdx := t.ColumnIndex(ColScore)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if row[pIdx] == "" {
			continue // missing group key
		}
		score, ok := parseScore(row[sIdx])
		if !ok {
			continue
		}
		sums[row[pIdx]] += score
		counts[row[pIdx]]++
	}
	if len(counts) == 0 {
		return nil, NoticeNoScores
	}

	means := make([]ProductMean, 0, len(counts))
	for product, n := range counts {
		means = append(means, ProductMean{Product: product, Mean: sums[product] / float64(n)})
	}
	sort.Slice(means, func(i, j int) bool {
		if means[i].Mean != means[j].Mean {
			return means[i].Mean < means[j].Mean
		}
		return means[i].Product < means[j].Product
	})
	return means, ""
}

// HistogramBin is one bar of the score distribution chart.
type HistogramBin struct {
	Label string // bin range, e.g. "(0.25, 0.50]"
	Count int
}

// BinCount chooses the number of histogram bins for a sample size:
// round(sqrt(n)) clamped to [5, 40].
func BinCount(n int) int {
	bins := int(math.Round(math.Sqrt(float64(n))))
	if bins < 5 {
		bins = 5
	}
	if bins > 40 {
		bins = 40
	}
	return bins
}

// Histogram partitions the coerced scores of the (already filtered)
// table into equal-width bins in ascending order. A non-empty notice
// means no chart is drawn.
func Histogram(t *warehouse.Table, caps Capabilities) ([]HistogramBin, string) {
	if !caps.HasScore {
		return nil, NoticeNoScoreCol
	}

	sIdx := t.ColumnIndex(ColScore)
	var scores []float64
	for _, row := range t.Rows {
		if v, ok := parseScore(row[sIdx]); ok {
			scores = append(scores, v)
		}
	}
	if len(scores) == 0 {
		return nil, NoticeNoHistData
	}

	lo, hi := scores[0], scores[0]
	for _, v := range scores[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	// Degenerate range: every value identical, one bin holds them all.
	if lo == hi {
		return []HistogramBin{{
			Label: fmt.Sprintf("(%s, %s]", formatEdge(lo-0.5), formatEdge(hi)),
			Count: len(scores),
		}}, ""
	}

	bins := BinCount(len(scores))
	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range scores {
		// Right-closed intervals: a value on an interior edge belongs to
		// the bin below it. The leftmost edge is open just below min so
		// the minimum itself is counted.
		idx := int(math.Ceil((v-lo)/width)) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	out := make([]HistogramBin, bins)
	for i := range counts {
		left := lo + float64(i)*width
		if i == 0 {
			left = lo - (hi-lo)*0.001
		}
		right := lo + float64(i+1)*width
		out[i] = HistogramBin{
			Label: fmt.Sprintf("(%s, %s]", formatEdge(left), formatEdge(right)),
			Count: counts[i],
		}
	}
	return out, ""
}

// formatEdge renders a bin edge compactly for labels.
func formatEdge(f float64) string {
	return fmt.Sprintf("%.3g", f)
}
