package wheel

import (
	"math"
	"math/bits"

	"github.com/rawblock/wheel-engine/internal/combin"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// EvaluateCoverage determines what fraction of all mustMatch-subsets of the
// pool are covered by the ticket set: a t-subset is covered when at least
// one ticket shares guaranteed or more numbers with it.
//
// This is the verifiable form of a wheeling guarantee. The t-subsets stand
// for every possible way mustMatch drawn numbers could land inside the pool,
// so a 100% result is a mathematical guarantee, not an estimate.
//
// The evaluation is pure: same inputs, same percentage, no hidden state.
func EvaluateCoverage(tickets []models.Ticket, pool []int, mustMatch, guaranteed int, limits Limits) (models.CoverageResult, error) {
	n := len(pool)

	if mustMatch < 1 || mustMatch > n {
		return models.CoverageResult{}, &ValidationError{
			Field:  "mustMatch",
			Reason: "must be between 1 and the pool size",
		}
	}
	if guaranteed < 1 {
		return models.CoverageResult{}, &ValidationError{
			Field:  "guaranteed",
			Reason: "must be at least 1",
		}
	}

	total := combin.Binomial(n, mustMatch)
	if total > limits.MaxTrackedSubsets {
		return models.CoverageResult{}, &ResourceLimitError{
			What:      "coverage verification subsets",
			Estimated: total,
			Limit:     limits.MaxTrackedSubsets,
		}
	}

	// Tickets become bitmasks over pool positions so the per-subset check is
	// a word-wise AND + popcount instead of nested value scans.
	words := (n + 63) / 64
	poolIndex := make(map[int]int, n)
	for i, v := range pool {
		poolIndex[v] = i
	}

	ticketMasks := make([][]uint64, 0, len(tickets))
	for _, ticket := range tickets {
		mask := make([]uint64, words)
		for _, v := range ticket {
			if i, ok := poolIndex[v]; ok {
				mask[i/64] |= 1 << (i % 64)
			}
		}
		ticketMasks = append(ticketMasks, mask)
	}

	var covered int64
	subsetMask := make([]uint64, words)

	combin.ForEachCombination(n, mustMatch, func(idx []int) bool {
		for w := range subsetMask {
			subsetMask[w] = 0
		}
		for _, i := range idx {
			subsetMask[i/64] |= 1 << (i % 64)
		}

		for _, tm := range ticketMasks {
			if intersectsAtLeast(tm, subsetMask, guaranteed) {
				covered++
				break
			}
		}
		return true
	})

	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(covered) / float64(total)))
	}

	return models.CoverageResult{
		CoveredCount:  covered,
		TotalTSubsets: total,
		Percent:       percent,
	}, nil
}

// intersectsAtLeast reports whether the two bitmasks share at least m set
// bits, bailing out as soon as the running count reaches m.
func intersectsAtLeast(a, b []uint64, m int) bool {
	count := 0
	for w := range a {
		count += bits.OnesCount64(a[w] & b[w])
		if count >= m {
			return true
		}
	}
	return false
}
