package wheel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rawblock/wheel-engine/internal/combin"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// generateBalanced produces targetCount tickets that spread pairwise
// co-occurrence as evenly as possible across all number pairs in the pool —
// an approximation of a Balanced Incomplete Block Design, not a formal one.
//
// Each pick draws a random sample of unused candidate tickets from the full
// K-subset space (sampling keeps large pools tractable where enumeration
// would not be) and scores each candidate by how many under-represented
// pairs it contains. The random source is injected so a fixed seed
// reproduces the exact ticket set.
func generateBalanced(pool []int, k, targetCount int, rng *rand.Rand, limits Limits) (*models.WheelResult, error) {
	n := len(pool)

	if n < k {
		return nil, &ValidationError{
			Field:  "pool",
			Reason: fmt.Sprintf("pool has %d numbers, cannot form a %d-number ticket", n, k),
		}
	}

	fullWheelCount := combin.Binomial(n, k)

	if targetCount <= 0 {
		targetCount = limits.MaxBalancedTickets
		if half := (fullWheelCount + 1) / 2; half < int64(targetCount) {
			targetCount = int(half)
		}
	}
	if targetCount > limits.MaxGreedyTickets {
		return nil, &ValidationError{
			Field:  "targetCount",
			Reason: fmt.Sprintf("targetCount %d exceeds the maximum of %d tickets per wheel", targetCount, limits.MaxGreedyTickets),
		}
	}

	// Asking for at least the whole space: the full wheel is the answer.
	if int64(targetCount) >= fullWheelCount {
		return generateFull(pool, k, limits)
	}

	// Pair counts over pool positions, function-local and discarded with the
	// call. pairAt(i, j) with i < j flattens the upper triangle.
	pairCounts := make([]int, n*n)
	pairAt := func(i, j int) int { return i*n + j }

	used := make(map[string]bool, targetCount)
	tickets := make([]models.Ticket, 0, targetCount)

	candidate := make([]int, k)
	scratch := make([]int, n)
	for i := range scratch {
		scratch[i] = i
	}

	// sampleCandidate draws one uniform random K-subset of pool positions,
	// ascending. Partial Fisher-Yates over the scratch index array.
	sampleCandidate := func() []int {
		for i := 0; i < k; i++ {
			j := i + rng.Intn(n-i)
			scratch[i], scratch[j] = scratch[j], scratch[i]
		}
		copy(candidate, scratch[:k])
		sort.Ints(candidate)
		return candidate
	}

	for len(tickets) < targetCount {
		var bestIdx []int
		bestScore := -1.0

		// Up to SampleSize distinct unused candidates; duplicate draws are
		// rejected, with a bounded number of attempts so a nearly-exhausted
		// space cannot spin forever.
		seen := make(map[string]bool, limits.SampleSize)
		attempts := 0
		for len(seen) < limits.SampleSize && attempts < limits.SampleSize*10 {
			attempts++
			idx := sampleCandidate()
			key := fmt.Sprint(idx)
			if used[key] || seen[key] {
				continue
			}
			seen[key] = true

			// Favor candidates whose internal pairs have been played least.
			score := 0.0
			for a := 0; a < k; a++ {
				for b := a + 1; b < k; b++ {
					score += 1.0 / float64(pairCounts[pairAt(idx[a], idx[b])]+1)
				}
			}
			if score > bestScore {
				bestScore = score
				bestIdx = append(bestIdx[:0], idx...)
			}
		}

		// No unused candidate found within the attempt budget.
		if bestIdx == nil {
			break
		}

		used[fmt.Sprint(bestIdx)] = true
		ticket := make(models.Ticket, k)
		for i, j := range bestIdx {
			ticket[i] = pool[j]
		}
		tickets = append(tickets, ticket)

		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				pairCounts[pairAt(bestIdx[a], bestIdx[b])]++
			}
		}
	}

	return &models.WheelResult{
		Tickets:        tickets,
		FullWheelCount: fullWheelCount,
		TicketCount:    len(tickets),
		SavingsPercent: savingsVersusFull(len(tickets), fullWheelCount),
		GuaranteeDescription: fmt.Sprintf("balanced wheel: pairwise co-occurrence spread evenly across %d tickets (heuristic, no formal guarantee)",
			len(tickets)),
		CoverageScore: 0,
		BalanceScore:  balanceScore(pairCounts, n, k),
	}, nil
}

// balanceScore maps the standard deviation of all pair counts to a 0-100
// quality signal: perfectly even co-occurrence scores 100, and every 0.05 of
// deviation costs a point. Heuristic only.
func balanceScore(pairCounts []int, n, k int) int {
	if k < 2 || n < 2 {
		return 100
	}

	totalPairs := n * (n - 1) / 2
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += float64(pairCounts[i*n+j])
		}
	}
	mean := sum / float64(totalPairs)

	var variance float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := float64(pairCounts[i*n+j]) - mean
			variance += d * d
		}
	}
	stdDev := math.Sqrt(variance / float64(totalPairs))

	score := int(math.Round(100 - stdDev*20))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
