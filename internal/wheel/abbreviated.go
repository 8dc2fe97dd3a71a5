package wheel

import (
	"fmt"
	"log"

	"github.com/rawblock/wheel-engine/internal/combin"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// generateAbbreviated builds a near-minimal ticket set satisfying the
// (mustMatch, guaranteed) wheeling guarantee via greedy set cover.
//
// The universe is every t-subset of the pool (every way t drawn numbers
// could land inside it); the candidates are every K-subset. Each round the
// candidate covering the most still-uncovered t-subsets is selected, until
// the universe is exhausted or the ticket budget runs out.
//
// The guarantee may name fewer drawn-in-pool numbers than a ticket holds
// (mustMatch < K): levels like 4-if-5 on a 6-number game are standard
// wheeling guarantees, so validation requires only 1 ≤ guaranteed ≤ K,
// guaranteed ≤ mustMatch and mustMatch ≤ pool size — never mustMatch ≥ K.
//
// Finding the minimum covering design is an open problem in combinatorial
// design theory; greedy set cover is the classic approximation and its
// result is verified, not assumed: the final coverage score comes from the
// coverage evaluator. Ties on cover count go to the first candidate in
// lexicographic enumeration order. That tie-break is deterministic but
// arbitrary — a different rule would produce a different (equally valid)
// wheel.
func generateAbbreviated(pool []int, k int, g models.GuaranteeSpec, limits Limits) (*models.WheelResult, error) {
	n := len(pool)
	t, m := g.MustMatch, g.Guaranteed

	if n < k {
		return nil, &ValidationError{
			Field:  "pool",
			Reason: fmt.Sprintf("pool has %d numbers, cannot form a %d-number ticket", n, k),
		}
	}
	if t < 1 || t > n {
		return nil, &ValidationError{
			Field:  "mustMatch",
			Reason: fmt.Sprintf("mustMatch %d must be between 1 and the pool size %d", t, n),
		}
	}
	if m < 1 || m > k {
		return nil, &ValidationError{
			Field:  "guaranteed",
			Reason: fmt.Sprintf("guaranteed %d must be between 1 and the ticket size %d", m, k),
		}
	}
	if m > t {
		return nil, &ValidationError{
			Field:  "guaranteed",
			Reason: fmt.Sprintf("cannot guarantee %d matches from only %d drawn numbers in the pool", m, t),
		}
	}

	universeSize := combin.Binomial(n, t)
	if universeSize > limits.MaxTrackedSubsets {
		return nil, &ResourceLimitError{
			What:      "guarantee subsets to track",
			Estimated: universeSize,
			Limit:     limits.MaxTrackedSubsets,
		}
	}

	fullWheelCount := combin.Binomial(n, k)
	if ceiling := limits.candidateCeiling(k); fullWheelCount > ceiling {
		return nil, &ResourceLimitError{
			What:      "candidate tickets",
			Estimated: fullWheelCount,
			Limit:     ceiling,
		}
	}

	words := (n + 63) / 64

	// Universe of t-subsets, as bitmasks over pool positions.
	universe := make([][]uint64, 0, universeSize)
	combin.ForEachCombination(n, t, func(idx []int) bool {
		universe = append(universe, maskOf(idx, words))
		return true
	})

	// Candidate K-subsets, masks plus the index arrays to rebuild tickets.
	candMasks := make([][]uint64, 0, fullWheelCount)
	candIdx := make([][]int, 0, fullWheelCount)
	combin.ForEachCombination(n, k, func(idx []int) bool {
		candMasks = append(candMasks, maskOf(idx, words))
		candIdx = append(candIdx, append([]int(nil), idx...))
		return true
	})

	used := make([]bool, len(candMasks))
	covered := make([]bool, len(universe))
	remaining := len(universe)

	var tickets []models.Ticket
	for remaining > 0 && len(tickets) < limits.MaxGreedyTickets {
		best, bestCover := -1, 0
		for ci := range candMasks {
			if used[ci] {
				continue
			}
			cover := 0
			for ui := range universe {
				if covered[ui] {
					continue
				}
				if intersectsAtLeast(candMasks[ci], universe[ui], m) {
					cover++
				}
			}
			// Strict improvement only: the first candidate in enumeration
			// order wins ties.
			if cover > bestCover {
				best, bestCover = ci, cover
			}
		}

		// No candidate covers anything new; the loop can never progress.
		if best < 0 {
			break
		}

		used[best] = true
		ticket := make(models.Ticket, k)
		for i, j := range candIdx[best] {
			ticket[i] = pool[j]
		}
		tickets = append(tickets, ticket)

		for ui := range universe {
			if !covered[ui] && intersectsAtLeast(candMasks[best], universe[ui], m) {
				covered[ui] = true
				remaining--
			}
		}
	}

	if remaining > 0 {
		log.Printf("[Wheel] Greedy optimizer stopped with %d of %d guarantee subsets uncovered (budget %d tickets)",
			remaining, len(universe), limits.MaxGreedyTickets)
	}

	// Verify rather than trust the loop's own bookkeeping.
	coverage, err := EvaluateCoverage(tickets, pool, t, m, limits)
	if err != nil {
		return nil, err
	}

	return &models.WheelResult{
		Tickets:        tickets,
		FullWheelCount: fullWheelCount,
		TicketCount:    len(tickets),
		SavingsPercent: savingsVersusFull(len(tickets), fullWheelCount),
		GuaranteeDescription: fmt.Sprintf("%d-if-%d: if %d of the drawn numbers are in the pool, at least one ticket matches %d or more of them",
			m, t, t, m),
		CoverageScore: coverage.Percent,
	}, nil
}

// maskOf builds a pool-position bitmask from an index combination.
func maskOf(idx []int, words int) []uint64 {
	mask := make([]uint64, words)
	for _, i := range idx {
		mask[i/64] |= 1 << (i % 64)
	}
	return mask
}
