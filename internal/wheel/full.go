package wheel

import (
	"fmt"

	"github.com/rawblock/wheel-engine/internal/combin"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// generateFull enumerates every K-subset of the pool: the trivial, maximal
// guarantee design and the baseline every other strategy reports savings
// against. Full coverage is definitional here — if all K drawn-and-in-pool
// numbers appear, some ticket matches them exactly.
func generateFull(pool []int, k int, limits Limits) (*models.WheelResult, error) {
	n := len(pool)

	if n < k {
		return nil, &ValidationError{
			Field:  "pool",
			Reason: fmt.Sprintf("pool has %d numbers, cannot form a %d-number ticket", n, k),
		}
	}

	total := combin.Binomial(n, k)
	if ceiling := limits.candidateCeiling(k); total > ceiling {
		return nil, &ResourceLimitError{
			What:      "full wheel tickets",
			Estimated: total,
			Limit:     ceiling,
		}
	}

	// Pool arrives ascending-sorted from the dispatcher, so each enumerated
	// subset is already a sorted ticket.
	tickets := make([]models.Ticket, 0, total)
	combin.ForEachCombination(n, k, func(idx []int) bool {
		ticket := make(models.Ticket, k)
		for i, j := range idx {
			ticket[i] = pool[j]
		}
		tickets = append(tickets, ticket)
		return true
	})

	return &models.WheelResult{
		Tickets:              tickets,
		FullWheelCount:       total,
		TicketCount:          len(tickets),
		SavingsPercent:       0,
		GuaranteeDescription: fmt.Sprintf("full wheel: every %d-number combination of the %d pool numbers is played", k, n),
		CoverageScore:        100,
	}, nil
}
