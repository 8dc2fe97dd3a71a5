package wheel

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/rawblock/wheel-engine/pkg/models"
)

func TestBalanced_ProducesDistinctSortedTickets(t *testing.T) {
	pool := []int{1, 5, 9, 12, 18, 23, 27, 31, 36, 42}
	cfg := models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 12, Seed: 7}

	result, err := Generate(pool, models.LotteryShape{GameSize: 4}, cfg, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCount != 12 {
		t.Fatalf("expected 12 tickets, got %d", result.TicketCount)
	}

	seen := map[string]bool{}
	for _, ticket := range result.Tickets {
		if len(ticket) != 4 {
			t.Errorf("ticket %v is not 4 numbers", ticket)
		}
		for i := 1; i < len(ticket); i++ {
			if ticket[i] <= ticket[i-1] {
				t.Errorf("ticket %v is not ascending-sorted and duplicate-free", ticket)
			}
		}
		key := fmt.Sprint(ticket)
		if seen[key] {
			t.Errorf("duplicate ticket %v in balanced result", ticket)
		}
		seen[key] = true
	}

	if result.BalanceScore < 0 || result.BalanceScore > 100 {
		t.Errorf("balance score %d out of [0, 100]", result.BalanceScore)
	}
	if result.SavingsPercent < 0 || result.SavingsPercent > 100 {
		t.Errorf("savings %d%% out of range", result.SavingsPercent)
	}
}

func TestBalanced_SeedReproducesExactOutput(t *testing.T) {
	pool := []int{2, 4, 6, 8, 10, 12, 14, 16}
	shape := models.LotteryShape{GameSize: 3}
	cfg := models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 10, Seed: 1234}

	first, err := Generate(pool, shape, cfg, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(pool, shape, cfg, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Tickets, second.Tickets) {
		t.Errorf("same seed must reproduce the same wheel:\n%v\nvs\n%v", first.Tickets, second.Tickets)
	}
	if first.BalanceScore != second.BalanceScore {
		t.Errorf("same seed, different balance scores: %d vs %d", first.BalanceScore, second.BalanceScore)
	}
}

func TestBalanced_InjectedRandSource(t *testing.T) {
	// An explicitly injected source takes precedence over cfg.Seed.
	pool := []int{1, 2, 3, 4, 5, 6, 7}
	shape := models.LotteryShape{GameSize: 3}
	cfg := models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 5}

	a, err := Generate(pool, shape, cfg, DefaultLimits(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(pool, shape, cfg, DefaultLimits(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a.Tickets, b.Tickets) {
		t.Errorf("identical injected sources must agree:\n%v\nvs\n%v", a.Tickets, b.Tickets)
	}
}

func TestBalanced_TargetBeyondFullWheelFallsBack(t *testing.T) {
	// Asking for more tickets than exist: the full wheel is returned instead.
	result, err := Generate([]int{1, 2, 3, 4}, models.LotteryShape{GameSize: 2},
		models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 50, Seed: 1}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCount != 6 || result.FullWheelCount != 6 {
		t.Errorf("expected fallback to the 6-ticket full wheel, got %d of %d", result.TicketCount, result.FullWheelCount)
	}
	if result.CoverageScore != 100 {
		t.Errorf("full wheel fallback must report 100 coverage, got %d", result.CoverageScore)
	}
}

func TestBalanced_SpreadsPairsEvenly(t *testing.T) {
	// A balanced wheel over a small space should play no pair twice before
	// every pair has appeared once. With 7 tickets of 3 numbers from a pool
	// of 7 there are 21 pair slots for 21 distinct pairs, so a perfect
	// design exists; the heuristic should at least avoid gross imbalance.
	pool := []int{1, 2, 3, 4, 5, 6, 7}
	result, err := Generate(pool, models.LotteryShape{GameSize: 3},
		models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 7, Seed: 42}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[[2]int]int{}
	for _, ticket := range result.Tickets {
		for i := 0; i < len(ticket); i++ {
			for j := i + 1; j < len(ticket); j++ {
				counts[[2]int{ticket[i], ticket[j]}]++
			}
		}
	}
	for pair, c := range counts {
		if c > 3 {
			t.Errorf("pair %v played %d times; the balance heuristic should not pile onto one pair", pair, c)
		}
	}
	if len(counts) < 15 {
		t.Errorf("only %d of 21 distinct pairs were played; expected a wide spread", len(counts))
	}

	if result.BalanceScore <= 0 {
		t.Errorf("expected a positive balance score for a near-balanced design, got %d", result.BalanceScore)
	}
}

func TestBalanced_ExtremeSavingsStayBelowHundred(t *testing.T) {
	// 2 tickets against the C(16,3)=560 full wheel rounds to a 100% saving;
	// the report must cap at 99 while any tickets are played.
	pool := make([]int, 16)
	for i := range pool {
		pool[i] = i + 1
	}

	result, err := Generate(pool, models.LotteryShape{GameSize: 3},
		models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 2, Seed: 5}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCount != 2 {
		t.Fatalf("expected 2 tickets, got %d", result.TicketCount)
	}
	if result.SavingsPercent != 99 {
		t.Errorf("savings must be in [0, 100) when ticketCount < fullWheelCount, got %d", result.SavingsPercent)
	}
}

func TestBalanced_PoolSmallerThanTicketIsValidationError(t *testing.T) {
	_, err := Generate([]int{1, 2}, models.LotteryShape{GameSize: 3},
		models.WheelConfig{WheelType: models.WheelTypeBalanced, TargetCount: 4, Seed: 1}, DefaultLimits(), nil)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
