package wheel

import (
	"testing"

	"github.com/rawblock/wheel-engine/pkg/models"
)

func TestEvaluateCoverage_PartialCover(t *testing.T) {
	// Scenario: pool of 5, a single ticket {1,2}. Of the C(5,2)=10 drawable
	// pairs exactly one ({1,2}) is matched in full.
	pool := []int{1, 2, 3, 4, 5}
	tickets := []models.Ticket{{1, 2}}

	result, err := EvaluateCoverage(tickets, pool, 2, 2, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalTSubsets != 10 {
		t.Errorf("expected 10 pair subsets, got %d", result.TotalTSubsets)
	}
	if result.CoveredCount != 1 {
		t.Errorf("expected exactly 1 covered pair, got %d", result.CoveredCount)
	}
	if result.Percent != 10 {
		t.Errorf("expected 10%%, got %d%%", result.Percent)
	}
}

func TestEvaluateCoverage_RelaxedGuaranteeCoversMore(t *testing.T) {
	// Same ticket, but only one shared number required: the 3 pairs drawn
	// entirely from {3,4,5} remain uncovered, everything else touches 1 or 2.
	pool := []int{1, 2, 3, 4, 5}
	tickets := []models.Ticket{{1, 2}}

	result, err := EvaluateCoverage(tickets, pool, 2, 1, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CoveredCount != 7 {
		t.Errorf("expected 7 of 10 pairs covered, got %d", result.CoveredCount)
	}
	if result.Percent != 70 {
		t.Errorf("expected 70%%, got %d%%", result.Percent)
	}
}

func TestEvaluateCoverage_FullWheelAlwaysFull(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6}
	full, err := Generate(pool, models.LotteryShape{GameSize: 3},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Any valid (t, m) with m <= K must evaluate to 100 for the full wheel.
	for _, g := range []models.GuaranteeSpec{
		{Guaranteed: 1, MustMatch: 2},
		{Guaranteed: 2, MustMatch: 3},
		{Guaranteed: 3, MustMatch: 4},
		{Guaranteed: 2, MustMatch: 2},
	} {
		result, err := EvaluateCoverage(full.Tickets, pool, g.MustMatch, g.Guaranteed, DefaultLimits())
		if err != nil {
			t.Fatalf("guarantee %d-if-%d: unexpected error: %v", g.Guaranteed, g.MustMatch, err)
		}
		if result.Percent != 100 {
			t.Errorf("full wheel coverage for %d-if-%d = %d%%, want 100%%", g.Guaranteed, g.MustMatch, result.Percent)
		}
	}
}

func TestEvaluateCoverage_Idempotent(t *testing.T) {
	pool := []int{3, 8, 15, 22, 31, 40, 47}
	tickets := []models.Ticket{{3, 8, 15}, {22, 31, 40}, {3, 22, 47}}

	first, err := EvaluateCoverage(tickets, pool, 3, 2, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := EvaluateCoverage(tickets, pool, 3, 2, DefaultLimits())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("coverage evaluation is stateful: run %d gave %+v, first gave %+v", i+2, again, first)
		}
	}
}

func TestEvaluateCoverage_SubsetExplosionGuard(t *testing.T) {
	pool := make([]int, 60)
	for i := range pool {
		pool[i] = i + 1
	}

	_, err := EvaluateCoverage(nil, pool, 6, 2, DefaultLimits())
	if !IsResourceLimit(err) {
		t.Fatalf("expected ResourceLimitError for C(60,6) subsets, got %v", err)
	}
}

func TestEvaluateCoverage_ParameterValidation(t *testing.T) {
	pool := []int{1, 2, 3}

	if _, err := EvaluateCoverage(nil, pool, 4, 1, DefaultLimits()); !IsValidation(err) {
		t.Errorf("mustMatch > pool size: expected ValidationError, got %v", err)
	}
	if _, err := EvaluateCoverage(nil, pool, 2, 0, DefaultLimits()); !IsValidation(err) {
		t.Errorf("guaranteed < 1: expected ValidationError, got %v", err)
	}
}
