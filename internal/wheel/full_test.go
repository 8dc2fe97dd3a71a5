package wheel

import (
	"reflect"
	"testing"

	"github.com/rawblock/wheel-engine/pkg/models"
)

func TestFullWheel_EnumeratesEveryCombination(t *testing.T) {
	// Scenario: pool {1,2,3,4} with 2-number tickets has exactly C(4,2)=6
	// combinations, in lexicographic order.
	result, err := Generate([]int{1, 2, 3, 4}, models.LotteryShape{GameSize: 2, TotalNumbers: 49},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Ticket{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	if !reflect.DeepEqual(result.Tickets, want) {
		t.Errorf("tickets = %v, want %v", result.Tickets, want)
	}
	if result.FullWheelCount != 6 || result.TicketCount != 6 {
		t.Errorf("expected fullWheelCount=6 ticketCount=6, got %d / %d", result.FullWheelCount, result.TicketCount)
	}
	if result.SavingsPercent != 0 {
		t.Errorf("full wheel savings must be 0, got %d", result.SavingsPercent)
	}
	if result.CoverageScore != 100 {
		t.Errorf("full wheel coverage is definitionally 100, got %d", result.CoverageScore)
	}
}

func TestFullWheel_UnsortedPoolYieldsSortedTickets(t *testing.T) {
	result, err := Generate([]int{9, 1, 5}, models.LotteryShape{GameSize: 2},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Ticket{{1, 5}, {1, 9}, {5, 9}}
	if !reflect.DeepEqual(result.Tickets, want) {
		t.Errorf("tickets = %v, want %v", result.Tickets, want)
	}
}

func TestFullWheel_PoolEqualsTicketSize(t *testing.T) {
	result, err := Generate([]int{3, 7, 11}, models.LotteryShape{GameSize: 3},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TicketCount != 1 || !reflect.DeepEqual(result.Tickets[0], models.Ticket{3, 7, 11}) {
		t.Errorf("n == K should yield the pool as the single ticket, got %v", result.Tickets)
	}
}

func TestFullWheel_PoolSmallerThanTicketIsValidationError(t *testing.T) {
	// Scenario: 3 pool numbers cannot form a 5-number ticket. Must be a
	// validation error, not an empty success.
	_, err := Generate([]int{1, 2, 3}, models.LotteryShape{GameSize: 5},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFullWheel_ExplosionGuard(t *testing.T) {
	// Scenario: a 60-number pool with 6-number tickets is ~50 million
	// combinations. The guard must refuse before enumerating anything.
	pool := make([]int, 60)
	for i := range pool {
		pool[i] = i + 1
	}

	_, err := Generate(pool, models.LotteryShape{GameSize: 6},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if !IsResourceLimit(err) {
		t.Fatalf("expected ResourceLimitError, got %v", err)
	}
}

func TestFullWheel_LargeTicketCeiling(t *testing.T) {
	// With K >= 50 the far smaller large-K ceiling applies: C(52,50)=1326
	// exceeds the 500-ticket cap even though it is tiny by normal standards.
	pool := make([]int, 52)
	for i := range pool {
		pool[i] = i + 1
	}

	_, err := Generate(pool, models.LotteryShape{GameSize: 50},
		models.WheelConfig{WheelType: models.WheelTypeFull}, DefaultLimits(), nil)
	if !IsResourceLimit(err) {
		t.Fatalf("expected ResourceLimitError under the large-K ceiling, got %v", err)
	}
}
