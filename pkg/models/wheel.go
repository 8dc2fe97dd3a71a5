package models

// Wheel strategy identifiers accepted in WheelConfig.WheelType.
const (
	WheelTypeFull        = "full"        // exhaustive enumeration of every K-subset
	WheelTypeAbbreviated = "abbreviated" // greedy covering design for an explicit guarantee
	WheelTypeBalanced    = "balanced"    // pairwise-balance heuristic at a fixed ticket count
)

// GuaranteeLevelCustom selects CustomGuarantee instead of a named preset.
const GuaranteeLevelCustom = "custom"

// LotteryShape describes the game the wheel is built for.
type LotteryShape struct {
	GameSize     int `json:"gameSize"`     // K: numbers per ticket
	TotalNumbers int `json:"totalNumbers"` // size of the game's full number range
}

// GuaranteeSpec is the "m-if-t" wheeling guarantee: if MustMatch of the
// drawn numbers fall inside the pool, at least one ticket shares at least
// Guaranteed of them with the draw.
type GuaranteeSpec struct {
	Guaranteed int `json:"guaranteed"` // m: minimum match promised
	MustMatch  int `json:"mustMatch"`  // t: drawn numbers that must be in the pool
}

// WheelConfig selects the generation strategy and its guarantee level.
type WheelConfig struct {
	WheelType       string         `json:"wheelType"`                 // full | abbreviated | balanced
	GuaranteeLevel  string         `json:"guaranteeLevel,omitempty"`  // preset like "3-if-5", or "custom"
	CustomGuarantee *GuaranteeSpec `json:"customGuarantee,omitempty"` // used when GuaranteeLevel == "custom"
	TargetCount     int            `json:"targetCount,omitempty"`     // balanced only: tickets to produce (0 = derive)
	Seed            int64          `json:"seed,omitempty"`            // balanced only: 0 = time-seeded
}

// Ticket is one playable combination: an ascending-sorted K-subset of the pool.
type Ticket []int

// CoverageResult reports what fraction of all t-subsets of the pool are
// covered by a ticket set. Derived, recomputed on demand, never persisted.
type CoverageResult struct {
	CoveredCount  int64 `json:"coveredCount"`
	TotalTSubsets int64 `json:"totalTSubsets"`
	Percent       int   `json:"percent"`
}

// WheelResult is the uniform output of every generation strategy.
type WheelResult struct {
	Tickets              []Ticket `json:"tickets"`
	FullWheelCount       int64    `json:"fullWheelCount"` // binomial(|pool|, K) baseline
	TicketCount          int      `json:"ticketCount"`
	SavingsPercent       int      `json:"savingsPercent"` // vs the full wheel
	GuaranteeDescription string   `json:"guaranteeDescription"`
	CoverageScore        int      `json:"coverageScore"`          // 100 = verified full coverage for the guarantee
	BalanceScore         int      `json:"balanceScore,omitempty"` // balanced wheels only
}
