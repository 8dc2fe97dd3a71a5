// Package wheel implements lottery wheel (covering design) generation: the
// exhaustive full wheel, the greedy abbreviated wheel with a verifiable
// m-if-t guarantee, and the pairwise-balanced heuristic wheel.
//
// Everything here is pure and re-entrant: each generation call works on
// immutable inputs with call-local state, performs no I/O and returns a
// fresh result, so callers may run generations concurrently without any
// synchronization inside this package.
package wheel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rawblock/wheel-engine/pkg/models"
)

// guaranteePresets are the named guarantee levels offered to callers, in
// "m-if-t" notation. Anything else goes through GuaranteeLevelCustom.
var guaranteePresets = []string{
	"2-if-2",
	"2-if-3",
	"2-if-4",
	"3-if-3",
	"3-if-4",
	"3-if-5",
	"4-if-4",
	"4-if-5",
	"4-if-6",
	"5-if-5",
	"5-if-6",
}

// Presets returns the named guarantee levels understood by ParseGuarantee.
func Presets() []string {
	return append([]string(nil), guaranteePresets...)
}

// ParseGuarantee translates "m-if-t" notation into a GuaranteeSpec:
// "3-if-5" promises a 3-number match on some ticket whenever 5 of the drawn
// numbers fall inside the pool.
func ParseGuarantee(level string) (models.GuaranteeSpec, error) {
	parts := strings.Split(level, "-if-")
	if len(parts) != 2 {
		return models.GuaranteeSpec{}, &ValidationError{
			Field:  "guaranteeLevel",
			Reason: fmt.Sprintf("%q is not in m-if-t form (e.g. \"3-if-5\")", level),
		}
	}

	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 {
		return models.GuaranteeSpec{}, &ValidationError{
			Field:  "guaranteeLevel",
			Reason: fmt.Sprintf("guaranteed part of %q must be a positive integer", level),
		}
	}
	t, err := strconv.Atoi(parts[1])
	if err != nil || t < 1 {
		return models.GuaranteeSpec{}, &ValidationError{
			Field:  "guaranteeLevel",
			Reason: fmt.Sprintf("mustMatch part of %q must be a positive integer", level),
		}
	}

	return models.GuaranteeSpec{Guaranteed: m, MustMatch: t}, nil
}

// Generate is the sole entry point for wheel generation. It validates and
// normalizes the pool, resolves the guarantee level and routes to the
// requested strategy. rng seeds the balanced generator's sampling; pass nil
// to derive one from cfg.Seed (or the clock when Seed is zero).
func Generate(pool []int, shape models.LotteryShape, cfg models.WheelConfig, limits Limits, rng *rand.Rand) (*models.WheelResult, error) {
	k := shape.GameSize
	if k < 1 {
		return nil, &ValidationError{Field: "gameSize", Reason: "must be at least 1"}
	}

	normalized, err := normalizePool(pool, shape)
	if err != nil {
		return nil, err
	}

	switch cfg.WheelType {
	case models.WheelTypeFull:
		return generateFull(normalized, k, limits)

	case models.WheelTypeAbbreviated:
		spec, err := resolveGuarantee(cfg)
		if err != nil {
			return nil, err
		}
		return generateAbbreviated(normalized, k, spec, limits)

	case models.WheelTypeBalanced:
		if rng == nil {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng = rand.New(rand.NewSource(seed))
		}
		return generateBalanced(normalized, k, cfg.TargetCount, rng, limits)

	default:
		return nil, &ValidationError{
			Field:  "wheelType",
			Reason: fmt.Sprintf("unknown wheel type %q (want full, abbreviated or balanced)", cfg.WheelType),
		}
	}
}

// resolveGuarantee picks between a named preset and an explicit custom spec.
func resolveGuarantee(cfg models.WheelConfig) (models.GuaranteeSpec, error) {
	if cfg.GuaranteeLevel == models.GuaranteeLevelCustom {
		if cfg.CustomGuarantee == nil {
			return models.GuaranteeSpec{}, &ValidationError{
				Field:  "customGuarantee",
				Reason: "required when guaranteeLevel is \"custom\"",
			}
		}
		return *cfg.CustomGuarantee, nil
	}
	return ParseGuarantee(cfg.GuaranteeLevel)
}

// savingsVersusFull reports the ticket-count saving relative to the full
// wheel as a rounded integer percentage, kept inside [0, 100): any result
// short of the full wheel still plays tickets, so a 100% saving is reserved
// for the impossible case and extreme ratios report 99 instead of rounding
// up.
func savingsVersusFull(ticketCount int, fullWheelCount int64) int {
	if fullWheelCount <= 0 {
		return 0
	}

	savings := int(math.Round(100 * (1 - float64(ticketCount)/float64(fullWheelCount))))
	if savings < 0 {
		savings = 0
	}
	if savings >= 100 && int64(ticketCount) < fullWheelCount {
		savings = 99
	}
	return savings
}

// normalizePool copies, sorts and validates the user's pool. Every generator
// downstream relies on an ascending, duplicate-free pool of positive numbers
// within the game's range.
func normalizePool(pool []int, shape models.LotteryShape) ([]int, error) {
	if len(pool) == 0 {
		return nil, &ValidationError{Field: "pool", Reason: "must contain at least one number"}
	}

	normalized := append([]int(nil), pool...)
	sort.Ints(normalized)

	for i, v := range normalized {
		if v < 1 {
			return nil, &ValidationError{
				Field:  "pool",
				Reason: fmt.Sprintf("number %d is not a positive integer", v),
			}
		}
		if shape.TotalNumbers > 0 && v > shape.TotalNumbers {
			return nil, &ValidationError{
				Field:  "pool",
				Reason: fmt.Sprintf("number %d is outside the game's 1-%d range", v, shape.TotalNumbers),
			}
		}
		if i > 0 && normalized[i-1] == v {
			return nil, &ValidationError{
				Field:  "pool",
				Reason: fmt.Sprintf("number %d appears more than once", v),
			}
		}
	}

	return normalized, nil
}
