// Package combin holds the combinatorial primitives shared by every wheel
// generator: k-subset enumeration and overflow-safe binomial coefficients.
//
// Enumeration is iterative (lexicographic index-array advancement) rather
// than recursive. The generators walk spaces with tens of thousands of
// combinations and a head/tail recursion would burn stack for no benefit,
// while the iterative walk emits the exact same lexicographic order.
package combin

import "math"

// Binomial returns C(n, k), the number of k-subsets of an n-set.
// Computed with the multiplicative formula over min(k, n-k) terms so the
// intermediate product stays small; float64 accumulation is exact for every
// value the engine's resource ceilings allow (far below 2^53).
// k < 0 or k > n is defined as 0 combinations, not an error.
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return int64(math.Round(result))
}

// ForEachCombination enumerates every k-element index combination of
// {0, ..., n-1} in lexicographic order, calling fn for each. The index slice
// is reused between calls; fn must copy it if it keeps a reference.
// fn returning false stops the enumeration early.
func ForEachCombination(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}
	if k == 0 {
		fn([]int{})
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Rightmost position that can still be advanced: idx[j] may grow
		// up to n-k+j before the tail runs out of room.
		j := k - 1
		for j >= 0 && idx[j] == n-k+j {
			j--
		}
		if j < 0 {
			return
		}

		idx[j]++
		for i := j + 1; i < k; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
}

// Combinations materializes all k-subsets of items, preserving the relative
// order of items inside each subset. Callers that only need to scan the
// space once should prefer ForEachCombination to avoid the allocation.
func Combinations(items []int, k int) [][]int {
	total := Binomial(len(items), k)
	if total == 0 {
		return nil
	}

	out := make([][]int, 0, total)
	ForEachCombination(len(items), k, func(idx []int) bool {
		subset := make([]int, k)
		for i, j := range idx {
			subset[i] = items[j]
		}
		out = append(out, subset)
		return true
	})
	return out
}
