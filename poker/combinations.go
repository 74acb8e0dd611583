package poker

import (
	"iter"
	"slices"
)

// Combinations returns a lazy sequence of every k-card subset of cards, in
// lexicographic order of input positions. Each range over the sequence starts
// a fresh enumeration.
//
// The yielded slice is reused between iterations; copy it to retain it.
// A k outside [0, len(cards)] yields nothing and k == 0 yields one empty subset.
func Combinations(cards []Card, k int) iter.Seq[[]Card] {
	return func(yield func([]Card) bool) {
		pool := slices.Clone(cards)
		n := len(pool)
		if k < 0 || k > n {
			return
		}

		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		combo := make([]Card, k)

		for {
			for i, j := range idx {
				combo[i] = pool[j]
			}
			if !yield(combo) {
				return
			}

			// Find the rightmost index that can still advance.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// Binomial returns n choose k, or 0 when k is outside [0, n].
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
