package state

import "math/rand/v2"

// Order maps a play-order position to a catalog index. A valid order is
// always a permutation of [0..n); it is re-derived whole when shuffle
// toggles, never patched in place.
type Order []int

// Identity returns the in-catalog order [0,1,...,n-1].
func Identity(n int) Order {
	order := make(Order, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// Shuffled returns a uniform random permutation of [0..n) using the
// Fisher-Yates shuffle.
func Shuffled(n int) Order {
	order := Identity(n)
	for i := n - 1; i >= 1; i-- {
		j := rand.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// IndexOf returns the play-order position holding the given catalog index,
// or -1 when absent.
func (o Order) IndexOf(catalogIndex int) int {
	for pos, idx := range o {
		if idx == catalogIndex {
			return pos
		}
	}
	return -1
}
