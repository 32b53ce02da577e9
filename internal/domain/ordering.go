package domain

import "time"

// Note board items sort by SortKey descending (largest first). Keys are
// millisecond-scale numbers seeded from the creation time, so a fresh
// note lands on top of its column.

// orderKeyStep is the gap left when inserting at either end of a list.
// It is large relative to float64 precision at millisecond magnitudes,
// so end insertions never collide. Repeated midpoint insertions between
// the same two neighbours do converge eventually; a rebalance pass would
// be needed if the board ever saw that kind of churn.
const orderKeyStep = 1000.0

// InitialOrderKey returns the sort key for a newly created item.
func InitialOrderKey(now time.Time) float64 {
	return float64(now.UnixMilli())
}

// OrderKeyFront returns a key that sorts ahead of the current first key.
func OrderKeyFront(first float64) float64 {
	return first + orderKeyStep
}

// OrderKeyBack returns a key that sorts behind the current last key.
func OrderKeyBack(last float64) float64 {
	return last - orderKeyStep
}

// OrderKeyBetween returns a key strictly between two neighbouring keys.
func OrderKeyBetween(prev, next float64) float64 {
	return (prev + next) / 2
}
