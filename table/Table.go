// Package table implements state-value and action-value tables.
//
// Dense tables store values for integer states 0..n-1 in gonum vectors
// and matrices. Map tables key values by any comparable state, so that
// environments whose states are labels can be learned about without an
// index. Both satisfy the same interfaces and every algorithm in this
// module accepts either. All tables start at zero.
package table

// Values is a table of state values
type Values[K comparable] interface {
	At(state K) float64
	Set(state K, v float64)
	Add(state K, v float64)
}

// ActionValues is a table of action values. Every state has the same
// NumActions() actions.
type ActionValues[K comparable] interface {
	At(state K, action int) float64
	Set(state K, action int, v float64)
	Add(state K, action int, v float64)

	// Row returns a copy of the action values of state
	Row(state K) []float64
	NumActions() int
}
