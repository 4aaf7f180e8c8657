package table

import (
	"sfneuman.com/tabular/check"
)

// Map is a state-value table keyed by arbitrary comparable states.
// States which were never set have value zero.
type Map[K comparable] struct {
	values map[K]float64
	order  []K
}

// NewMap returns a new empty Map
func NewMap[K comparable]() *Map[K] {
	return &Map[K]{values: make(map[K]float64)}
}

// At returns the value of state
func (t *Map[K]) At(state K) float64 {
	return t.values[state]
}

// Set sets the value of state
func (t *Map[K]) Set(state K, v float64) {
	t.touch(state)
	t.values[state] = v
}

// Add adds v to the value of state
func (t *Map[K]) Add(state K, v float64) {
	t.touch(state)
	t.values[state] += v
}

// Keys returns the states which have been written, in the order they
// were first written
func (t *Map[K]) Keys() []K {
	keys := make([]K, len(t.order))
	copy(keys, t.order)
	return keys
}

// Len returns the number of states which have been written
func (t *Map[K]) Len() int {
	return len(t.order)
}

func (t *Map[K]) touch(state K) {
	if _, ok := t.values[state]; !ok {
		t.order = append(t.order, state)
	}
}

// MapQ is an action-value table keyed by arbitrary comparable states.
// Out of range actions panic with a *check.IndexError.
type MapQ[K comparable] struct {
	actions int
	values  map[K][]float64
	order   []K
}

// NewMapQ returns a new empty MapQ with actions actions per state
func NewMapQ[K comparable](actions int) *MapQ[K] {
	if actions < 1 {
		panic(check.Configf("actions", actions, "must be >= 1"))
	}
	return &MapQ[K]{actions: actions, values: make(map[K][]float64)}
}

// At returns the value of action in state
func (t *MapQ[K]) At(state K, action int) float64 {
	check.MustIndex("action", action, t.actions)
	row, ok := t.values[state]
	if !ok {
		return 0
	}
	return row[action]
}

// Set sets the value of action in state
func (t *MapQ[K]) Set(state K, action int, v float64) {
	check.MustIndex("action", action, t.actions)
	t.row(state)[action] = v
}

// Add adds v to the value of action in state
func (t *MapQ[K]) Add(state K, action int, v float64) {
	check.MustIndex("action", action, t.actions)
	t.row(state)[action] += v
}

// Row returns a copy of the action values of state
func (t *MapQ[K]) Row(state K) []float64 {
	row := make([]float64, t.actions)
	copy(row, t.values[state])
	return row
}

// NumActions returns the number of actions
func (t *MapQ[K]) NumActions() int {
	return t.actions
}

// Keys returns the states which have been written, in the order they
// were first written
func (t *MapQ[K]) Keys() []K {
	keys := make([]K, len(t.order))
	copy(keys, t.order)
	return keys
}

func (t *MapQ[K]) row(state K) []float64 {
	row, ok := t.values[state]
	if !ok {
		row = make([]float64, t.actions)
		t.values[state] = row
		t.order = append(t.order, state)
	}
	return row
}
