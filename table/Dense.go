package table

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
)

// Vector is a dense state-value table over states 0..Len()-1. Out of
// range states panic with a *check.IndexError.
type Vector struct {
	v *mat.VecDense
}

// NewVector returns a new zero Vector over states states
func NewVector(states int) *Vector {
	return &Vector{mat.NewVecDense(states, nil)}
}

// VectorOf returns a Vector backed by v. Changes to the Vector are
// reflected in v.
func VectorOf(v *mat.VecDense) *Vector {
	return &Vector{v}
}

// At returns the value of state
func (t *Vector) At(state int) float64 {
	check.MustIndex("state", state, t.v.Len())
	return t.v.AtVec(state)
}

// Set sets the value of state
func (t *Vector) Set(state int, v float64) {
	check.MustIndex("state", state, t.v.Len())
	t.v.SetVec(state, v)
}

// Add adds v to the value of state
func (t *Vector) Add(state int, v float64) {
	check.MustIndex("state", state, t.v.Len())
	t.v.SetVec(state, t.v.AtVec(state)+v)
}

// Len returns the number of states
func (t *Vector) Len() int {
	return t.v.Len()
}

// RawVector returns the underlying vector
func (t *Vector) RawVector() *mat.VecDense {
	return t.v
}

// Matrix is a dense action-value table with one row per state and one
// column per action. Out of range states and actions panic with a
// *check.IndexError.
type Matrix struct {
	m *mat.Dense
}

// NewMatrix returns a new zero Matrix
func NewMatrix(states, actions int) *Matrix {
	return &Matrix{mat.NewDense(states, actions, nil)}
}

// MatrixOf returns a Matrix backed by m
func MatrixOf(m *mat.Dense) *Matrix {
	return &Matrix{m}
}

// At returns the value of action in state
func (t *Matrix) At(state, action int) float64 {
	t.mustIndex(state, action)
	return t.m.At(state, action)
}

// Set sets the value of action in state
func (t *Matrix) Set(state, action int, v float64) {
	t.mustIndex(state, action)
	t.m.Set(state, action, v)
}

// Add adds v to the value of action in state
func (t *Matrix) Add(state, action int, v float64) {
	t.mustIndex(state, action)
	t.m.Set(state, action, t.m.At(state, action)+v)
}

// Row returns a copy of the action values of state
func (t *Matrix) Row(state int) []float64 {
	check.MustIndex("state", state, t.NumStates())
	row := make([]float64, t.NumActions())
	copy(row, t.m.RawRowView(state))
	return row
}

// NumStates returns the number of states
func (t *Matrix) NumStates() int {
	r, _ := t.m.Dims()
	return r
}

// NumActions returns the number of actions
func (t *Matrix) NumActions() int {
	_, c := t.m.Dims()
	return c
}

// RawMatrix returns the underlying matrix
func (t *Matrix) RawMatrix() *mat.Dense {
	return t.m
}

func (t *Matrix) mustIndex(state, action int) {
	r, c := t.m.Dims()
	check.MustIndex("state", state, r)
	check.MustIndex("action", action, c)
}
