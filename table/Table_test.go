package table

import (
	"testing"

	"sfneuman.com/tabular/check"
)

// Compile-time checks that every table satisfies its interface
var (
	_ Values[int]          = &Vector{}
	_ Values[string]       = &Map[string]{}
	_ ActionValues[int]    = &Matrix{}
	_ ActionValues[string] = &MapQ[string]{}
)

func expectIndexPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !check.IsIndex(err) {
			t.Errorf("%s: expected IndexError panic, got %v", name, r)
		}
	}()
	f()
}

func TestDenseTables(t *testing.T) {
	v := NewVector(3)
	v.Set(1, 2)
	v.Add(1, 0.5)
	if v.At(1) != 2.5 || v.At(0) != 0 {
		t.Errorf("vector values wrong: %v, %v", v.At(1), v.At(0))
	}
	expectIndexPanic(t, "vector at", func() { v.At(3) })
	expectIndexPanic(t, "vector set", func() { v.Set(-1, 0) })

	q := NewMatrix(2, 3)
	q.Set(1, 2, 4)
	q.Add(1, 2, -1)
	row := q.Row(1)
	if row[2] != 3 {
		t.Errorf("row = %v", row)
	}
	row[2] = 100
	if q.At(1, 2) != 3 {
		t.Errorf("Row should return a copy")
	}
	expectIndexPanic(t, "matrix action", func() { q.At(0, 3) })
	expectIndexPanic(t, "matrix state", func() { q.Add(2, 0, 1) })
}

func TestMapTables(t *testing.T) {
	v := NewMap[string]()
	if v.At("A") != 0 {
		t.Errorf("missing keys should read as zero")
	}
	v.Add("B", 1)
	v.Set("A", 2)
	v.Add("B", 1)
	if v.At("B") != 2 {
		t.Errorf("V(B) = %v, want 2", v.At("B"))
	}
	if keys := v.Keys(); len(keys) != 2 || keys[0] != "B" || keys[1] != "A" {
		t.Errorf("keys = %v, want [B A]", keys)
	}

	q := NewMapQ[string](2)
	if row := q.Row("unseen"); len(row) != 2 || row[0] != 0 || row[1] != 0 {
		t.Errorf("unseen row = %v", row)
	}
	q.Add("A", 1, 0.5)
	if q.At("A", 1) != 0.5 || q.At("A", 0) != 0 {
		t.Errorf("q values wrong: %v", q.Row("A"))
	}
	expectIndexPanic(t, "mapq action", func() { q.Set("A", 2, 1) })
}
