package floatutils

import "testing"

func TestMaxSliceTies(t *testing.T) {
	max, indices := maxSlice([]float64{1, 3, 2, 3, 3})
	if max != 3 {
		t.Errorf("max = %v, want 3", max)
	}
	want := []int{1, 3, 4}
	if len(indices) != len(want) {
		t.Fatalf("indices = %v, want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("indices = %v, want %v", indices, want)
		}
	}
	if ArgMax([]float64{0, 0, 0}) != 0 {
		t.Errorf("ties should break to the lowest index")
	}
}

func TestClip(t *testing.T) {
	if got := Clip(3, -1, 1); got != 1 {
		t.Errorf("Clip(3, -1, 1) = %v", got)
	}
	if got := Clip(-3, -1, 1); got != -1 {
		t.Errorf("Clip(-3, -1, 1) = %v", got)
	}
	if got := Clip(0.5, -1, 1); got != 0.5 {
		t.Errorf("Clip(0.5, -1, 1) = %v", got)
	}
}
