package matutils

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestReshape(t *testing.T) {
	v := mat.NewVecDense(6, []float64{1, 2, 3, 4, 5, 6})
	m := Reshape(v, 2, 3)
	if m.At(1, 0) != 4 || m.At(0, 2) != 3 {
		t.Errorf("reshape is not row-major: %v", Format(m))
	}
	if d := MaxAbsDiff(v, mat.NewVecDense(6, []float64{1, 2, 3, 4, 5, 8})); d != 2 {
		t.Errorf("MaxAbsDiff = %v, want 2", d)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Reshape of 6 elements to (4, 2) should panic")
		}
	}()
	Reshape(v, 4, 2)
}

func TestRowMax(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, -2, 3, -4, -5, -6})
	max := RowMax(m)
	if max.AtVec(0) != 3 || max.AtVec(1) != -4 {
		t.Errorf("RowMax = %v", Format(max))
	}
}

func TestFormat(t *testing.T) {
	got := Format(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if strings.Count(got, "\n") != 1 || !strings.Contains(got, "4") {
		t.Errorf("Format should print two rows:\n%v", got)
	}
}
