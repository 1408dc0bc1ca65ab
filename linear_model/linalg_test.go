package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPinvInvertible(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 4})

	inv, err := pinv(a)
	if err != nil {
		t.Fatalf("pinv() error = %v", err)
	}

	want := mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.25})
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(inv.At(i, j)-want.At(i, j)) > 1e-12 {
				t.Errorf("pinv[%d][%d] = %v, want %v", i, j, inv.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestPinvSingular(t *testing.T) {
	// Rank-1 matrix: the pseudo-inverse must satisfy A·A⁺·A = A with the
	// null direction mapped to zero.
	a := mat.NewDense(2, 2, []float64{1, 1, 1, 1})

	inv, err := pinv(a)
	if err != nil {
		t.Fatalf("pinv() error = %v", err)
	}

	var back mat.Dense
	back.Mul(a, inv)
	back.Mul(&back, a)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(back.At(i, j)-a.At(i, j)) > 1e-10 {
				t.Errorf("A·A⁺·A[%d][%d] = %v, want %v", i, j, back.At(i, j), a.At(i, j))
			}
			if math.IsNaN(inv.At(i, j)) || math.IsInf(inv.At(i, j), 0) {
				t.Errorf("pinv[%d][%d] = %v, want finite", i, j, inv.At(i, j))
			}
		}
	}
}

func TestGramMatrix(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})

	g := gramMatrix(X)
	want := [][]float64{{2, 1}, {1, 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(g.At(i, j)-want[i][j]) > 1e-12 {
				t.Errorf("gram[%d][%d] = %v, want %v", i, j, g.At(i, j), want[i][j])
			}
		}
	}
}

func TestSymEigenvalues(t *testing.T) {
	g := mat.NewSymDense(2, []float64{3, 0, 0, 5})

	eigen, err := symEigenvalues(g)
	if err != nil {
		t.Fatalf("symEigenvalues() error = %v", err)
	}

	var sum float64
	for _, ev := range eigen {
		sum += ev
	}
	// Trace equals the eigenvalue sum.
	if math.Abs(sum-8) > 1e-12 {
		t.Errorf("eigenvalue sum = %v, want 8", sum)
	}
}

func TestLogDet(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	if got := logDet(a); math.Abs(got-math.Log(6)) > 1e-12 {
		t.Errorf("logDet = %v, want log(6)", got)
	}
}

func TestXty(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	y := []float64{1, 1, 1}

	got := xty(X, y)
	want := []float64{9, 12}
	for j := range want {
		if math.Abs(got[j]-want[j]) > 1e-12 {
			t.Errorf("xty[%d] = %v, want %v", j, got[j], want[j])
		}
	}
}
