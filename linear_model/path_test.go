package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestResolveAlphasGrid(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 1,
		2, 2,
	})
	y := []float64{0, 1, 2}

	alphas, err := resolveAlphas("test", X, y, 1.0, PathConfig{Eps: 1e-3, NAlphas: 5})
	if err != nil {
		t.Fatalf("resolveAlphas() error = %v", err)
	}
	if len(alphas) != 5 {
		t.Fatalf("got %d alphas, want 5", len(alphas))
	}

	// max|Xᵀy| = 5 on both columns, so alphaMax = 5/3 exactly.
	wantMax := 5.0 / 3.0
	if alphas[0] != wantMax {
		t.Errorf("alphas[0] = %v, want exactly %v", alphas[0], wantMax)
	}
	for i := 1; i < len(alphas); i++ {
		if alphas[i] >= alphas[i-1] {
			t.Errorf("alphas[%d] = %v not below alphas[%d] = %v", i, alphas[i], i-1, alphas[i-1])
		}
	}
	if tail := alphas[len(alphas)-1]; math.Abs(tail-1e-3*wantMax) > 1e-12 {
		t.Errorf("alphas tail = %v, want eps·alphaMax = %v", tail, 1e-3*wantMax)
	}
}

func TestResolveAlphasExplicitListSorted(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	y := []float64{1, 2}

	given := []float64{0.1, 1.0, 0.5}
	alphas, err := resolveAlphas("test", X, y, 1.0, PathConfig{Alphas: given})
	if err != nil {
		t.Fatalf("resolveAlphas() error = %v", err)
	}

	want := []float64{1.0, 0.5, 0.1}
	for i := range want {
		if alphas[i] != want[i] {
			t.Errorf("alphas[%d] = %v, want %v", i, alphas[i], want[i])
		}
	}
	if given[0] != 0.1 {
		t.Errorf("caller's alpha list was reordered in place")
	}
}

func TestResolveAlphasErrors(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	y := []float64{1, 2}

	tests := []struct {
		name string
		y    []float64
		cfg  PathConfig
	}{
		{"length mismatch with NAlphas", y, PathConfig{Alphas: []float64{1, 0.5}, NAlphas: 3}},
		{"empty explicit list", y, PathConfig{Alphas: []float64{}}},
		{"uncorrelated target", []float64{0, 0}, PathConfig{NAlphas: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveAlphas("test", X, tt.y, 1.0, tt.cfg); err == nil {
				t.Errorf("resolveAlphas() error = nil, want error")
			}
		})
	}
}

func TestLogSpacedGrid(t *testing.T) {
	grid := logSpacedGrid(100, 1, 3)
	want := []float64{100, 10, 1}
	for i := range want {
		if math.Abs(grid[i]-want[i]) > 1e-9 {
			t.Errorf("grid[%d] = %v, want %v", i, grid[i], want[i])
		}
	}
	if grid[0] != 100 {
		t.Errorf("grid head = %v, want the exact upper bound", grid[0])
	}

	if single := logSpacedGrid(7, 1, 1); single[0] != 7 {
		t.Errorf("single-point grid = %v, want [7]", single)
	}
}

func TestLassoPath(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		1.0, 0.2,
		2.0, -0.1,
		3.1, 0.4,
		3.9, -0.3,
		5.2, 0.1,
		6.0, -0.2,
	})
	y := mat.NewDense(6, 1, []float64{1.1, 2.0, 3.0, 4.1, 5.0, 6.2})

	cfg := NewPathConfig()
	cfg.NAlphas = 10

	models, err := LassoPath(X, y, cfg)
	if err != nil {
		t.Fatalf("LassoPath() error = %v", err)
	}
	if len(models) != 10 {
		t.Fatalf("got %d models, want 10", len(models))
	}

	for i, m := range models {
		if !m.IsFitted() {
			t.Fatalf("models[%d] not fitted", i)
		}
		if i > 0 && m.Alpha() >= models[i-1].Alpha() {
			t.Errorf("models[%d].Alpha() = %v not below models[%d].Alpha() = %v",
				i, m.Alpha(), i-1, models[i-1].Alpha())
		}
	}

	// The least-penalized end of the path fits the near-linear target well.
	score, err := models[len(models)-1].Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 0.98 {
		t.Errorf("tail model Score() = %v, want > 0.98", score)
	}
}

func TestLassoPathWarmStartIndependence(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	cfg := NewPathConfig()
	cfg.NAlphas = 5

	models, err := LassoPath(X, y, cfg)
	if err != nil {
		t.Fatalf("LassoPath() error = %v", err)
	}

	// Mutating one model's coefficient slice must not reach into another:
	// the warm start is copied at every step.
	a := models[2].Coef()
	a[0] = 1e9
	b := models[3].Coef()
	if b[0] == 1e9 {
		t.Errorf("path models share coefficient storage")
	}
}

func TestENetPath(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 0.5,
		2, 1.0,
		3, 1.4,
		4, 2.1,
	})
	y := mat.NewDense(4, 1, []float64{2.1, 3.9, 6.1, 8.0})

	cfg := NewPathConfig()
	cfg.NAlphas = 5

	models, err := ENetPath(X, y, 0.5, cfg)
	if err != nil {
		t.Fatalf("ENetPath() error = %v", err)
	}
	if len(models) != 5 {
		t.Fatalf("got %d models, want 5", len(models))
	}
	for _, m := range models {
		if m.Rho() != 0.5 {
			t.Errorf("Rho() = %v, want 0.5", m.Rho())
		}
	}

	if _, err := ENetPath(X, y, 0, cfg); err == nil {
		t.Errorf("ENetPath(rho=0) error = nil, want validation error")
	}
}
