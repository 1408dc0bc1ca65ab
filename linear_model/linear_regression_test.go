package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/pkg/errors"
)

func TestLinearRegressionExactFit(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{3, 5, 7, 9, 11})

	m := NewLinearRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := m.Coef()[0]; math.Abs(got-2.0) > 1e-10 {
		t.Errorf("Coef[0] = %v, want 2", got)
	}
	if got := m.Intercept(); math.Abs(got-1.0) > 1e-10 {
		t.Errorf("Intercept() = %v, want 1", got)
	}

	score, err := m.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score-1.0) > 1e-10 {
		t.Errorf("Score() = %v, want 1", score)
	}
}

func TestLinearRegressionMultiFeature(t *testing.T) {
	// y = 2·x1 − x2 + 0.5
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 0,
		0, 3,
		3, 2,
	})
	y := mat.NewDense(4, 1, []float64{1.5, 4.5, -2.5, 4.5})

	m := NewLinearRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coef := m.Coef()
	if math.Abs(coef[0]-2.0) > 1e-8 || math.Abs(coef[1]+1.0) > 1e-8 {
		t.Errorf("Coef() = %v, want [2, -1]", coef)
	}
	if math.Abs(m.Intercept()-0.5) > 1e-8 {
		t.Errorf("Intercept() = %v, want 0.5", m.Intercept())
	}
}

func TestLinearRegressionNoIntercept(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	m := NewLinearRegression(WithLinRegFitIntercept(false))
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if m.Intercept() != 0 {
		t.Errorf("Intercept() = %v, want 0 without centering", m.Intercept())
	}
	if got := m.Coef()[0]; math.Abs(got-2.0) > 1e-10 {
		t.Errorf("Coef[0] = %v, want 2", got)
	}
}

func TestLinearRegressionNotFitted(t *testing.T) {
	m := NewLinearRegression()
	_, err := m.Predict(mat.NewDense(1, 1, []float64{1}))
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("error = %v, want *NotFittedError", err)
	}
}
