package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/pkg/errors"
)

func TestElasticNetPureL1MatchesLasso(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 1,
		2, 2,
	})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	lasso := NewLasso(WithLassoAlpha(0.1))
	if err := lasso.Fit(X, y); err != nil {
		t.Fatalf("lasso Fit() error = %v", err)
	}

	// rho=1 removes the L2 term entirely.
	enet := NewElasticNet(WithENetAlpha(0.1), WithENetRho(1.0))
	if err := enet.Fit(X, y); err != nil {
		t.Fatalf("enet Fit() error = %v", err)
	}

	lc, ec := lasso.Coef(), enet.Coef()
	for j := range lc {
		if math.Abs(lc[j]-ec[j]) > 1e-10 {
			t.Errorf("Coef[%d]: lasso %v vs rho=1 elastic net %v", j, lc[j], ec[j])
		}
	}
	if math.Abs(lasso.Intercept()-enet.Intercept()) > 1e-10 {
		t.Errorf("Intercept: lasso %v vs rho=1 elastic net %v", lasso.Intercept(), enet.Intercept())
	}
}

func TestElasticNetSpreadsDuplicatedFeature(t *testing.T) {
	// With an L2 component the strictly convex objective splits the weight
	// evenly across identical features instead of picking one.
	X := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 1,
		2, 2,
	})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	m := NewElasticNet(WithENetAlpha(0.1), WithENetRho(0.5), WithENetTol(1e-10))
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coef := m.Coef()
	if coef[0] <= 0 || coef[1] <= 0 {
		t.Fatalf("Coef = %v, want both positive", coef)
	}
	if math.Abs(coef[0]-coef[1]) > 1e-4 {
		t.Errorf("Coef = %v, want an even split across identical features", coef)
	}
}

func TestElasticNetRhoValidation(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	for _, rho := range []float64{0, -0.5, 1.5} {
		m := NewElasticNet(WithENetRho(rho))
		err := m.Fit(X, y)
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("rho=%v: error = %v, want *ValidationError", rho, err)
		}
	}
}

func TestElasticNetScore(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{2.1, 3.9, 6.2, 8.0, 9.9})

	m := NewElasticNet(WithENetAlpha(0.01), WithENetRho(0.9))
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	score, err := m.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 0.99 {
		t.Errorf("Score() = %v, want > 0.99 on a near-linear target", score)
	}
}

func TestElasticNetAccessors(t *testing.T) {
	m := NewElasticNet(WithENetAlpha(0.3), WithENetRho(0.7))
	if m.Alpha() != 0.3 {
		t.Errorf("Alpha() = %v, want 0.3", m.Alpha())
	}
	if m.Rho() != 0.7 {
		t.Errorf("Rho() = %v, want 0.7", m.Rho())
	}
	if m.IsFitted() {
		t.Errorf("IsFitted() = true before Fit")
	}
}
