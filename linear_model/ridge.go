package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// Ridge is linear regression with an L2 penalty. Small positive alphas
// improve the conditioning of the problem and reduce the variance of the
// estimates. The fit is a single direct solve of the regularized normal
// equations, switching to the dual formulation when there are fewer
// samples than features.
type Ridge struct {
	state *model.StateManager

	alpha        float64
	fitIntercept bool

	coef      []float64
	intercept float64
}

// RidgeOption configures a Ridge estimator.
type RidgeOption func(*Ridge)

// WithRidgeAlpha sets the L2 penalty. Defaults to 1.0.
func WithRidgeAlpha(alpha float64) RidgeOption {
	return func(r *Ridge) { r.alpha = alpha }
}

// WithRidgeFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithRidgeFitIntercept(fit bool) RidgeOption {
	return func(r *Ridge) { r.fitIntercept = fit }
}

// NewRidge creates a Ridge estimator.
func NewRidge(opts ...RidgeOption) *Ridge {
	r := &Ridge{
		state:        model.NewStateManager(),
		alpha:        1.0,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit solves the ridge problem for X and the column vector y.
func (r *Ridge) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Ridge.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("Ridge.Fit", X, y)
	if err != nil {
		return err
	}
	if r.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", r.alpha)
	}

	Xc, yc, xMean, yMean := centerData(X, yv, r.fitIntercept)

	coef := make([]float64, nFeatures)
	if nSamples > nFeatures {
		// w = (XᵀX + alpha·I)⁻¹ Xᵀy
		a := precisionMatrix(gramMatrix(Xc), diagConst(r.alpha, nFeatures), 1.0)
		var sol mat.Dense
		if err := sol.Solve(a, mat.NewDense(nFeatures, 1, xty(Xc, yc))); err != nil {
			return errors.NewModelError("Ridge.Fit", "singular matrix", errors.ErrSingularMatrix)
		}
		for j := 0; j < nFeatures; j++ {
			coef[j] = sol.At(j, 0)
		}
	} else {
		// Dual form: w = Xᵀ(XXᵀ + alpha·I)⁻¹ y
		a := mat.NewDense(nSamples, nSamples, nil)
		a.Mul(Xc, Xc.T())
		for i := 0; i < nSamples; i++ {
			a.Set(i, i, a.At(i, i)+r.alpha)
		}
		var sol mat.Dense
		if err := sol.Solve(a, mat.NewDense(nSamples, 1, yc)); err != nil {
			return errors.NewModelError("Ridge.Fit", "singular matrix", errors.ErrSingularMatrix)
		}
		dual := make([]float64, nSamples)
		for i := 0; i < nSamples; i++ {
			dual[i] = sol.At(i, 0)
		}
		coef = xty(Xc, dual)
	}

	r.coef = coef
	r.intercept = interceptFromMeans(coef, xMean, yMean)
	r.state.SetDimensions(nFeatures, nSamples)
	r.state.SetFitted()
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := r.state.RequireFitted("Ridge", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := r.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, r.coef, r.intercept), nil
}

// Score returns the coefficient of determination R².
func (r *Ridge) Score(X, y mat.Matrix) (float64, error) {
	if err := r.state.RequireFitted("Ridge", "Score"); err != nil {
		return 0, err
	}
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("Ridge.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (r *Ridge) Coef() []float64 {
	return copyFloats(r.coef)
}

// Intercept returns the learned independent term.
func (r *Ridge) Intercept() float64 {
	return r.intercept
}

// IsFitted reports whether Fit has completed successfully.
func (r *Ridge) IsFitted() bool {
	return r.state.IsFitted()
}
