package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// LinearRegression is ordinary least squares: a single direct
// least-squares solve with no regularization.
type LinearRegression struct {
	state *model.StateManager

	fitIntercept bool

	coef      []float64
	intercept float64
}

// LinearRegressionOption configures a LinearRegression estimator.
type LinearRegressionOption func(*LinearRegression)

// WithLinRegFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithLinRegFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) { lr.fitIntercept = fit }
}

// NewLinearRegression creates a LinearRegression estimator.
func NewLinearRegression(opts ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit solves the least-squares problem for X and the column vector y.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("LinearRegression.Fit", X, y)
	if err != nil {
		return err
	}

	Xc, yc, xMean, yMean := centerData(X, yv, lr.fitIntercept)

	// QR-based least squares; also handles the underdetermined case.
	var sol mat.Dense
	if err := sol.Solve(Xc, mat.NewDense(nSamples, 1, yc)); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	coef := make([]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		coef[j] = sol.At(j, 0)
	}

	lr.coef = coef
	lr.intercept = interceptFromMeans(coef, xMean, yMean)
	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := lr.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, lr.coef, lr.intercept), nil
}

// Score returns the coefficient of determination R².
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("LinearRegression.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (lr *LinearRegression) Coef() []float64 {
	return copyFloats(lr.coef)
}

// Intercept returns the learned independent term.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// IsFitted reports whether Fit has completed successfully.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}
