package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// ElasticNet is a linear model trained with combined L1 and L2 priors. The
// mixing parameter rho interpolates between ridge (rho→0) and lasso
// (rho=1): the solver sees an L1 weight of alpha·rho·nSamples and an L2
// weight of alpha·(1−rho)·nSamples. rho ≤ 0.01 is unreliable unless an
// explicit alpha sequence is supplied.
type ElasticNet struct {
	state *model.StateManager

	// Hyperparameters
	alpha        float64
	rho          float64
	tol          float64
	maxIter      int
	fitIntercept bool
	warmCoef     []float64

	// Learned state
	coef      []float64
	intercept float64
	xMean     []float64
	yMean     float64

	// Solver diagnostics from the last fit
	DualGap float64
	Eps     float64
	NIter   int
}

// ElasticNetOption configures an ElasticNet estimator.
type ElasticNetOption func(*ElasticNet)

// WithENetAlpha sets the overall regularization strength. Defaults to 1.0.
func WithENetAlpha(alpha float64) ElasticNetOption {
	return func(e *ElasticNet) { e.alpha = alpha }
}

// WithENetRho sets the L1 mixing fraction, 0 < rho ≤ 1. Defaults to 0.5.
func WithENetRho(rho float64) ElasticNetOption {
	return func(e *ElasticNet) { e.rho = rho }
}

// WithENetTol sets the duality-gap tolerance. Defaults to 1e-4.
func WithENetTol(tol float64) ElasticNetOption {
	return func(e *ElasticNet) { e.tol = tol }
}

// WithENetMaxIter sets the sweep budget. Defaults to 1000.
func WithENetMaxIter(maxIter int) ElasticNetOption {
	return func(e *ElasticNet) { e.maxIter = maxIter }
}

// WithENetFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithENetFitIntercept(fit bool) ElasticNetOption {
	return func(e *ElasticNet) { e.fitIntercept = fit }
}

// WithENetWarmStart seeds the next Fit with the given coefficients
// instead of a zero vector. The slice is copied.
func WithENetWarmStart(coef []float64) ElasticNetOption {
	return func(e *ElasticNet) { e.warmCoef = copyFloats(coef) }
}

// NewElasticNet creates an ElasticNet estimator.
func NewElasticNet(opts ...ElasticNetOption) *ElasticNet {
	e := &ElasticNet{
		state:        model.NewStateManager(),
		alpha:        1.0,
		rho:          0.5,
		tol:          1e-4,
		maxIter:      1000,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit solves the elastic-net problem for X and the column vector y with
// coordinate descent. Non-convergence raises a ConvergenceWarning and
// keeps the best-effort coefficients.
func (e *ElasticNet) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "ElasticNet.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("ElasticNet.Fit", X, y)
	if err != nil {
		return err
	}
	if e.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", e.alpha)
	}
	if e.rho <= 0 || e.rho > 1 {
		return errors.NewValidationError("rho", "must be in (0, 1]", e.rho)
	}

	Xc, yc, xMean, yMean := centerData(X, yv, e.fitIntercept)

	res, err := CoordinateDescent(Xc, yc, e.warmCoef, CDConfig{
		AlphaL1: e.alpha * e.rho * float64(nSamples),
		AlphaL2: e.alpha * (1.0 - e.rho) * float64(nSamples),
		MaxIter: e.maxIter,
		Tol:     e.tol,
	})
	if err != nil {
		return err
	}

	e.coef = res.Coef
	e.xMean = xMean
	e.yMean = yMean
	e.intercept = interceptFromMeans(e.coef, xMean, yMean)
	e.DualGap = res.Gap
	e.Eps = res.Eps
	e.NIter = res.Iters

	e.state.SetDimensions(nFeatures, nSamples)
	e.state.SetFitted()

	if res.Gap > res.Eps {
		errors.Warn(errors.NewConvergenceWarning("ElasticNet", res.Iters,
			"objective did not converge, you might want to increase the number of iterations"))
	}
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (e *ElasticNet) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := e.state.RequireFitted("ElasticNet", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := e.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("ElasticNet.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, e.coef, e.intercept), nil
}

// Score returns the coefficient of determination R².
func (e *ElasticNet) Score(X, y mat.Matrix) (float64, error) {
	if err := e.state.RequireFitted("ElasticNet", "Score"); err != nil {
		return 0, err
	}
	pred, err := e.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("ElasticNet.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (e *ElasticNet) Coef() []float64 {
	return copyFloats(e.coef)
}

// Intercept returns the learned independent term.
func (e *ElasticNet) Intercept() float64 {
	return e.intercept
}

// Alpha returns the regularization strength the model was configured with.
func (e *ElasticNet) Alpha() float64 {
	return e.alpha
}

// Rho returns the L1 mixing fraction.
func (e *ElasticNet) Rho() float64 {
	return e.rho
}

// IsFitted reports whether Fit has completed successfully.
func (e *ElasticNet) IsFitted() bool {
	return e.state.IsFitted()
}
