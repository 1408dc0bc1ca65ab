package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// Lasso is a linear model trained with an L1 prior as regularizer. The
// objective is
//
//	(1/2)·‖y − Xw‖² + alpha·nSamples·‖w‖₁
//
// solved by coordinate descent. The sparsity-inducing penalty drives
// coefficients of uninformative features to exactly zero.
type Lasso struct {
	state *model.StateManager

	// Hyperparameters
	alpha        float64
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

// LassoOption configures a Lasso estimator.
type LassoOption func(*Lasso)

// WithLassoAlpha sets the regularization strength. Defaults to 1.0.
func WithLassoAlpha(alpha float64) LassoOption {
	return func(l *Lasso) { l.alpha = alpha }
}

// WithLassoTol sets the duality-gap tolerance. Defaults to 1e-4.
func WithLassoTol(tol float64) LassoOption {
	return func(l *Lasso) { l.tol = tol }
}

// WithLassoMaxIter sets the sweep budget. Defaults to 1000.
func WithLassoMaxIter(maxIter int) LassoOption {
	return func(l *Lasso) { l.maxIter = maxIter }
}

// WithLassoFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithLassoFitIntercept(fit bool) LassoOption {
	return func(l *Lasso) { l.fitIntercept = fit }
}

// WithLassoWarmStart seeds the next Fit with the given coefficients
// instead of a zero vector. The slice is copied.
func WithLassoWarmStart(coef []float64) LassoOption {
	return func(l *Lasso) { l.warmCoef = copyFloats(coef) }
}

// NewLasso creates a Lasso estimator.
func NewLasso(opts ...LassoOption) *Lasso {
	l := &Lasso{
		state:        model.NewStateManager(),
		alpha:        1.0,
		tol:          1e-4,
		maxIter:      1000,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fit solves the lasso problem for X and the column vector y.
// When the solver stops at its sweep budget with the duality gap still
// above tolerance, a ConvergenceWarning is emitted and the best-effort
// coefficients are kept.
func (l *Lasso) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Lasso.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("Lasso.Fit", X, y)
	if err != nil {
		return err
	}
	if l.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", l.alpha)
	}

	Xc, yc, xMean, yMean := centerData(X, yv, l.fitIntercept)

	res, err := CoordinateDescent(Xc, yc, l.warmCoef, CDConfig{
		AlphaL1: l.alpha * float64(nSamples),
		MaxIter: l.maxIter,
		Tol:     l.tol,
	})
	if err != nil {
		return err
	}

	l.coef = res.Coef
	l.xMean = xMean
	l.yMean = yMean
	l.intercept = interceptFromMeans(l.coef, xMean, yMean)
	l.DualGap = res.Gap
	l.Eps = res.Eps
	l.NIter = res.Iters

	l.state.SetDimensions(nFeatures, nSamples)
	l.state.SetFitted()

	if res.Gap > res.Eps {
		errors.Warn(errors.NewConvergenceWarning("Lasso", res.Iters,
			"objective did not converge, you might want to increase the number of iterations"))
	}
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (l *Lasso) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := l.state.RequireFitted("Lasso", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := l.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("Lasso.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, l.coef, l.intercept), nil
}

// Score returns the coefficient of determination R².
func (l *Lasso) Score(X, y mat.Matrix) (float64, error) {
	if err := l.state.RequireFitted("Lasso", "Score"); err != nil {
		return 0, err
	}
	pred, err := l.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("Lasso.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (l *Lasso) Coef() []float64 {
	return copyFloats(l.coef)
}

// Intercept returns the learned independent term.
func (l *Lasso) Intercept() float64 {
	return l.intercept
}

// Alpha returns the regularization strength the model was configured with.
func (l *Lasso) Alpha() float64 {
	return l.alpha
}

// IsFitted reports whether Fit has completed successfully.
func (l *Lasso) IsFitted() bool {
	return l.state.IsFitted()
}
