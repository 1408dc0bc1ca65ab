package linear_model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// BayesConfig configures the Bayesian ridge solver.
type BayesConfig struct {
	MaxIter      int     // step budget; defaults to 300
	Tol          float64 // stop when Σ|Δw| drops below this; defaults to 1e-12
	ComputeScore bool    // compute the log marginal likelihood at the final state
}

// BayesResult is the outcome of a Bayesian ridge solve.
type BayesResult struct {
	Coef  []float64 // posterior mean of the weights
	Alpha float64   // precision of the weight prior
	Beta  float64   // precision of the noise
	Sigma *mat.Dense
	// Scores holds the log marginal likelihood. It carries a single
	// trailing value computed at the final state when ComputeScore is set,
	// not one entry per iteration.
	Scores    []float64
	Iters     int
	Converged bool
}

// withDefaults fills zero fields with the solver defaults.
func (cfg BayesConfig) withDefaults() BayesConfig {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 300
	}
	if cfg.Tol <= 0 {
		cfg.Tol = 1e-12
	}
	return cfg
}

// BayesianRidgeRegression estimates a ridge-type model within a Bayesian
// framework, alternating between the posterior of the weights and point
// updates of the two precisions until the weights stop moving. The
// precision-augmented Gram matrix is inverted with a pseudo-inverse, so
// collinear features degrade to a minimum-norm solution instead of
// failing. See Bishop, Pattern Recognition and Machine Learning,
// pp. 167-169.
func BayesianRidgeRegression(X *mat.Dense, y []float64, cfg BayesConfig) (BayesResult, error) {
	cfg = cfg.withDefaults()

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return BayesResult{}, errors.NewModelError("BayesianRidgeRegression", "empty data", errors.ErrEmptyData)
	}
	if len(y) != nSamples {
		return BayesResult{}, errors.NewDimensionError("BayesianRidgeRegression", nSamples, len(y), 0)
	}

	variance := populationVariance(y)
	if variance == 0 {
		return BayesResult{}, errors.NewValueError("BayesianRidgeRegression",
			"target has zero variance, cannot initialize the noise precision")
	}

	beta := 1.0 / variance
	alpha := 1.0

	gram := gramMatrix(X)
	eigen, err := symEigenvalues(gram)
	if err != nil {
		return BayesResult{}, err
	}
	xtY := xty(X, y)

	sigma, w, err := bayesPosterior(gram, xtY, diagConst(alpha, nFeatures), beta)
	if err != nil {
		return BayesResult{}, err
	}
	oldW := copyFloats(w)

	res := BayesResult{}
	var residual float64
	for step := 0; step < cfg.MaxIter; step++ {
		// Effective degrees of freedom from the Gram spectrum.
		var gamma float64
		for _, ev := range eigen {
			lmbd := beta * ev
			gamma += lmbd / (alpha + lmbd)
		}
		alpha = gamma / floats.Dot(w, w)

		residual = residualSumSquares(X, w, y)
		beta = (float64(nSamples) - gamma) / residual

		sigma, w, err = bayesPosterior(gram, xtY, diagConst(alpha, nFeatures), beta)
		if err != nil {
			return BayesResult{}, err
		}
		res.Iters = step + 1

		if sumAbsDiff(w, oldW) < cfg.Tol {
			res.Converged = true
			break
		}
		oldW = copyFloats(w)
	}

	if cfg.ComputeScore {
		// One trailing value at the final state, not a per-iteration trace.
		residual = residualSumSquares(X, w, y)
		ll := 0.5*float64(nFeatures)*math.Log(alpha) + 0.5*float64(nSamples)*math.Log(beta)
		ll -= 0.5*beta*residual + 0.5*alpha*floats.Dot(w, w)
		ll -= logDet(precisionMatrix(gram, diagConst(alpha, nFeatures), beta))
		ll -= float64(nSamples) * math.Log(2*math.Pi)
		res.Scores = append(res.Scores, ll)
	}

	res.Coef = w
	res.Alpha = alpha
	res.Beta = beta
	res.Sigma = sigma
	return res, nil
}

// diagConst returns a length-p slice filled with v, the diagonal of v·I.
func diagConst(v float64, p int) []float64 {
	d := make([]float64, p)
	for i := range d {
		d[i] = v
	}
	return d
}

// precisionMatrix builds diag(alphaDiag) + beta·gram.
func precisionMatrix(gram *mat.SymDense, alphaDiag []float64, beta float64) *mat.Dense {
	p := len(alphaDiag)
	a := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			v := beta * gram.At(i, j)
			if i == j {
				v += alphaDiag[i]
			}
			a.Set(i, j, v)
		}
	}
	return a
}

// bayesPosterior computes the weight posterior: the covariance
// Sigma = pinv(diag(alphaDiag) + beta·gram) and mean w = beta·Sigma·Xᵀy.
func bayesPosterior(gram *mat.SymDense, xtY, alphaDiag []float64, beta float64) (*mat.Dense, []float64, error) {
	sigma, err := pinv(precisionMatrix(gram, alphaDiag, beta))
	if err != nil {
		return nil, nil, err
	}
	w := matVec(sigma, xtY)
	floats.Scale(beta, w)
	return sigma, w, nil
}

// residualSumSquares computes Σ(y − Xw)².
func residualSumSquares(X *mat.Dense, w, y []float64) float64 {
	pred := matVec(X, w)
	var sum float64
	for i := range y {
		d := y[i] - pred[i]
		sum += d * d
	}
	return sum
}

// sumAbsDiff computes Σ|a − b|.
func sumAbsDiff(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// BayesianRidge estimates a ridge-type linear model with automatically
// tuned regularization: the weight and noise precisions are optimized
// under the evidence framework instead of being supplied by the caller.
type BayesianRidge struct {
	state *model.StateManager

	maxIter      int
	tol          float64
	computeScore bool
	fitIntercept bool

	coef      []float64
	intercept float64
	xMean     []float64
	yMean     float64

	// Posterior state from the last fit
	Alpha_  float64
	Beta_   float64
	Sigma_  *mat.Dense
	Scores_ []float64
	NIter   int
}

// BayesianRidgeOption configures a BayesianRidge estimator.
type BayesianRidgeOption func(*BayesianRidge)

// WithBayesMaxIter sets the step budget. Defaults to 300.
func WithBayesMaxIter(maxIter int) BayesianRidgeOption {
	return func(b *BayesianRidge) { b.maxIter = maxIter }
}

// WithBayesTol sets the weight-convergence threshold. Defaults to 1e-12.
func WithBayesTol(tol float64) BayesianRidgeOption {
	return func(b *BayesianRidge) { b.tol = tol }
}

// WithBayesComputeScore requests the log marginal likelihood of the final
// state, exposed through Scores().
func WithBayesComputeScore(compute bool) BayesianRidgeOption {
	return func(b *BayesianRidge) { b.computeScore = compute }
}

// WithBayesFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithBayesFitIntercept(fit bool) BayesianRidgeOption {
	return func(b *BayesianRidge) { b.fitIntercept = fit }
}

// NewBayesianRidge creates a BayesianRidge estimator.
func NewBayesianRidge(opts ...BayesianRidgeOption) *BayesianRidge {
	b := &BayesianRidge{
		state:        model.NewStateManager(),
		maxIter:      300,
		tol:          1e-12,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Fit estimates the model for X and the column vector y.
func (b *BayesianRidge) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "BayesianRidge.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("BayesianRidge.Fit", X, y)
	if err != nil {
		return err
	}

	Xc, yc, xMean, yMean := centerData(X, yv, b.fitIntercept)

	res, err := BayesianRidgeRegression(Xc, yc, BayesConfig{
		MaxIter:      b.maxIter,
		Tol:          b.tol,
		ComputeScore: b.computeScore,
	})
	if err != nil {
		return err
	}
	if err := errors.CheckNumericalStability("BayesianRidge.Fit", res.Coef, res.Iters); err != nil {
		return err
	}

	b.coef = res.Coef
	b.xMean = xMean
	b.yMean = yMean
	b.intercept = interceptFromMeans(b.coef, xMean, yMean)
	b.Alpha_ = res.Alpha
	b.Beta_ = res.Beta
	b.Sigma_ = res.Sigma
	b.Scores_ = res.Scores
	b.NIter = res.Iters

	b.state.SetDimensions(nFeatures, nSamples)
	b.state.SetFitted()
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (b *BayesianRidge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := b.state.RequireFitted("BayesianRidge", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := b.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("BayesianRidge.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, b.coef, b.intercept), nil
}

// Score returns the coefficient of determination R².
func (b *BayesianRidge) Score(X, y mat.Matrix) (float64, error) {
	if err := b.state.RequireFitted("BayesianRidge", "Score"); err != nil {
		return 0, err
	}
	pred, err := b.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("BayesianRidge.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (b *BayesianRidge) Coef() []float64 {
	return copyFloats(b.coef)
}

// Intercept returns the learned independent term.
func (b *BayesianRidge) Intercept() float64 {
	return b.intercept
}

// Scores returns the log marginal likelihood trace collected during the
// last fit. It holds at most one value, computed at the final state.
func (b *BayesianRidge) Scores() []float64 {
	return copyFloats(b.Scores_)
}

// IsFitted reports whether Fit has completed successfully.
func (b *BayesianRidge) IsFitted() bool {
	return b.state.IsFitted()
}
