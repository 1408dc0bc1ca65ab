package linear_model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/pkg/errors"
)

// ARDConfig configures the automatic relevance determination solver.
type ARDConfig struct {
	MaxIter int     // step budget; defaults to 300
	Tol     float64 // stop when Σ|Δw| drops below this; defaults to 1e-12
	// AlphaThreshold prunes a feature once its weight precision exceeds
	// it, keeping the alternation from diverging. Defaults to 1e16.
	AlphaThreshold float64
	ComputeScore   bool
}

// ARDResult is the outcome of an ARD solve.
type ARDResult struct {
	Coef  []float64 // posterior mean of the weights
	Alpha []float64 // per-feature precision of the weight prior
	Beta  float64   // precision of the noise
	Sigma *mat.Dense
	// Keep marks the features still active when the solve stopped. The
	// active set only ever shrinks. Coefficients of pruned features keep
	// their last value rather than being reset to zero.
	Keep []bool
	// Scores holds the log marginal likelihood: a single trailing value
	// computed at the final state when ComputeScore is set.
	Scores    []float64
	Iters     int
	Converged bool
}

// withDefaults fills zero fields with the solver defaults.
func (cfg ARDConfig) withDefaults() ARDConfig {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 300
	}
	if cfg.Tol <= 0 {
		cfg.Tol = 1e-12
	}
	if cfg.AlphaThreshold <= 0 {
		cfg.AlphaThreshold = 1e16
	}
	return cfg
}

// ARDRegressionSolver runs the same evidence alternation as
// BayesianRidgeRegression but with one weight precision per feature.
// Features whose precision crosses AlphaThreshold are pruned from the
// Gram/covariance computation and never reactivated. See Bishop,
// Pattern Recognition and Machine Learning, chapter 7.2.
func ARDRegressionSolver(X *mat.Dense, y []float64, cfg ARDConfig) (ARDResult, error) {
	cfg = cfg.withDefaults()

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return ARDResult{}, errors.NewModelError("ARDRegressionSolver", "empty data", errors.ErrEmptyData)
	}
	if len(y) != nSamples {
		return ARDResult{}, errors.NewDimensionError("ARDRegressionSolver", nSamples, len(y), 0)
	}

	variance := populationVariance(y)
	if variance == 0 {
		return ARDResult{}, errors.NewValueError("ARDRegressionSolver",
			"target has zero variance, cannot initialize the noise precision")
	}

	beta := 1.0 / variance
	alpha := diagConst(1.0, nFeatures)
	keep := make([]bool, nFeatures)
	for j := range keep {
		keep[j] = true
	}

	active := activeIndices(keep)
	Xa := selectColumns(X, active)
	sigma, wa, err := bayesPosterior(gramMatrix(Xa), xty(Xa, y), selectValues(alpha, active), beta)
	if err != nil {
		return ARDResult{}, err
	}
	w := make([]float64, nFeatures)
	scatterValues(w, wa, active)
	oldW := copyFloats(w)

	res := ARDResult{}
	for step := 0; step < cfg.MaxIter; step++ {
		// Per-feature effective degrees of freedom over the active subset.
		gamma := make([]float64, len(active))
		for i, j := range active {
			gamma[i] = 1 - alpha[j]*sigma.At(i, i)
		}
		for i, j := range active {
			alpha[j] = gamma[i] / (w[j] * w[j])
		}

		residual := residualSumSquares(Xa, selectValues(w, active), y)
		beta = (float64(nSamples) - floats.Sum(gamma)) / residual

		// Prune diverging precisions. Pruned coefficients are left at
		// their last value, not reset to zero.
		for j := range keep {
			keep[j] = alpha[j] < cfg.AlphaThreshold
		}
		active = activeIndices(keep)
		if len(active) == 0 {
			res.Iters = step + 1
			res.Converged = true
			break
		}

		Xa = selectColumns(X, active)
		sigma, wa, err = bayesPosterior(gramMatrix(Xa), xty(Xa, y), selectValues(alpha, active), beta)
		if err != nil {
			return ARDResult{}, err
		}
		scatterValues(w, wa, active)
		res.Iters = step + 1

		if sumAbsDiff(w, oldW) < cfg.Tol {
			res.Converged = true
			break
		}
		oldW = copyFloats(w)
	}

	if cfg.ComputeScore {
		ll, err := ardLogLikelihood(X, y, alpha, beta)
		if err != nil {
			return ARDResult{}, err
		}
		res.Scores = append(res.Scores, ll)
	}

	res.Coef = w
	res.Alpha = alpha
	res.Beta = beta
	res.Sigma = sigma
	res.Keep = keep
	return res, nil
}

// ardLogLikelihood evaluates the marginal likelihood of the full model,
// log p(y | alpha, beta), at the final precisions.
func ardLogLikelihood(X *mat.Dense, y, alpha []float64, beta float64) (float64, error) {
	nSamples, nFeatures := X.Dims()

	// C = I/beta + X·diag(1/alpha)·Xᵀ
	xa := mat.NewDense(nSamples, nFeatures, nil)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			xa.Set(i, j, X.At(i, j)/alpha[j])
		}
	}
	c := mat.NewDense(nSamples, nSamples, nil)
	c.Mul(xa, X.T())
	for i := 0; i < nSamples; i++ {
		c.Set(i, i, c.At(i, i)+1.0/beta)
	}

	cInv, err := pinv(c)
	if err != nil {
		return 0, err
	}
	quad := floats.Dot(y, matVec(cInv, y))

	ll := float64(nSamples)*math.Log(2*math.Pi) + logDet(c) + quad
	return -0.5 * ll, nil
}

// activeIndices lists the indices where keep is true.
func activeIndices(keep []bool) []int {
	var idx []int
	for j, k := range keep {
		if k {
			idx = append(idx, j)
		}
	}
	return idx
}

// selectColumns builds the submatrix of X with the given columns.
func selectColumns(X *mat.Dense, cols []int) *mat.Dense {
	n, _ := X.Dims()
	out := mat.NewDense(n, len(cols), nil)
	for i := 0; i < n; i++ {
		for k, j := range cols {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out
}

// selectValues gathers v at the given indices.
func selectValues(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, j := range idx {
		out[k] = v[j]
	}
	return out
}

// scatterValues writes vals back into dst at the given indices.
func scatterValues(dst, vals []float64, idx []int) {
	for k, j := range idx {
		dst[j] = vals[k]
	}
}

// ARDRegression estimates a linear model with automatic relevance
// determination: each feature carries its own weight precision, and
// features whose precision diverges are pruned from the model.
type ARDRegression struct {
	state *model.StateManager

	maxIter        int
	tol            float64
	alphaThreshold float64
	computeScore   bool
	fitIntercept   bool

	coef      []float64
	intercept float64
	xMean     []float64
	yMean     float64

	// Posterior state from the last fit
	Alpha_  []float64
	Beta_   float64
	Sigma_  *mat.Dense
	Keep_   []bool
	Scores_ []float64
	NIter   int
}

// ARDOption configures an ARDRegression estimator.
type ARDOption func(*ARDRegression)

// WithARDMaxIter sets the step budget. Defaults to 300.
func WithARDMaxIter(maxIter int) ARDOption {
	return func(a *ARDRegression) { a.maxIter = maxIter }
}

// WithARDTol sets the weight-convergence threshold. Defaults to 1e-12.
func WithARDTol(tol float64) ARDOption {
	return func(a *ARDRegression) { a.tol = tol }
}

// WithARDAlphaThreshold sets the precision above which a feature is
// pruned. Defaults to 1e16.
func WithARDAlphaThreshold(threshold float64) ARDOption {
	return func(a *ARDRegression) { a.alphaThreshold = threshold }
}

// WithARDComputeScore requests the log marginal likelihood of the final
// state, exposed through Scores().
func WithARDComputeScore(compute bool) ARDOption {
	return func(a *ARDRegression) { a.computeScore = compute }
}

// WithARDFitIntercept controls centering. When disabled the data is
// expected to be centered already and the intercept is zero.
func WithARDFitIntercept(fit bool) ARDOption {
	return func(a *ARDRegression) { a.fitIntercept = fit }
}

// NewARDRegression creates an ARDRegression estimator.
func NewARDRegression(opts ...ARDOption) *ARDRegression {
	a := &ARDRegression{
		state:          model.NewStateManager(),
		maxIter:        300,
		tol:            1e-12,
		alphaThreshold: 1e16,
		fitIntercept:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fit estimates the model for X and the column vector y.
func (a *ARDRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "ARDRegression.Fit")

	nSamples, nFeatures, yv, err := validateRegressionInputs("ARDRegression.Fit", X, y)
	if err != nil {
		return err
	}

	Xc, yc, xMean, yMean := centerData(X, yv, a.fitIntercept)

	res, err := ARDRegressionSolver(Xc, yc, ARDConfig{
		MaxIter:        a.maxIter,
		Tol:            a.tol,
		AlphaThreshold: a.alphaThreshold,
		ComputeScore:   a.computeScore,
	})
	if err != nil {
		return err
	}
	if err := errors.CheckNumericalStability("ARDRegression.Fit", res.Coef, res.Iters); err != nil {
		return err
	}

	a.coef = res.Coef
	a.xMean = xMean
	a.yMean = yMean
	a.intercept = interceptFromMeans(a.coef, xMean, yMean)
	a.Alpha_ = res.Alpha
	a.Beta_ = res.Beta
	a.Sigma_ = res.Sigma
	a.Keep_ = res.Keep
	a.Scores_ = res.Scores
	a.NIter = res.Iters

	a.state.SetDimensions(nFeatures, nSamples)
	a.state.SetFitted()
	return nil
}

// Predict returns X·coef + intercept as a column vector.
func (a *ARDRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := a.state.RequireFitted("ARDRegression", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := a.state.GetDimensions()
	if _, c := X.Dims(); c != nFeatures {
		return nil, errors.NewDimensionError("ARDRegression.Predict", nFeatures, c, 1)
	}
	return predictLinear(X, a.coef, a.intercept), nil
}

// Score returns the coefficient of determination R².
func (a *ARDRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := a.state.RequireFitted("ARDRegression", "Score"); err != nil {
		return 0, err
	}
	pred, err := a.Predict(X)
	if err != nil {
		return 0, err
	}
	return scoreR2("ARDRegression.Score", pred, y)
}

// Coef returns a copy of the learned coefficient vector.
func (a *ARDRegression) Coef() []float64 {
	return copyFloats(a.coef)
}

// Intercept returns the learned independent term.
func (a *ARDRegression) Intercept() float64 {
	return a.intercept
}

// Scores returns the log marginal likelihood trace collected during the
// last fit. It holds at most one value, computed at the final state.
func (a *ARDRegression) Scores() []float64 {
	return copyFloats(a.Scores_)
}

// IsFitted reports whether Fit has completed successfully.
func (a *ARDRegression) IsFitted() bool {
	return a.state.IsFitted()
}
