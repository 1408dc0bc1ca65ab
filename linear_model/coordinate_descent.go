package linear_model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/pkg/errors"
)

// CDConfig configures a coordinate descent solve of the penalized
// least-squares objective
//
//	0.5·‖y − Xw‖² + AlphaL1·‖w‖₁ + 0.5·AlphaL2·‖w‖².
//
// Penalties are absolute weights: estimator wrappers scale their per-sample
// alpha by the sample count before calling the solver.
type CDConfig struct {
	AlphaL1  float64 // L1 penalty weight; non-negative
	AlphaL2  float64 // L2 penalty weight; zero gives the pure lasso
	MaxIter  int     // maximum number of full feature sweeps
	GapEvery int     // sweeps between duality-gap checks; defaults to 10
	Tol      float64 // gap tolerance, relative to ‖y‖²
}

// CDResult is the outcome of a coordinate descent solve.
type CDResult struct {
	Coef      []float64 // solved coefficient vector
	Gap       float64   // duality gap at the last check
	Eps       float64   // absolute tolerance the gap was compared against
	Iters     int       // full sweeps performed
	Converged bool      // Gap ≤ Eps before MaxIter was exhausted
}

// CoordinateDescent minimizes the penalized least-squares objective by
// cyclic per-feature updates. warm provides initial coefficients and may be
// nil for a zero start; it is copied, never aliased. The solve stops when
// the duality gap drops below Tol·‖y‖² or after MaxIter sweeps. A
// non-converged result is not an error: the caller decides whether to
// surface a ConvergenceWarning by comparing Gap against Eps.
func CoordinateDescent(X *mat.Dense, y []float64, warm []float64, cfg CDConfig) (CDResult, error) {
	nSamples, nFeatures := X.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return CDResult{}, errors.NewModelError("CoordinateDescent", "empty data", errors.ErrEmptyData)
	}
	if len(y) != nSamples {
		return CDResult{}, errors.NewDimensionError("CoordinateDescent", nSamples, len(y), 0)
	}
	if warm != nil && len(warm) != nFeatures {
		return CDResult{}, errors.NewDimensionError("CoordinateDescent", nFeatures, len(warm), 1)
	}
	if cfg.AlphaL1 < 0 {
		return CDResult{}, errors.NewValidationError("AlphaL1", "must be non-negative", cfg.AlphaL1)
	}
	if cfg.AlphaL2 < 0 {
		return CDResult{}, errors.NewValidationError("AlphaL2", "must be non-negative", cfg.AlphaL2)
	}
	if cfg.MaxIter <= 0 {
		return CDResult{}, errors.NewValidationError("MaxIter", "must be positive", cfg.MaxIter)
	}
	if cfg.Tol <= 0 {
		return CDResult{}, errors.NewValidationError("Tol", "must be positive", cfg.Tol)
	}
	gapEvery := cfg.GapEvery
	if gapEvery <= 0 {
		gapEvery = 10
	}

	w := make([]float64, nFeatures)
	if warm != nil {
		copy(w, warm)
	}

	// Column views and squared column norms, fixed for the whole solve.
	cols := make([][]float64, nFeatures)
	colNorms := make([]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		col := make([]float64, nSamples)
		mat.Col(col, j, X)
		cols[j] = col
		colNorms[j] = floats.Dot(col, col)
	}

	// Residual R = y − Xw, maintained incrementally across updates.
	r := make([]float64, nSamples)
	copy(r, y)
	for j := 0; j < nFeatures; j++ {
		if w[j] != 0 {
			floats.AddScaled(r, -w[j], cols[j])
		}
	}

	eps := cfg.Tol * floats.Dot(y, y)

	res := CDResult{Eps: eps}
	for it := 0; it < cfg.MaxIter; it++ {
		for j := 0; j < nFeatures; j++ {
			if colNorms[j] == 0 {
				// An all-zero column carries no signal; its coefficient
				// stays at zero.
				w[j] = 0
				continue
			}

			if w[j] != 0 {
				floats.AddScaled(r, w[j], cols[j])
			}

			rho := floats.Dot(cols[j], r)
			w[j] = softThreshold(rho, cfg.AlphaL1) / (colNorms[j] + cfg.AlphaL2)

			if w[j] != 0 {
				floats.AddScaled(r, -w[j], cols[j])
			}
		}
		res.Iters = it + 1

		if it%gapEvery == 0 || it == cfg.MaxIter-1 {
			res.Gap = dualityGap(cols, y, r, w, cfg.AlphaL1, cfg.AlphaL2)
			if res.Gap < eps {
				res.Converged = true
				break
			}
		}
	}

	res.Coef = w
	return res, nil
}

// softThreshold is the proximal operator of the L1 penalty.
func softThreshold(z, threshold float64) float64 {
	if z > threshold {
		return z - threshold
	}
	if z < -threshold {
		return z + threshold
	}
	return 0
}

// dualityGap computes the primal-dual gap of the elastic-net objective at
// the current iterate. The residual is rescaled by alphaL1/‖XᵀR − αL2·w‖∞
// when needed to obtain a feasible dual point, so the gap is a valid
// certificate: it is non-negative and zero exactly at the optimum.
func dualityGap(cols [][]float64, y, r, w []float64, alphaL1, alphaL2 float64) float64 {
	var dualNormXtA float64
	for j := range cols {
		xta := floats.Dot(cols[j], r) - alphaL2*w[j]
		if a := math.Abs(xta); a > dualNormXtA {
			dualNormXtA = a
		}
	}

	rNorm2 := floats.Dot(r, r)
	wNorm2 := floats.Dot(w, w)

	var gap, cst float64
	if dualNormXtA > alphaL1 {
		cst = alphaL1 / dualNormXtA
		gap = 0.5 * (rNorm2 + cst*cst*rNorm2)
	} else {
		cst = 1.0
		gap = rNorm2
	}

	var l1 float64
	for _, v := range w {
		l1 += math.Abs(v)
	}

	gap += alphaL1*l1 - cst*floats.Dot(r, y) + 0.5*alphaL2*(1+cst*cst)*wNorm2
	return gap
}
