package linear_model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/pkg/errors"
	"github.com/gomlab/glm/pkg/log"
)

// PathConfig configures a regularization path.
type PathConfig struct {
	// Eps is the length of the path: alphaMin/alphaMax. Defaults to 1e-3.
	Eps float64
	// NAlphas is the number of grid points. Defaults to 100. When Alphas
	// is supplied and NAlphas is positive, the two must agree in length.
	NAlphas int
	// Alphas is an optional explicit penalty list. It is copied and
	// sorted in descending order before use; the caller's order is not
	// trusted.
	Alphas []float64
	// Per-fit settings forwarded to every model on the path.
	Tol          float64 // defaults to 1e-4
	MaxIter      int     // defaults to 1000
	FitIntercept bool
}

// NewPathConfig returns a PathConfig with the default settings.
func NewPathConfig() PathConfig {
	return PathConfig{
		Eps:          1e-3,
		NAlphas:      100,
		Tol:          1e-4,
		MaxIter:      1000,
		FitIntercept: true,
	}
}

// withDefaults fills zero numeric fields with the path defaults.
func (cfg PathConfig) withDefaults() PathConfig {
	if cfg.Eps <= 0 {
		cfg.Eps = 1e-3
	}
	if cfg.NAlphas <= 0 {
		cfg.NAlphas = 100
	}
	if cfg.Tol <= 0 {
		cfg.Tol = 1e-4
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1000
	}
	return cfg
}

// resolveAlphas turns a PathConfig into the descending penalty grid for
// (X, y). l1Ratio is 1 for the lasso and rho for the elastic net.
func resolveAlphas(op string, X mat.Matrix, y []float64, l1Ratio float64, cfg PathConfig) ([]float64, error) {
	if cfg.Alphas != nil {
		if cfg.NAlphas > 0 && len(cfg.Alphas) != cfg.NAlphas {
			return nil, errors.NewValidationError("Alphas",
				"explicit penalty list length must match NAlphas", len(cfg.Alphas))
		}
		if len(cfg.Alphas) == 0 {
			return nil, errors.NewValidationError("Alphas", "explicit penalty list is empty", 0)
		}
		alphas := copyFloats(cfg.Alphas)
		sort.Sort(sort.Reverse(sort.Float64Slice(alphas)))
		return alphas, nil
	}

	c := cfg.withDefaults()
	nSamples, nFeatures := X.Dims()

	// Smallest penalty for which the solution is exactly all-zero:
	// the largest absolute feature/target correlation.
	var alphaMax float64
	for j := 0; j < nFeatures; j++ {
		var dot float64
		for i := 0; i < nSamples; i++ {
			dot += X.At(i, j) * y[i]
		}
		if a := math.Abs(dot); a > alphaMax {
			alphaMax = a
		}
	}
	alphaMax /= float64(nSamples) * l1Ratio

	if alphaMax == 0 {
		return nil, errors.NewValueError(op, "all features are uncorrelated with the target, cannot build an alpha grid")
	}

	return logSpacedGrid(alphaMax, c.Eps*alphaMax, c.NAlphas), nil
}

// logSpacedGrid builds a geometric sequence of n values from hi down to lo.
func logSpacedGrid(hi, lo float64, n int) []float64 {
	grid := make([]float64, n)
	if n == 1 {
		grid[0] = hi
		return grid
	}
	logHi := math.Log(hi)
	step := (math.Log(lo) - logHi) / float64(n-1)
	for k := 0; k < n; k++ {
		grid[k] = math.Exp(logHi + float64(k)*step)
	}
	// The head of the grid is exact, not exp(log(hi)).
	grid[0] = hi
	return grid
}

// LassoPath fits a Lasso model for every penalty on a descending grid.
// Each fit is warm-started from an independent copy of the previous
// solution, which keeps the sweep count low for nearby penalties and is
// part of the path semantics: the k-th model is the continuation of the
// (k−1)-th.
func LassoPath(X, y mat.Matrix, cfg PathConfig) ([]*Lasso, error) {
	_, _, yv, err := validateRegressionInputs("LassoPath", X, y)
	if err != nil {
		return nil, err
	}

	alphas, err := resolveAlphas("LassoPath", X, yv, 1.0, cfg)
	if err != nil {
		return nil, err
	}
	c := cfg.withDefaults()

	logger := log.Logger()
	models := make([]*Lasso, 0, len(alphas))
	var coef []float64
	for _, alpha := range alphas {
		m := NewLasso(
			WithLassoAlpha(alpha),
			WithLassoTol(c.Tol),
			WithLassoMaxIter(c.MaxIter),
			WithLassoFitIntercept(c.FitIntercept),
			WithLassoWarmStart(coef),
		)
		if err := m.Fit(X, y); err != nil {
			return nil, errors.Wrapf(err, "LassoPath: alpha=%g", alpha)
		}
		coef = m.Coef()
		models = append(models, m)
		logger.Debug().Float64("alpha", alpha).Int("n_iter", m.NIter).Msg("lasso path fit")
	}
	return models, nil
}

// ENetPath fits an ElasticNet model with mixing fraction rho for every
// penalty on a descending grid, warm-starting each fit from the previous
// solution.
func ENetPath(X, y mat.Matrix, rho float64, cfg PathConfig) ([]*ElasticNet, error) {
	_, _, yv, err := validateRegressionInputs("ENetPath", X, y)
	if err != nil {
		return nil, err
	}
	if rho <= 0 || rho > 1 {
		return nil, errors.NewValidationError("rho", "must be in (0, 1]", rho)
	}

	alphas, err := resolveAlphas("ENetPath", X, yv, rho, cfg)
	if err != nil {
		return nil, err
	}
	c := cfg.withDefaults()

	logger := log.Logger()
	models := make([]*ElasticNet, 0, len(alphas))
	var coef []float64
	for _, alpha := range alphas {
		m := NewElasticNet(
			WithENetAlpha(alpha),
			WithENetRho(rho),
			WithENetTol(c.Tol),
			WithENetMaxIter(c.MaxIter),
			WithENetFitIntercept(c.FitIntercept),
			WithENetWarmStart(coef),
		)
		if err := m.Fit(X, y); err != nil {
			return nil, errors.Wrapf(err, "ENetPath: alpha=%g", alpha)
		}
		coef = m.Coef()
		models = append(models, m)
		logger.Debug().Float64("alpha", alpha).Int("n_iter", m.NIter).Msg("elastic net path fit")
	}
	return models, nil
}
