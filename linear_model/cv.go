package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/core/model"
	"github.com/gomlab/glm/core/parallel"
	"github.com/gomlab/glm/metrics"
	"github.com/gomlab/glm/pkg/errors"
	"github.com/gomlab/glm/pkg/log"
)

// OptimizedLasso fits a lasso path on the full data, re-fits the same
// path on every fold's training rows, and returns the full-data model at
// the penalty with the smallest accumulated held-out mean squared error.
// When folds is nil, a 5-fold split without shuffling is used.
func OptimizedLasso(X, y mat.Matrix, folds []CVFold, cfg PathConfig) (*Lasso, error) {
	models, err := LassoPath(X, y, cfg)
	if err != nil {
		return nil, err
	}

	alphas := make([]float64, len(models))
	for i, m := range models {
		alphas[i] = m.Alpha()
	}

	refit := func(trainX, trainY mat.Matrix, foldCfg PathConfig) ([]model.Predictor, error) {
		ms, err := LassoPath(trainX, trainY, foldCfg)
		if err != nil {
			return nil, err
		}
		preds := make([]model.Predictor, len(ms))
		for i, m := range ms {
			preds[i] = m
		}
		return preds, nil
	}

	best, err := crossValidatePath("OptimizedLasso", X, y, folds, alphas, cfg, refit)
	if err != nil {
		return nil, err
	}
	return models[best], nil
}

// OptimizedENet is OptimizedLasso for the elastic net with mixing
// fraction rho.
func OptimizedENet(X, y mat.Matrix, rho float64, folds []CVFold, cfg PathConfig) (*ElasticNet, error) {
	models, err := ENetPath(X, y, rho, cfg)
	if err != nil {
		return nil, err
	}

	alphas := make([]float64, len(models))
	for i, m := range models {
		alphas[i] = m.Alpha()
	}

	refit := func(trainX, trainY mat.Matrix, foldCfg PathConfig) ([]model.Predictor, error) {
		ms, err := ENetPath(trainX, trainY, rho, foldCfg)
		if err != nil {
			return nil, err
		}
		preds := make([]model.Predictor, len(ms))
		for i, m := range ms {
			preds[i] = m
		}
		return preds, nil
	}

	best, err := crossValidatePath("OptimizedENet", X, y, folds, alphas, cfg, refit)
	if err != nil {
		return nil, err
	}
	return models[best], nil
}

// crossValidatePath accumulates per-penalty held-out mean squared error
// across folds and returns the index of the minimum. The fold fits use the
// exact alpha grid of the full fit, never a re-derived one, so per-index
// errors are comparable across folds. Ties resolve to the first index,
// which is the largest penalty on the descending grid.
//
// Folds are mutually independent, so they are fitted in parallel; the
// per-fold error vectors are only combined after every worker finishes.
func crossValidatePath(op string, X, y mat.Matrix, folds []CVFold, alphas []float64, cfg PathConfig,
	refit func(trainX, trainY mat.Matrix, foldCfg PathConfig) ([]model.Predictor, error)) (int, error) {

	nSamples, _ := X.Dims()
	if folds == nil {
		folds = NewKFold(5, false, 0).Split(nSamples)
	}
	if err := validateFolds(op, folds, nSamples); err != nil {
		return 0, err
	}

	// Pin the grid: fold fits must score the same penalties as the full
	// fit, index by index.
	foldCfg := cfg
	foldCfg.Alphas = alphas
	foldCfg.NAlphas = len(alphas)

	foldErrs := make([][]float64, len(folds))
	errs := make([]error, len(folds))

	parallel.Parallelize(len(folds), func(start, end int) {
		for f := start; f < end; f++ {
			trainX, trainY := extractRows(X, y, folds[f].TrainIndices)
			testX, testY := extractRows(X, y, folds[f].TestIndices)

			foldModels, err := refit(trainX, trainY, foldCfg)
			if err != nil {
				errs[f] = errors.Wrapf(err, "%s: fold %d", op, f)
				continue
			}
			if len(foldModels) != len(alphas) {
				errs[f] = errors.NewDimensionError(op, len(alphas), len(foldModels), 0)
				continue
			}

			mse := make([]float64, len(alphas))
			ok := true
			for i, m := range foldModels {
				pred, err := m.Predict(testX)
				if err != nil {
					errs[f] = errors.Wrapf(err, "%s: fold %d", op, f)
					ok = false
					break
				}
				v, err := metrics.MSEMatrix(testY, pred)
				if err != nil {
					errs[f] = errors.Wrapf(err, "%s: fold %d", op, f)
					ok = false
					break
				}
				mse[i] = v
			}
			if ok {
				foldErrs[f] = mse
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	mseAlphas := make([]float64, len(alphas))
	for _, mse := range foldErrs {
		for i, v := range mse {
			mseAlphas[i] += v
		}
	}

	// Stable argmin: strict less keeps the first (largest-penalty) index
	// on ties.
	best := 0
	for i := 1; i < len(mseAlphas); i++ {
		if mseAlphas[i] < mseAlphas[best] {
			best = i
		}
	}

	l := log.Logger()
	l.Debug().
		Int("n_folds", len(folds)).
		Int("best_index", best).
		Float64("best_alpha", alphas[best]).
		Msg("cross-validated path selection")
	return best, nil
}

// extractRows builds the submatrices of X and y with the given rows, in
// the order given.
func extractRows(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	_, xCols := X.Dims()
	outX := mat.NewDense(len(indices), xCols, nil)
	outY := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			outX.Set(i, j, X.At(idx, j))
		}
		outY.Set(i, 0, y.At(idx, 0))
	}
	return outX, outY
}

// LassoCV is a Lasso estimator whose penalty is selected by k-fold
// cross-validation along a regularization path.
type LassoCV struct {
	cfg   PathConfig
	folds []CVFold

	best *Lasso
}

// LassoCVOption configures a LassoCV estimator.
type LassoCVOption func(*LassoCV)

// WithLassoCVPathConfig replaces the path settings.
func WithLassoCVPathConfig(cfg PathConfig) LassoCVOption {
	return func(cv *LassoCV) { cv.cfg = cfg }
}

// WithLassoCVFolds supplies an explicit fold partition instead of the
// default 5-fold split.
func WithLassoCVFolds(folds []CVFold) LassoCVOption {
	return func(cv *LassoCV) { cv.folds = folds }
}

// NewLassoCV creates a LassoCV estimator with the default path settings.
func NewLassoCV(opts ...LassoCVOption) *LassoCV {
	cv := &LassoCV{cfg: NewPathConfig()}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

// Fit selects and fits the best lasso model along the path.
func (cv *LassoCV) Fit(X, y mat.Matrix) error {
	best, err := OptimizedLasso(X, y, cv.folds, cv.cfg)
	if err != nil {
		return err
	}
	cv.best = best
	return nil
}

// Predict delegates to the selected model.
func (cv *LassoCV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if cv.best == nil {
		return nil, errors.NewNotFittedError("LassoCV", "Predict")
	}
	return cv.best.Predict(X)
}

// Score delegates to the selected model.
func (cv *LassoCV) Score(X, y mat.Matrix) (float64, error) {
	if cv.best == nil {
		return 0, errors.NewNotFittedError("LassoCV", "Score")
	}
	return cv.best.Score(X, y)
}

// Alpha returns the selected penalty.
func (cv *LassoCV) Alpha() float64 {
	if cv.best == nil {
		return 0
	}
	return cv.best.Alpha()
}

// Coef returns a copy of the selected model's coefficients.
func (cv *LassoCV) Coef() []float64 {
	if cv.best == nil {
		return nil
	}
	return cv.best.Coef()
}

// Intercept returns the selected model's independent term.
func (cv *LassoCV) Intercept() float64 {
	if cv.best == nil {
		return 0
	}
	return cv.best.Intercept()
}

// ElasticNetCV is an ElasticNet estimator whose penalty is selected by
// k-fold cross-validation along a regularization path.
type ElasticNetCV struct {
	rho   float64
	cfg   PathConfig
	folds []CVFold

	best *ElasticNet
}

// ElasticNetCVOption configures an ElasticNetCV estimator.
type ElasticNetCVOption func(*ElasticNetCV)

// WithENetCVRho sets the L1 mixing fraction. Defaults to 0.5.
func WithENetCVRho(rho float64) ElasticNetCVOption {
	return func(cv *ElasticNetCV) { cv.rho = rho }
}

// WithENetCVPathConfig replaces the path settings.
func WithENetCVPathConfig(cfg PathConfig) ElasticNetCVOption {
	return func(cv *ElasticNetCV) { cv.cfg = cfg }
}

// WithENetCVFolds supplies an explicit fold partition instead of the
// default 5-fold split.
func WithENetCVFolds(folds []CVFold) ElasticNetCVOption {
	return func(cv *ElasticNetCV) { cv.folds = folds }
}

// NewElasticNetCV creates an ElasticNetCV estimator with the default path
// settings.
func NewElasticNetCV(opts ...ElasticNetCVOption) *ElasticNetCV {
	cv := &ElasticNetCV{rho: 0.5, cfg: NewPathConfig()}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

// Fit selects and fits the best elastic-net model along the path.
func (cv *ElasticNetCV) Fit(X, y mat.Matrix) error {
	best, err := OptimizedENet(X, y, cv.rho, cv.folds, cv.cfg)
	if err != nil {
		return err
	}
	cv.best = best
	return nil
}

// Predict delegates to the selected model.
func (cv *ElasticNetCV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if cv.best == nil {
		return nil, errors.NewNotFittedError("ElasticNetCV", "Predict")
	}
	return cv.best.Predict(X)
}

// Score delegates to the selected model.
func (cv *ElasticNetCV) Score(X, y mat.Matrix) (float64, error) {
	if cv.best == nil {
		return 0, errors.NewNotFittedError("ElasticNetCV", "Score")
	}
	return cv.best.Score(X, y)
}

// Alpha returns the selected penalty.
func (cv *ElasticNetCV) Alpha() float64 {
	if cv.best == nil {
		return 0
	}
	return cv.best.Alpha()
}

// Coef returns a copy of the selected model's coefficients.
func (cv *ElasticNetCV) Coef() []float64 {
	if cv.best == nil {
		return nil
	}
	return cv.best.Coef()
}

// Intercept returns the selected model's independent term.
func (cv *ElasticNetCV) Intercept() float64 {
	if cv.best == nil {
		return 0
	}
	return cv.best.Intercept()
}
