package linear_model

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/gomlab/glm/metrics"
	"github.com/gomlab/glm/pkg/errors"
)

// validateRegressionInputs checks that X is a non-empty nSamples×nFeatures
// matrix and y a matching column vector, and extracts y as a slice.
func validateRegressionInputs(op string, X, y mat.Matrix) (nSamples, nFeatures int, yv []float64, err error) {
	nSamples, nFeatures = X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return 0, 0, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yCols != 1 {
		return 0, 0, nil, errors.NewValueError(op, "y must be a column vector")
	}
	if yRows != nSamples {
		return 0, 0, nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}

	yv = make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		yv[i] = y.At(i, 0)
	}
	return nSamples, nFeatures, yv, nil
}

// centerData returns working copies of X and y, centered per column when
// fitIntercept is set, together with the offsets needed to reconstruct the
// intercept. The caller's data is never modified.
func centerData(X mat.Matrix, y []float64, fitIntercept bool) (Xc *mat.Dense, yc []float64, xMean []float64, yMean float64) {
	nSamples, nFeatures := X.Dims()

	Xc = mat.NewDense(nSamples, nFeatures, nil)
	Xc.Copy(X)
	yc = make([]float64, nSamples)
	copy(yc, y)
	xMean = make([]float64, nFeatures)

	if !fitIntercept {
		return Xc, yc, xMean, 0
	}

	for j := 0; j < nFeatures; j++ {
		var m float64
		for i := 0; i < nSamples; i++ {
			m += Xc.At(i, j)
		}
		m /= float64(nSamples)
		xMean[j] = m
		for i := 0; i < nSamples; i++ {
			Xc.Set(i, j, Xc.At(i, j)-m)
		}
	}

	for _, v := range yc {
		yMean += v
	}
	yMean /= float64(nSamples)
	for i := range yc {
		yc[i] -= yMean
	}
	return Xc, yc, xMean, yMean
}

// interceptFromMeans reconstructs the intercept of a model fitted on
// centered data.
func interceptFromMeans(coef, xMean []float64, yMean float64) float64 {
	dot := 0.0
	for j := range coef {
		dot += xMean[j] * coef[j]
	}
	return yMean - dot
}

// predictLinear evaluates X·coef + intercept as an nSamples×1 matrix.
func predictLinear(X mat.Matrix, coef []float64, intercept float64) *mat.Dense {
	nSamples, nFeatures := X.Dims()
	out := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		pred := intercept
		for j := 0; j < nFeatures; j++ {
			pred += X.At(i, j) * coef[j]
		}
		out.Set(i, 0, pred)
	}
	return out
}

// scoreR2 computes R² of a fitted predictor on (X, y).
func scoreR2(op string, pred mat.Matrix, y mat.Matrix) (float64, error) {
	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, pred.At(i, 0))
	}
	s, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	return s, nil
}

// populationVariance returns the biased (1/n) variance of y.
func populationVariance(y []float64) float64 {
	return stat.PopVariance(y, nil)
}

// copyFloats returns an independent copy of v, or nil for nil input.
func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
