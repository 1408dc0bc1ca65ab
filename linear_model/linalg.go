package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/glm/pkg/errors"
)

const machEps = 2.220446049250313e-16

// pinv computes the Moore-Penrose pseudo-inverse of a via thin SVD.
// Singular values below max(r, c)·eps·σmax are treated as zero, so
// singular inputs degrade to the minimum-norm solution instead of failing.
func pinv(a mat.Matrix) (*mat.Dense, error) {
	r, c := a.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.NewModelError("pinv", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	dim := r
	if c > dim {
		dim = c
	}
	cutoff := 0.0
	if len(s) > 0 {
		cutoff = float64(dim) * machEps * s[0]
	}

	// V · diag(1/σ) · Uᵀ, dropping singular values below the cutoff.
	k := len(s)
	vs := mat.NewDense(c, k, nil)
	for i := 0; i < c; i++ {
		for j := 0; j < k; j++ {
			if s[j] > cutoff {
				vs.Set(i, j, v.At(i, j)/s[j])
			}
		}
	}

	out := mat.NewDense(c, r, nil)
	out.Mul(vs, u.T())
	return out, nil
}

// gramMatrix computes XᵀX as a symmetric matrix.
func gramMatrix(X *mat.Dense) *mat.SymDense {
	_, p := X.Dims()
	var g mat.Dense
	g.Mul(X.T(), X)

	s := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			s.SetSym(i, j, g.At(i, j))
		}
	}
	return s
}

// symEigenvalues returns the eigenvalues of a symmetric matrix.
func symEigenvalues(g *mat.SymDense) ([]float64, error) {
	var eig mat.EigenSym
	if !eig.Factorize(g, false) {
		return nil, errors.New("eigendecomposition failed")
	}
	return eig.Values(nil), nil
}

// logDet returns log|det(a)| for a positive-definite matrix.
func logDet(a mat.Matrix) float64 {
	ld, sign := mat.LogDet(a)
	if sign < 0 {
		// Rounded-off negative determinants of near-singular PSD matrices
		// would otherwise poison the likelihood with NaN.
		return math.Inf(-1)
	}
	return ld
}

// matVec computes a·x for a dense matrix and a slice.
func matVec(a mat.Matrix, x []float64) []float64 {
	r, c := a.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * x[j]
		}
		out[i] = sum
	}
	return out
}

// xty computes Xᵀy.
func xty(X *mat.Dense, y []float64) []float64 {
	n, p := X.Dims()
	out := make([]float64, p)
	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += X.At(i, j) * y[i]
		}
		out[j] = sum
	}
	return out
}
