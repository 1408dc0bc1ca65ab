// Package glm provides generalized linear models for Go, built on gonum.
//
// The library implements a family of linear regression estimators sharing a
// common Fit/Predict contract:
//
//   - LinearRegression, Ridge: closed-form least-squares solvers
//   - Lasso, ElasticNet: L1 / L1+L2 penalized regression solved by
//     coordinate descent with a duality-gap convergence certificate
//   - BayesianRidge, ARDRegression: iterative evidence maximization with
//     scalar or per-feature weight precisions
//   - LassoPath, ENetPath: warm-started model sequences over a geometric
//     grid of regularization strengths
//   - OptimizedLasso, OptimizedENet (and the LassoCV / ElasticNetCV
//     wrappers): k-fold cross-validated selection along a path
//
// All estimators live in the linear_model package and operate on
// gonum.org/v1/gonum/mat matrices. Non-fatal diagnostics such as
// convergence warnings are routed through pkg/errors and logged with
// zerolog via pkg/log.
//
// # Quick start
//
//	X := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})
//	y := mat.NewDense(3, 1, []float64{0, 1, 2})
//
//	clf := linear_model.NewLasso(linear_model.WithLassoAlpha(0.1))
//	if err := clf.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, _ := clf.Predict(X)
package glm
