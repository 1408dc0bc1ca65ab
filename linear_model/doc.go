// Package linear_model implements linear regression estimators sharing a
// common Fit/Predict contract: ordinary least squares, ridge, the
// coordinate-descent lasso and elastic net, Bayesian ridge and ARD
// regression, regularization paths and cross-validated path selection.
//
// Estimators are configured with functional options and hold their own
// learned state (coefficients, intercept, centering offsets). The
// numerical work is done by free solver functions (CoordinateDescent,
// BayesianRidgeRegression, ARDRegressionSolver) that take explicit config
// structs and return explicit result structs, so they can be used directly
// when the estimator wrappers are not needed.
package linear_model
