package model

import "gonum.org/v1/gonum/mat"

// Fitter is implemented by estimators that learn from data.
type Fitter interface {
	// Fit trains the estimator. y must be a column vector with one row
	// per sample of X.
	Fit(X, y mat.Matrix) error
}

// Predictor is implemented by fitted estimators.
type Predictor interface {
	// Predict returns a column vector of predictions, one per row of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines fitting, prediction and scoring.
type Regressor interface {
	Fitter
	Predictor
	// Score returns the coefficient of determination R².
	Score(X, y mat.Matrix) (float64, error)
}

// LinearModel is implemented by fitted linear estimators exposing their
// solved parameters.
type LinearModel interface {
	// Coef returns the learned coefficient vector, one entry per feature.
	Coef() []float64
	// Intercept returns the learned independent term.
	Intercept() float64
}
