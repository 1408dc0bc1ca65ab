package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSESlice(t *testing.T) {
	got, err := MSESlice([]float64{1, 2, 3}, []float64{2, 2, 2})
	if err != nil {
		t.Fatalf("MSESlice() error = %v", err)
	}
	want := 2.0 / 3.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MSESlice() = %v, want %v", got, want)
	}

	if _, err := MSESlice([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected dimension error")
	}
	if _, err := MSESlice(nil, nil); err == nil {
		t.Error("expected empty error")
	}
}

func TestMSEMatrix(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{1, 2, 3})
	yPred := mat.NewDense(3, 1, []float64{1, 2, 4})
	got, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSEMatrix() error = %v", err)
	}
	want := 1.0 / 3.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MSEMatrix() = %v, want %v", got, want)
	}

	wide := mat.NewDense(3, 2, nil)
	if _, err := MSEMatrix(wide, wide); err == nil {
		t.Error("expected error for non-column input")
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 1, 3, 6})
	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("MAE() = %v, want 1.0", got)
	}
}

func TestR2Score(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	perfect, err := R2Score(yTrue, mat.NewVecDense(4, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(perfect-1.0) > 1e-12 {
		t.Errorf("perfect prediction R2 = %v, want 1.0", perfect)
	}

	// Predicting the mean gives R2 = 0.
	mean, err := R2Score(yTrue, mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}))
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(mean) > 1e-12 {
		t.Errorf("mean prediction R2 = %v, want 0", mean)
	}

	// Constant target is undefined.
	constant := mat.NewVecDense(3, []float64{5, 5, 5})
	if _, err := R2Score(constant, constant); err == nil {
		t.Error("expected error for zero total sum of squares")
	}
}
