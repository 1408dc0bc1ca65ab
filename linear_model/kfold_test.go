package linear_model

import (
	"testing"
)

func TestKFoldSplitCoverage(t *testing.T) {
	kf := NewKFold(3, false, 0)
	folds := kf.Split(10)

	if len(folds) != 3 {
		t.Fatalf("got %d folds, want 3", len(folds))
	}

	// Remainder spreads over the leading folds: sizes 4, 3, 3.
	wantSizes := []int{4, 3, 3}
	seen := make(map[int]int)
	for f, fold := range folds {
		if len(fold.TestIndices) != wantSizes[f] {
			t.Errorf("fold %d test size = %d, want %d", f, len(fold.TestIndices), wantSizes[f])
		}
		if len(fold.TrainIndices)+len(fold.TestIndices) != 10 {
			t.Errorf("fold %d covers %d samples, want 10", f, len(fold.TrainIndices)+len(fold.TestIndices))
		}
		for _, idx := range fold.TestIndices {
			seen[idx]++
		}
	}

	for i := 0; i < 10; i++ {
		if seen[i] != 1 {
			t.Errorf("index %d appears in %d test sets, want exactly 1", i, seen[i])
		}
	}
}

func TestKFoldTrainTestDisjoint(t *testing.T) {
	folds := NewKFold(4, true, 7).Split(13)

	for f, fold := range folds {
		inTest := make(map[int]bool)
		for _, idx := range fold.TestIndices {
			inTest[idx] = true
		}
		for _, idx := range fold.TrainIndices {
			if inTest[idx] {
				t.Errorf("fold %d: index %d on both sides", f, idx)
			}
		}
	}
}

func TestKFoldShuffleDeterministic(t *testing.T) {
	a := NewKFold(3, true, 42).Split(9)
	b := NewKFold(3, true, 42).Split(9)

	for f := range a {
		if len(a[f].TestIndices) != len(b[f].TestIndices) {
			t.Fatalf("fold %d sizes differ between identical seeds", f)
		}
		for i := range a[f].TestIndices {
			if a[f].TestIndices[i] != b[f].TestIndices[i] {
				t.Errorf("fold %d diverges between identical seeds", f)
			}
		}
	}
}

func TestNewKFoldFallback(t *testing.T) {
	if kf := NewKFold(1, false, 0); kf.NSplits != 5 {
		t.Errorf("NSplits = %d, want fallback to 5", kf.NSplits)
	}
	if kf := NewKFold(0, false, 0); kf.NSplits != 5 {
		t.Errorf("NSplits = %d, want fallback to 5", kf.NSplits)
	}
}

func TestValidateFolds(t *testing.T) {
	good := NewKFold(2, false, 0).Split(6)
	if err := validateFolds("test", good, 6); err != nil {
		t.Errorf("validateFolds() error = %v on a valid split", err)
	}

	tests := []struct {
		name  string
		folds []CVFold
	}{
		{"no folds", nil},
		{"empty test side", []CVFold{{TrainIndices: []int{0, 1}, TestIndices: nil}}},
		{"empty train side", []CVFold{{TrainIndices: nil, TestIndices: []int{0}}}},
		{"train index out of range", []CVFold{{TrainIndices: []int{99}, TestIndices: []int{0}}}},
		{"test index out of range", []CVFold{{TrainIndices: []int{0}, TestIndices: []int{-1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateFolds("test", tt.folds, 6); err == nil {
				t.Errorf("validateFolds() error = nil, want error")
			}
		})
	}
}
