package linear_model

import (
	"math/rand/v2"

	"github.com/gomlab/glm/pkg/errors"
)

// CVFold is one train/test split of the sample indices.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits sample indices into k consecutive folds. Each fold serves
// as the test set exactly once; every index appears in exactly one test
// set.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int
}

// NewKFold creates a k-fold splitter. nSplits below 2 falls back to 5.
func NewKFold(nSplits int, shuffle bool, randomSeed int) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// Split generates the train/test index pairs for nSamples samples. The
// remainder of nSamples/NSplits is spread over the leading folds, so fold
// sizes differ by at most one.
func (kf *KFold) Split(nSamples int) []CVFold {
	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]CVFold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	current := 0
	for f := 0; f < kf.NSplits; f++ {
		testSize := foldSize
		if f < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])

		inTest := make(map[int]bool, testSize)
		for _, idx := range test {
			inTest[idx] = true
		}
		train := make([]int, 0, nSamples-testSize)
		for _, idx := range indices {
			if !inTest[idx] {
				train = append(train, idx)
			}
		}

		folds[f] = CVFold{TrainIndices: train, TestIndices: test}
		current += testSize
	}
	return folds
}

// validateFolds checks that every fold index is within [0, nSamples) and
// that no fold has an empty side.
func validateFolds(op string, folds []CVFold, nSamples int) error {
	if len(folds) == 0 {
		return errors.NewValidationError("folds", "at least one fold is required", 0)
	}
	for f, fold := range folds {
		if len(fold.TrainIndices) == 0 || len(fold.TestIndices) == 0 {
			return errors.NewValidationError("folds", "fold has an empty train or test side", f)
		}
		for _, idx := range fold.TrainIndices {
			if idx < 0 || idx >= nSamples {
				return errors.NewValueError(op, "fold train index out of range")
			}
		}
		for _, idx := range fold.TestIndices {
			if idx < 0 || idx >= nSamples {
				return errors.NewValueError(op, "fold test index out of range")
			}
		}
	}
	return nil
}
