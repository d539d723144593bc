package experiment

import (
	"math/rand"

	"github.com/pkg/errors"
)

// kFold shuffles row indices with the seed and cuts them into k test folds.
// Fold sizes differ by at most one. The same (n, k, seed) always yields the
// same assignment.
func kFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, errors.Errorf("need at least 2 folds, got %d", k)
	}
	if n < k {
		return nil, errors.Errorf("cannot split %d rows into %d folds", n, k)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	folds := make([][]int, k)
	base, extra := n/k, n%k
	start := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		folds[f] = idx[start : start+size]
		start += size
	}
	return folds, nil
}

// complement returns the indices of 0..n-1 not present in test, preserving
// the shuffled order of the remaining rows.
func complement(n int, folds [][]int, skip int) []int {
	train := make([]int, 0, n-len(folds[skip]))
	for f, fold := range folds {
		if f == skip {
			continue
		}
		train = append(train, fold...)
	}
	return train
}
