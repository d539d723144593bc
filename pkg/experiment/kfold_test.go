package experiment

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFold_Partition(t *testing.T) {
	folds, err := kFold(23, 5, 42)
	require.NoError(t, err)
	require.Len(t, folds, 5)

	var all []int
	for _, f := range folds {
		all = append(all, f...)
	}
	require.Len(t, all, 23)

	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v)
	}

	// sizes differ by at most one
	for _, f := range folds {
		assert.GreaterOrEqual(t, len(f), 4)
		assert.LessOrEqual(t, len(f), 5)
	}
}

func TestKFold_Deterministic(t *testing.T) {
	a, err := kFold(100, 5, 42)
	require.NoError(t, err)
	b, err := kFold(100, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := kFold(100, 5, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestKFold_Errors(t *testing.T) {
	_, err := kFold(10, 1, 42)
	assert.Error(t, err)

	_, err = kFold(3, 5, 42)
	assert.Error(t, err)
}

func TestComplement(t *testing.T) {
	folds, err := kFold(20, 4, 42)
	require.NoError(t, err)

	train := complement(20, folds, 2)
	assert.Len(t, train, 20-len(folds[2]))
	for _, v := range train {
		assert.NotContains(t, folds[2], v)
	}
}
