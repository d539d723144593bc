package corpus

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapilab/featscale/pkg/data"
)

func setupCorpusDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, data.Init(dbPath))
	db, err := data.GetDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	docs := []*data.Document{
		{Category: "alt.atheism", Split: data.SplitTrain, Name: "1", Body: "no gods"},
		{Category: "alt.atheism", Split: data.SplitTrain, Name: "2", Body: "doubt all claims"},
		{Category: "talk.religion.misc", Split: data.SplitTrain, Name: "3", Body: "order and faith"},
		{Category: "talk.religion.misc", Split: data.SplitTest, Name: "4", Body: "scripture study"},
	}
	require.NoError(t, data.SaveDocuments(db, docs))
	return db
}

func TestLoad(t *testing.T) {
	db := setupCorpusDB(t)

	c, err := Load(db, LoadOptions{
		Categories: [2]string{"talk.religion.misc", "alt.atheism"},
		Split:      data.SplitTrain,
		Seed:       42,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	// labels follow alphabetical class order regardless of input order
	assert.Equal(t, "alt.atheism", c.Classes[0])
	assert.Equal(t, "talk.religion.misc", c.Classes[1])

	var pos int
	for i, d := range c.Docs {
		if c.Labels[i] == 1 {
			pos++
			assert.Equal(t, "order and faith", d)
		}
	}
	assert.Equal(t, 1, pos)
}

func TestLoad_Deterministic(t *testing.T) {
	db := setupCorpusDB(t)
	opts := LoadOptions{
		Categories: [2]string{"alt.atheism", "talk.religion.misc"},
		Split:      data.SplitAll,
		Seed:       42,
	}

	a, err := Load(db, opts)
	require.NoError(t, err)
	b, err := Load(db, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Docs, b.Docs)
	assert.Equal(t, a.Labels, b.Labels)
}

func TestLoad_SeedChangesOrder(t *testing.T) {
	db := setupCorpusDB(t)
	opts := LoadOptions{
		Categories: [2]string{"alt.atheism", "talk.religion.misc"},
		Split:      data.SplitAll,
		Seed:       42,
	}
	a, err := Load(db, opts)
	require.NoError(t, err)

	opts.Seed = 7
	b, err := Load(db, opts)
	require.NoError(t, err)

	// same multiset of documents either way
	assert.ElementsMatch(t, a.Docs, b.Docs)
}

func TestLoad_EmptyCache(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, data.Init(dbPath))
	db, err := data.GetDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = Load(db, LoadOptions{
		Categories: [2]string{"alt.atheism", "talk.religion.misc"},
		Split:      data.SplitTrain,
		Seed:       42,
	})
	assert.ErrorContains(t, err, "featscale fetch")
}

func TestLoad_MissingCategory(t *testing.T) {
	db := setupCorpusDB(t)
	_, err := Load(db, LoadOptions{Categories: [2]string{"alt.atheism", ""}})
	assert.Error(t, err)
}
