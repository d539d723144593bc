package corpus

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapilab/featscale/pkg/data"
)

func writeTestArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, body := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0600,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return path
}

func TestParseArchive(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"20news-bydate-train/alt.atheism/100":        "From: a@b\n\nno gods here",
		"20news-bydate-train/talk.religion.misc/200": "From: c@d\n\na matter of order",
		"20news-bydate-test/alt.atheism/300":         "From: e@f\n\nstill no gods",
		"20news-bydate-train/sci.space/400":          "From: g@h\n\norbital mechanics",
	})

	docs, err := ParseArchive(path, []string{"alt.atheism", "talk.religion.misc"})
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	byName := make(map[string]*data.Document)
	for _, d := range docs {
		byName[d.Name] = d
	}
	assert.Equal(t, data.SplitTrain, byName["100"].Split)
	assert.Equal(t, data.SplitTest, byName["300"].Split)
	assert.Equal(t, "talk.religion.misc", byName["200"].Category)

	// bodies come back stripped
	assert.NotContains(t, byName["100"].Body, "From:")
	assert.Contains(t, byName["100"].Body, "no gods here")
}

func TestParseArchive_NoMatchingCategories(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"20news-bydate-train/sci.space/400": "From: g@h\n\norbital mechanics",
	})

	_, err := ParseArchive(path, []string{"alt.atheism", "talk.religion.misc"})
	assert.Error(t, err)
}

func TestParseArchive_MissingFile(t *testing.T) {
	_, err := ParseArchive(filepath.Join(t.TempDir(), "nope.tar.gz"), []string{"alt.atheism"})
	assert.Error(t, err)
}

func TestParseArchive_BadTopLevelDir(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"weird-layout/alt.atheism/100": "From: a@b\n\nbody",
	})

	_, err := ParseArchive(path, []string{"alt.atheism"})
	assert.Error(t, err)
}
