package corpus

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tapilab/featscale/pkg/data"
)

// ParseArchive reads a 20 Newsgroups by-date tar.gz archive and returns the
// stripped documents belonging to the wanted categories. Archive entries
// look like 20news-bydate-train/alt.atheism/49960; the top-level directory
// suffix decides the split.
func ParseArchive(path string, categories []string) ([]*data.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening archive: %s", path)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading gzip archive: %s", path)
	}
	defer gz.Close()

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var docs []*data.Document
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading tar entry")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		parts := strings.Split(strings.Trim(hdr.Name, "/"), "/")
		if len(parts) != 3 {
			log.Debugf("skipping unexpected archive entry: %s", hdr.Name)
			continue
		}
		category := parts[1]
		if !wanted[category] {
			continue
		}

		split, err := splitFromDir(parts[0])
		if err != nil {
			return nil, err
		}

		b, err := io.ReadAll(tr)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading archive entry: %s", hdr.Name)
		}

		docs = append(docs, &data.Document{
			Category: category,
			Split:    split,
			Name:     parts[2],
			Body:     Strip(string(b)),
		})
	}

	if len(docs) == 0 {
		return nil, errors.Errorf("archive has no documents for categories: %s",
			strings.Join(categories, ", "))
	}

	log.Debugf("parsed %d documents from %s", len(docs), path)
	return docs, nil
}

func splitFromDir(dir string) (string, error) {
	switch {
	case strings.HasSuffix(dir, "-"+data.SplitTrain):
		return data.SplitTrain, nil
	case strings.HasSuffix(dir, "-"+data.SplitTest):
		return data.SplitTest, nil
	default:
		return "", errors.Errorf("unexpected top-level archive directory: %s", dir)
	}
}
