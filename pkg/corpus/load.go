package corpus

import (
	"database/sql"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tapilab/featscale/pkg/data"
)

// Corpus is a loaded two-class document collection. Docs[i] carries label
// Labels[i]; the positive class (label 1) is Classes[1].
type Corpus struct {
	Docs    []string
	Labels  []float64
	Classes [2]string
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.Docs)
}

// LoadOptions control which slice of the cache becomes the working corpus.
type LoadOptions struct {
	Categories [2]string
	Split      string
	Seed       int64
}

// Load reads the two-class corpus from the cache and shuffles it with the
// given seed. Class labels follow alphabetical category order, so the
// lexically larger category is the positive class. The same cache contents
// and seed always produce the same document order.
func Load(db *sql.DB, opts LoadOptions) (*Corpus, error) {
	if opts.Categories[0] == "" || opts.Categories[1] == "" {
		return nil, errors.New("two categories required")
	}

	classes := opts.Categories
	sort.Strings(classes[:])

	docs, err := data.GetDocuments(db, classes[0], classes[1], opts.Split)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load documents")
	}
	if len(docs) == 0 {
		return nil, errors.Errorf("no cached documents for %s/%s, run `featscale fetch` first",
			classes[0], classes[1])
	}

	c := &Corpus{
		Docs:    make([]string, len(docs)),
		Labels:  make([]float64, len(docs)),
		Classes: classes,
	}
	for i, d := range docs {
		c.Docs[i] = d.Body
		if d.Category == classes[1] {
			c.Labels[i] = 1
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(c.Len(), func(i, j int) {
		c.Docs[i], c.Docs[j] = c.Docs[j], c.Docs[i]
		c.Labels[i], c.Labels[j] = c.Labels[j], c.Labels[i]
	})

	log.Debugf("loaded corpus: %d documents (%s=0, %s=1)", c.Len(), classes[0], classes[1])
	return c, nil
}
