package vectorize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// tokenRegEx matches words of two or more characters, the shortest token
// worth keeping in a bag-of-words model.
var tokenRegEx = regexp.MustCompile(`\b\w\w+\b`)

// Tokenize lowercases the text and returns its word tokens.
func Tokenize(text string) []string {
	return tokenRegEx.FindAllString(strings.ToLower(text), -1)
}

// CountVectorizer turns documents into a sparse term matrix. With Binary set
// the entries record presence (1) or absence (0) instead of counts. Terms
// appearing in fewer than MinDF documents are excluded from the vocabulary.
//
// Column indices are assigned in sorted term order, so the same corpus and
// threshold always produce the same term-to-column mapping.
type CountVectorizer struct {
	MinDF  int
	Binary bool

	vocab   map[string]int
	terms   []string
	docFreq []int
}

func NewCountVectorizer(minDF int, binary bool) *CountVectorizer {
	if minDF < 1 {
		minDF = 1
	}
	return &CountVectorizer{
		MinDF:  minDF,
		Binary: binary,
	}
}

// Fit learns the vocabulary from the documents.
func (v *CountVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("no documents to fit")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.MinDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return errors.Errorf("no terms appear in at least %d documents", v.MinDF)
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	v.docFreq = make([]int, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
		v.docFreq[i] = df[term]
	}

	log.Debugf("fit vocabulary: %d terms (min_df=%d)", len(terms), v.MinDF)
	return nil
}

// Transform encodes the documents against the fitted vocabulary.
func (v *CountVectorizer) Transform(docs []string) (*sparse.CSR, error) {
	if v.vocab == nil {
		return nil, errors.New("vectorizer not fitted")
	}

	var (
		ia   = make([]int, 1, len(docs)+1)
		ja   []int
		vals []float64
	)
	for _, doc := range docs {
		counts := make(map[int]float64)
		for _, tok := range Tokenize(doc) {
			if col, ok := v.vocab[tok]; ok {
				counts[col]++
			}
		}

		cols := make([]int, 0, len(counts))
		for col := range counts {
			cols = append(cols, col)
		}
		sort.Ints(cols)

		for _, col := range cols {
			ja = append(ja, col)
			if v.Binary {
				vals = append(vals, 1)
			} else {
				vals = append(vals, counts[col])
			}
		}
		ia = append(ia, len(ja))
	}

	return sparse.NewCSR(len(docs), len(v.terms), ia, ja, vals), nil
}

// FitTransform fits the vocabulary and encodes the same documents.
func (v *CountVectorizer) FitTransform(docs []string) (*sparse.CSR, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Index returns the column index of a vocabulary term.
func (v *CountVectorizer) Index(term string) (int, bool) {
	col, ok := v.vocab[strings.ToLower(term)]
	return col, ok
}

// Terms returns the vocabulary in column order.
func (v *CountVectorizer) Terms() []string {
	return v.terms
}

// VocabSize returns the number of vocabulary terms.
func (v *CountVectorizer) VocabSize() int {
	return len(v.terms)
}

// DocFreq returns the number of fitted documents containing the term.
func (v *CountVectorizer) DocFreq(term string) int {
	col, ok := v.Index(term)
	if !ok {
		return 0
	}
	return v.docFreq[col]
}
