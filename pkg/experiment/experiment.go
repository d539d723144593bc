package experiment

import (
	"log/slog"

	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/tapilab/featscale/pkg/corpus"
	"github.com/tapilab/featscale/pkg/linear"
	"github.com/tapilab/featscale/pkg/metrics"
	"github.com/tapilab/featscale/pkg/vectorize"
)

// Params selects the term under study and how to train around it.
type Params struct {
	// Term is the vocabulary term whose column gets inflated.
	Term string
	// Weight multiplies every occurrence of the term, turning the binary
	// indicator {0, 1} into {0, Weight}.
	Weight float64
	// C is the inverse regularization strength of the classifier.
	C float64
	// Folds is the number of cross-validation folds.
	Folds int
	// Seed fixes the fold assignment.
	Seed int64
	// SingleFeature restricts the model to only the term's column,
	// removing the rest of the vocabulary as confounders.
	SingleFeature bool
}

// Result reports what the classifier learned about the inflated term.
type Result struct {
	Term          string    `json:"term" yaml:"term"`
	Weight        float64   `json:"weight" yaml:"weight"`
	C             float64   `json:"c" yaml:"c"`
	SingleFeature bool      `json:"single_feature" yaml:"singleFeature"`
	Coef          float64   `json:"coef" yaml:"coef"`
	Posterior     float64   `json:"posterior" yaml:"posterior"`
	FoldF1s       []float64 `json:"fold_f1s" yaml:"foldF1s"`
	MeanF1        float64   `json:"mean_f1" yaml:"meanF1"`
}

// Run trains an L2-regularized logistic regression on a copy of the feature
// matrix with the target term's column scaled by the weight, collecting
// cross-validated F1 along the way, then reports the term's coefficient in a
// final full-data fit together with the posterior for a synthetic document
// that expresses only that term. The caller's matrix is never modified.
func Run(c *corpus.Corpus, v *vectorize.CountVectorizer, x *sparse.CSR, p Params) (*Result, error) {
	col, ok := v.Index(p.Term)
	if !ok {
		return nil, errors.Errorf("term not in vocabulary: %s", p.Term)
	}

	rows, cols := x.Dims()
	if rows != c.Len() {
		return nil, errors.Errorf("feature matrix has %d rows for %d documents", rows, c.Len())
	}

	var (
		xw       *sparse.CSR
		queryDim = cols
		queryCol = col
	)
	if p.SingleFeature {
		xw = extractColumn(x, col, p.Weight)
		queryDim = 1
		queryCol = 0
	} else {
		xw = scaleColumn(x, col, p.Weight)
	}

	folds, err := kFold(rows, p.Folds, p.Seed)
	if err != nil {
		return nil, err
	}

	f1s := make([]float64, len(folds))
	var g errgroup.Group
	for fi := range folds {
		fi := fi
		g.Go(func() error {
			trainIdx := complement(rows, folds, fi)
			testIdx := folds[fi]

			m, err := linear.NewLogisticRegression(p.C).Fit(
				selectRows(xw, trainIdx), selectLabels(c.Labels, trainIdx))
			if err != nil {
				return errors.Wrapf(err, "fold %d fit failed", fi)
			}

			pred := m.PredictRows(selectRows(xw, testIdx))
			f1s[fi] = metrics.F1Score(selectLabels(c.Labels, testIdx), pred)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m, err := linear.NewLogisticRegression(p.C).Fit(xw, c.Labels)
	if err != nil {
		return nil, errors.Wrap(err, "full fit failed")
	}

	query := sparse.NewVector(queryDim, []int{queryCol}, []float64{p.Weight})
	res := &Result{
		Term:          p.Term,
		Weight:        p.Weight,
		C:             p.C,
		SingleFeature: p.SingleFeature,
		Coef:          m.Coef()[queryCol],
		Posterior:     m.PredictProba(query),
		FoldF1s:       f1s,
		MeanF1:        stat.Mean(f1s, nil),
	}

	slog.Debug("experiment done",
		"term", p.Term, "weight", p.Weight, "c", p.C,
		"coef", res.Coef, "posterior", res.Posterior, "mean_f1", res.MeanF1)
	return res, nil
}

// scaleColumn copies the matrix with one column multiplied by w.
func scaleColumn(x *sparse.CSR, col int, w float64) *sparse.CSR {
	rows, cols := x.Dims()
	dok := sparse.NewDOK(rows, cols)
	x.DoNonZero(func(i, j int, v float64) {
		if j == col {
			v *= w
		}
		if v != 0 {
			dok.Set(i, j, v)
		}
	})
	return dok.ToCSR()
}

// extractColumn copies one column, scaled by w, into a rows-by-1 matrix.
func extractColumn(x *sparse.CSR, col int, w float64) *sparse.CSR {
	rows, _ := x.Dims()
	dok := sparse.NewDOK(rows, 1)
	x.DoNonZero(func(i, j int, v float64) {
		if j == col && v*w != 0 {
			dok.Set(i, 0, v*w)
		}
	})
	return dok.ToCSR()
}

// selectRows copies the given rows of x into a new matrix, in index order.
func selectRows(x *sparse.CSR, idx []int) *sparse.CSR {
	_, cols := x.Dims()
	pos := make(map[int]int, len(idx))
	for newRow, oldRow := range idx {
		pos[oldRow] = newRow
	}
	dok := sparse.NewDOK(len(idx), cols)
	x.DoNonZero(func(i, j int, v float64) {
		if newRow, ok := pos[i]; ok {
			dok.Set(newRow, j, v)
		}
	})
	return dok.ToCSR()
}

func selectLabels(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, row := range idx {
		out[i] = y[row]
	}
	return out
}
