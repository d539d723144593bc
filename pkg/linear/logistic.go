package linear

import (
	"math"

	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	// TolDefault is the gradient-norm stopping threshold.
	TolDefault = 1e-6
	// MaxIterDefault caps the LBFGS major iterations.
	MaxIterDefault = 1000
)

// LogisticRegression fits a binary logistic regression with an L2 penalty
// on the coefficients. The objective is
//
//	0.5 * ||w||^2 + C * sum_i log(1 + exp(-z_i * (x_i.w + b)))
//
// with z in {-1, +1}. C is the inverse regularization strength: smaller C
// means a stronger penalty. The intercept b is not penalized. Minimization
// starts from zero, so fits are deterministic.
type LogisticRegression struct {
	C       float64
	Tol     float64
	MaxIter int
}

// Model holds fitted classifier parameters.
type Model struct {
	coef      []float64
	intercept float64
}

// NewLogisticRegression returns a classifier with the given inverse
// regularization strength and default stopping criteria.
func NewLogisticRegression(c float64) *LogisticRegression {
	return &LogisticRegression{
		C:       c,
		Tol:     TolDefault,
		MaxIter: MaxIterDefault,
	}
}

// Fit trains on the sparse feature matrix x with labels y in {0, 1}.
func (lr *LogisticRegression) Fit(x *sparse.CSR, y []float64) (*Model, error) {
	if x == nil {
		return nil, errors.New("feature matrix required")
	}
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.New("empty feature matrix")
	}
	if rows != len(y) {
		return nil, errors.Errorf("feature matrix has %d rows but %d labels", rows, len(y))
	}
	if lr.C <= 0 {
		return nil, errors.Errorf("C must be positive, got %g", lr.C)
	}

	// z in {-1, +1}
	z := make([]float64, rows)
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, errors.Errorf("label %d is %g, want 0 or 1", i, v)
		}
		z[i] = 2*v - 1
	}

	obj := &logisticObjective{x: x, z: z, c: lr.C, rows: rows, cols: cols}
	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}

	tol := lr.Tol
	if tol <= 0 {
		tol = TolDefault
	}
	maxIter := lr.MaxIter
	if maxIter <= 0 {
		maxIter = MaxIterDefault
	}
	settings := &optimize.Settings{
		GradientThreshold: tol,
		MajorIterations:   maxIter,
	}

	// theta = [w_0 ... w_{cols-1}, b]
	theta := make([]float64, cols+1)
	result, err := optimize.Minimize(problem, theta, settings, &optimize.LBFGS{})
	if err != nil && result == nil {
		return nil, errors.Wrap(err, "optimization failed")
	}

	coef := make([]float64, cols)
	copy(coef, result.X[:cols])
	return &Model{
		coef:      coef,
		intercept: result.X[cols],
	}, nil
}

// Coef returns the learned coefficient vector, one entry per feature column.
func (m *Model) Coef() []float64 {
	return m.coef
}

// Intercept returns the learned bias term.
func (m *Model) Intercept() float64 {
	return m.intercept
}

// DecisionFunction returns the raw score x.w + b.
func (m *Model) DecisionFunction(x mat.Vector) float64 {
	w := mat.NewVecDense(len(m.coef), m.coef)
	return mat.Dot(w, x) + m.intercept
}

// PredictProba returns the posterior probability of the positive class.
func (m *Model) PredictProba(x mat.Vector) float64 {
	return sigmoid(m.DecisionFunction(x))
}

// Predict returns the 0/1 class at the 0.5 posterior threshold.
func (m *Model) Predict(x mat.Vector) float64 {
	if m.PredictProba(x) >= 0.5 {
		return 1
	}
	return 0
}

// PredictRows classifies every row of the feature matrix.
func (m *Model) PredictRows(x *sparse.CSR) []float64 {
	rows, _ := x.Dims()
	scores := make([]float64, rows)
	x.DoNonZero(func(i, j int, v float64) {
		scores[i] += v * m.coef[j]
	})
	out := make([]float64, rows)
	for i := range scores {
		if sigmoid(scores[i]+m.intercept) >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

type logisticObjective struct {
	x    *sparse.CSR
	z    []float64
	c    float64
	rows int
	cols int
}

// margins computes x.w + b for every row in one pass over the non-zeros.
func (o *logisticObjective) margins(theta []float64) []float64 {
	f := make([]float64, o.rows)
	o.x.DoNonZero(func(i, j int, v float64) {
		f[i] += v * theta[j]
	})
	b := theta[o.cols]
	for i := range f {
		f[i] += b
	}
	return f
}

func (o *logisticObjective) value(theta []float64) float64 {
	f := o.margins(theta)

	var penalty float64
	for j := 0; j < o.cols; j++ {
		penalty += theta[j] * theta[j]
	}

	var loss float64
	for i, fi := range f {
		loss += logOnePlusExp(-o.z[i] * fi)
	}
	return 0.5*penalty + o.c*loss
}

func (o *logisticObjective) gradient(grad, theta []float64) {
	f := o.margins(theta)

	// dL/df_i, scaled by C
	g := make([]float64, o.rows)
	for i, fi := range f {
		g[i] = -o.c * o.z[i] * sigmoid(-o.z[i]*fi)
	}

	for j := 0; j < o.cols; j++ {
		grad[j] = theta[j]
	}
	grad[o.cols] = 0

	o.x.DoNonZero(func(i, j int, v float64) {
		grad[j] += v * g[i]
	})
	for i := range g {
		grad[o.cols] += g[i]
	}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// logOnePlusExp is a numerically stable log(1 + exp(u)).
func logOnePlusExp(u float64) float64 {
	if u > 35 {
		return u
	}
	return math.Log1p(math.Exp(u))
}
