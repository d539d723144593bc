package metrics

// counts tallies the binary confusion cells for positive label 1.
func counts(yTrue, yPred []float64) (tp, fp, fn float64) {
	for i := range yTrue {
		switch {
		case yPred[i] == 1 && yTrue[i] == 1:
			tp++
		case yPred[i] == 1 && yTrue[i] == 0:
			fp++
		case yPred[i] == 0 && yTrue[i] == 1:
			fn++
		}
	}
	return
}

// Precision returns tp / (tp + fp), or 0 when nothing was predicted positive.
func Precision(yTrue, yPred []float64) float64 {
	tp, fp, _ := counts(yTrue, yPred)
	if tp+fp == 0 {
		return 0
	}
	return tp / (tp + fp)
}

// Recall returns tp / (tp + fn), or 0 when there are no positives.
func Recall(yTrue, yPred []float64) float64 {
	tp, _, fn := counts(yTrue, yPred)
	if tp+fn == 0 {
		return 0
	}
	return tp / (tp + fn)
}

// F1Score returns the harmonic mean of precision and recall for the
// positive class, or 0 when both are 0.
func F1Score(yTrue, yPred []float64) float64 {
	p := Precision(yTrue, yPred)
	r := Recall(yTrue, yPred)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
