package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrShapeMismatch = errors.New("features and labels size mismatch")
	ErrNotFitted     = errors.New("model not fitted")
)

// Model is a multiclass classifier over dense float features. Predict and
// PredictProba do not mutate the receiver and are safe for concurrent use
// once Fit has returned.
type Model interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	PredictProba(X [][]float64) [][]float64
	Name() string
}

// Importancer is implemented by models that can report per-feature importances
// normalized to sum to one.
type Importancer interface {
	FeatureImportances(nFeatures int) []float64
}

func checkXY(X [][]float64, y []int) error {
	if len(X) == 0 || len(y) == 0 {
		return ErrEmptyDataset
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(X), len(y))
	}
	nFeats := len(X[0])
	if nFeats == 0 {
		return ErrEmptyDataset
	}
	for i := range X {
		if len(X[i]) != nFeats {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrShapeMismatch, i, len(X[i]), nFeats)
		}
		if y[i] < 0 {
			return fmt.Errorf("negative label %d at row %d", y[i], i)
		}
	}
	return nil
}

func numClasses(y []int) int {
	k := 0
	for _, c := range y {
		if c+1 > k {
			k = c + 1
		}
	}
	return k
}

func argmax(p []float64) int {
	best := -1
	bestV := math.Inf(-1)
	for i, v := range p {
		if v > bestV {
			bestV = v
			best = i
		}
	}
	return best
}

func predictFromProba(ps [][]float64) []int {
	out := make([]int, len(ps))
	for i := range ps {
		out[i] = argmax(ps[i])
	}
	return out
}

func uniform(k int) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = 1 / float64(k)
	}
	return out
}

func normalize(v []float64) []float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	if sum == 0 {
		return v
	}
	for i := range v {
		v[i] /= sum
	}
	return v
}
