package models

import (
	"errors"
	"math"
	"testing"
)

func TestDecisionTreeFitsIris(t *testing.T) {
	X, y := loadIris(t)
	dt := NewDecisionTree()
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if acc := trainAccuracy(dt, X, y); acc < 0.99 {
		t.Fatalf("train accuracy=%.3f", acc)
	}
	if dt.NClasses != 3 {
		t.Fatalf("NClasses=%d", dt.NClasses)
	}
	got := dt.Predict([][]float64{setosaExemplar, versicolorExemplar, virginicaExemplar})
	for i, want := range []int{0, 1, 2} {
		if got[i] != want {
			t.Fatalf("exemplar %d predicted %d", i, got[i])
		}
	}
}

func TestDecisionTreeMaxDepth(t *testing.T) {
	X, y := loadIris(t)
	dt := NewDecisionTree()
	dt.MaxDepth = 1
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if d := dt.Depth(); d != 1 {
		t.Fatalf("depth=%d", d)
	}
	// one split isolates setosa and leaves the other two mixed
	if acc := trainAccuracy(dt, X, y); acc < 0.6 || acc > 0.7 {
		t.Fatalf("stump accuracy=%.3f", acc)
	}
}

func TestDecisionTreeProbaSumsToOne(t *testing.T) {
	X, y := loadIris(t)
	dt := NewDecisionTree()
	dt.MaxDepth = 2
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for i, p := range dt.PredictProba(X) {
		s := 0.0
		for _, v := range p {
			s += v
		}
		if math.Abs(s-1) > 1e-9 {
			t.Fatalf("row %d proba sums to %v", i, s)
		}
	}
}

func TestDecisionTreeUnfitted(t *testing.T) {
	dt := &DecisionTree{NClasses: 3}
	p := dt.PredictProba([][]float64{setosaExemplar})
	if len(p[0]) != 3 || p[0][0] != 1.0/3 {
		t.Fatalf("unexpected proba: %v", p[0])
	}
}

func TestFitErrors(t *testing.T) {
	for _, m := range []Model{NewDecisionTree(), NewRandomForest(), NewBagging(), NewGradientBoosting()} {
		if err := m.Fit(nil, nil); !errors.Is(err, ErrEmptyDataset) {
			t.Fatalf("%s: expected ErrEmptyDataset, got %v", m.Name(), err)
		}
		err := m.Fit([][]float64{{1, 2}, {3, 4}}, []int{0})
		if !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("%s: expected ErrShapeMismatch, got %v", m.Name(), err)
		}
		err = m.Fit([][]float64{{1, 2}, {3}}, []int{0, 1})
		if !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("%s: expected ErrShapeMismatch for ragged rows, got %v", m.Name(), err)
		}
	}
}
