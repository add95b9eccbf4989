package models

import (
	"bytes"
	"reflect"
	"testing"
)

func TestRandomForestFitsIris(t *testing.T) {
	X, y := loadIris(t)
	rf := NewRandomForest()
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(rf.Trees) != 100 {
		t.Fatalf("trees=%d", len(rf.Trees))
	}
	if acc := trainAccuracy(rf, X, y); acc < 0.97 {
		t.Fatalf("train accuracy=%.3f", acc)
	}
	if got := rf.Predict([][]float64{setosaExemplar})[0]; got != 0 {
		t.Fatalf("setosa exemplar predicted %d", got)
	}
	if got := rf.Predict([][]float64{virginicaExemplar})[0]; got != 2 {
		t.Fatalf("virginica exemplar predicted %d", got)
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	X, y := loadIris(t)
	a, b := NewRandomForest(), NewRandomForest()
	a.NEstimators, b.NEstimators = 20, 20
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("fit a: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("fit b: %v", err)
	}
	if !reflect.DeepEqual(a.PredictProba(X), b.PredictProba(X)) {
		t.Fatalf("same seed produced different probabilities")
	}

	c := NewRandomForest()
	c.NEstimators = 20
	c.Seed = 7
	if err := c.Fit(X, y); err != nil {
		t.Fatalf("fit c: %v", err)
	}
	if reflect.DeepEqual(a.Trees[0].Root, c.Trees[0].Root) && reflect.DeepEqual(a.Trees[1].Root, c.Trees[1].Root) {
		t.Fatalf("different seeds produced identical trees")
	}
}

func TestRandomForestArtifactBytesStable(t *testing.T) {
	X, y := loadIris(t)
	encode := func() []byte {
		rf := NewRandomForest()
		rf.NEstimators = 10
		if err := rf.Fit(X, y); err != nil {
			t.Fatalf("fit: %v", err)
		}
		a := &Artifact{Algo: "rf", Classes: []string{"setosa", "versicolor", "virginica"}, FeatureNames: []string{"a", "b", "c", "d"}, Seed: rf.Seed, Model: rf}
		var buf bytes.Buffer
		if err := a.Encode(&buf); err != nil {
			t.Fatalf("encode: %v", err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(encode(), encode()) {
		t.Fatalf("retraining with the same seed changed the artifact bytes")
	}
}

func TestRandomForestImportances(t *testing.T) {
	X, y := loadIris(t)
	rf := NewRandomForest()
	rf.NEstimators = 30
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	imp := rf.FeatureImportances(4)
	sum := imp[0] + imp[1] + imp[2] + imp[3]
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("importances sum=%v", sum)
	}
	if imp[2]+imp[3] <= imp[0]+imp[1] {
		t.Fatalf("expected petal features to dominate: %v", imp)
	}
}

func TestBaggingFitsIris(t *testing.T) {
	X, y := loadIris(t)
	bg := NewBagging()
	if err := bg.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if acc := trainAccuracy(bg, X, y); acc < 0.97 {
		t.Fatalf("train accuracy=%.3f", acc)
	}
	if got := bg.Predict([][]float64{setosaExemplar})[0]; got != 0 {
		t.Fatalf("setosa exemplar predicted %d", got)
	}
}

func TestEmptyEnsemblePredictsUniform(t *testing.T) {
	rf := &RandomForest{NClasses: 3}
	p := rf.PredictProba([][]float64{setosaExemplar})
	if len(p) != 1 || len(p[0]) != 3 {
		t.Fatalf("unexpected shape: %v", p)
	}
}
