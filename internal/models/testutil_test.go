package models

import (
	"testing"

	"irisml/internal/data"
)

func loadIris(t *testing.T) ([][]float64, []int) {
	t.Helper()
	ds, err := data.LoadIris()
	if err != nil {
		t.Fatalf("load iris: %v", err)
	}
	return ds.X, ds.Y
}

func trainAccuracy(m Model, X [][]float64, y []int) float64 {
	p := m.Predict(X)
	ok := 0
	for i := range y {
		if p[i] == y[i] {
			ok++
		}
	}
	return float64(ok) / float64(len(y))
}

var (
	setosaExemplar     = []float64{5.1, 3.5, 1.4, 0.2}
	versicolorExemplar = []float64{7.0, 3.2, 4.7, 1.4}
	virginicaExemplar  = []float64{6.3, 3.3, 6.0, 2.5}
)
