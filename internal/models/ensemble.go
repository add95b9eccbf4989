package models

import (
	"math/rand"
)

type treeParams struct {
	maxDepth    int
	minSamples  int
	maxThr      int
	maxFeatures int
	nClasses    int
}

// fitBootstrapTrees fits n trees, each on a bootstrap resample of (X, y). Every
// tree gets its own seed drawn from rng so the ensemble is reproducible.
func fitBootstrapTrees(X [][]float64, y []int, n int, p treeParams, rng *rand.Rand) ([]*DecisionTree, error) {
	rows := len(X)
	trees := make([]*DecisionTree, 0, n)
	for k := 0; k < n; k++ {
		Xb := make([][]float64, rows)
		yb := make([]int, rows)
		for i := 0; i < rows; i++ {
			j := rng.Intn(rows)
			Xb[i] = X[j]
			yb[i] = y[j]
		}
		dt := NewDecisionTree()
		dt.MaxDepth = p.maxDepth
		dt.MinSamplesSplit = p.minSamples
		dt.MaxThresholdsPerFe = p.maxThr
		dt.MaxFeatures = p.maxFeatures
		dt.NClasses = p.nClasses
		dt.Seed = rng.Int63()
		if err := dt.Fit(Xb, yb); err != nil {
			return nil, err
		}
		trees = append(trees, dt)
	}
	return trees, nil
}

// averageProba soft-votes the trees' class distributions.
func averageProba(trees []*DecisionTree, X [][]float64, k int) [][]float64 {
	n := len(X)
	out := make([][]float64, n)
	if len(trees) == 0 {
		for i := range out {
			out[i] = uniform(k)
		}
		return out
	}
	for i := range out {
		out[i] = make([]float64, k)
	}
	for _, dt := range trees {
		p := dt.PredictProba(X)
		for i := 0; i < n; i++ {
			for c := 0; c < k && c < len(p[i]); c++ {
				out[i][c] += p[i][c]
			}
		}
	}
	m := float64(len(trees))
	for i := 0; i < n; i++ {
		for c := range out[i] {
			out[i][c] /= m
		}
	}
	return out
}

func averageImportances(trees []*DecisionTree, nFeatures int) []float64 {
	out := make([]float64, nFeatures)
	if len(trees) == 0 {
		return out
	}
	for _, dt := range trees {
		imp := dt.FeatureImportances(nFeatures)
		for i := range out {
			out[i] += imp[i]
		}
	}
	return normalize(out)
}
