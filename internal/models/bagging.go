package models

import (
	"math/rand"
)

// Bagging is a RandomForest that considers every feature at every split.
type Bagging struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	Seed               int64
	NClasses           int
	Trees              []*DecisionTree
}

func NewBagging() *Bagging {
	return &Bagging{NEstimators: 30, MaxDepth: 0, MinSamples: 2, MaxThresholdsPerFe: 0, Seed: 42, Trees: []*DecisionTree{}}
}

func (bg *Bagging) Name() string { return "Bagging" }

func (bg *Bagging) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if bg.NEstimators <= 0 {
		bg.NEstimators = 30
	}
	bg.NClasses = numClasses(y)
	rng := rand.New(rand.NewSource(bg.Seed))
	trees, err := fitBootstrapTrees(X, y, bg.NEstimators, treeParams{
		maxDepth:   bg.MaxDepth,
		minSamples: bg.MinSamples,
		maxThr:     bg.MaxThresholdsPerFe,
		nClasses:   bg.NClasses,
	}, rng)
	if err != nil {
		return err
	}
	bg.Trees = trees
	return nil
}

func (bg *Bagging) Predict(X [][]float64) []int {
	return predictFromProba(bg.PredictProba(X))
}

func (bg *Bagging) PredictProba(X [][]float64) [][]float64 {
	return averageProba(bg.Trees, X, bg.NClasses)
}

func (bg *Bagging) FeatureImportances(nFeatures int) []float64 {
	return averageImportances(bg.Trees, nFeatures)
}
