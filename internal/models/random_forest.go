package models

import (
	"math"
	"math/rand"
)

// RandomForest bags fully grown trees and samples sqrt(n_features) candidate
// features per split unless MaxFeatures is set.
type RandomForest struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	NClasses           int
	Trees              []*DecisionTree
}

func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 100, MaxDepth: 0, MinSamples: 2, MaxThresholdsPerFe: 0, MaxFeatures: 0, Seed: 42, Trees: []*DecisionTree{}}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if rf.NEstimators <= 0 {
		rf.NEstimators = 100
	}
	nFeats := len(X[0])
	maxF := rf.MaxFeatures
	if maxF <= 0 {
		maxF = int(math.Max(1, math.Min(float64(nFeats), math.Sqrt(float64(nFeats)))))
	}
	rf.NClasses = numClasses(y)
	rng := rand.New(rand.NewSource(rf.Seed))
	trees, err := fitBootstrapTrees(X, y, rf.NEstimators, treeParams{
		maxDepth:    rf.MaxDepth,
		minSamples:  rf.MinSamples,
		maxThr:      rf.MaxThresholdsPerFe,
		maxFeatures: maxF,
		nClasses:    rf.NClasses,
	}, rng)
	if err != nil {
		return err
	}
	rf.Trees = trees
	return nil
}

func (rf *RandomForest) Predict(X [][]float64) []int {
	return predictFromProba(rf.PredictProba(X))
}

func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	return averageProba(rf.Trees, X, rf.NClasses)
}

func (rf *RandomForest) FeatureImportances(nFeatures int) []float64 {
	return averageImportances(rf.Trees, nFeatures)
}
