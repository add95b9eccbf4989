package models

import (
	"fmt"
	"strings"
)

// Params are the tunables shared by the trainer and analyzer flags.
// Zero values keep each model's own default.
type Params struct {
	Estimators  int
	MaxDepth    int
	MinSamples  int
	MaxFeatures int
	LR          float64
	Seed        int64
}

var Algos = []string{"dt", "rf", "bagging", "gb"}

// Construct returns an unfitted model for algo.
func Construct(algo string, p Params) (Model, error) {
	switch strings.ToLower(algo) {
	case "dt":
		dt := NewDecisionTree()
		dt.MaxDepth = p.MaxDepth
		if p.MinSamples > 0 {
			dt.MinSamplesSplit = p.MinSamples
		}
		dt.MaxFeatures = p.MaxFeatures
		dt.Seed = p.Seed
		return dt, nil
	case "rf", "":
		rf := NewRandomForest()
		if p.Estimators > 0 {
			rf.NEstimators = p.Estimators
		}
		rf.MaxDepth = p.MaxDepth
		if p.MinSamples > 0 {
			rf.MinSamples = p.MinSamples
		}
		rf.MaxFeatures = p.MaxFeatures
		rf.Seed = p.Seed
		return rf, nil
	case "bagging":
		bg := NewBagging()
		if p.Estimators > 0 {
			bg.NEstimators = p.Estimators
		}
		bg.MaxDepth = p.MaxDepth
		if p.MinSamples > 0 {
			bg.MinSamples = p.MinSamples
		}
		bg.Seed = p.Seed
		return bg, nil
	case "gb":
		gb := NewGradientBoosting()
		if p.Estimators > 0 {
			gb.NEstimators = p.Estimators
		}
		if p.LR > 0 {
			gb.LearningRate = p.LR
		}
		return gb, nil
	default:
		return nil, fmt.Errorf("unknown algo %q (want one of %s)", algo, strings.Join(Algos, "|"))
	}
}
