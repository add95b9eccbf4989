package evaluation

import (
	"fmt"
	"math"
	"math/rand"

	"irisml/internal/models"
)

// Factory returns a fresh unfitted model for each fold.
type Factory func() (models.Model, error)

type FoldResult struct {
	Fold     int
	Accuracy float64
	MacroF1  float64
}

type CVReport struct {
	Folds        []FoldResult
	MeanAccuracy float64
	StdAccuracy  float64
	MeanMacroF1  float64
	Confusion    [][]int
}

// CrossValidate runs stratified k-fold evaluation and pools the confusion
// matrix over every held-out row.
func CrossValidate(newModel Factory, X [][]float64, y []int, nClasses, k int, seed int64) (*CVReport, error) {
	rng := rand.New(rand.NewSource(seed))
	folds, err := StratifiedKFold(y, k, rng)
	if err != nil {
		return nil, err
	}
	rep := &CVReport{Confusion: Confusion(nil, nil, nClasses)}
	for f, testIdx := range folds {
		trainIdx := Complement(len(y), testIdx)
		Xtr, ytr := Subset(X, y, trainIdx)
		Xte, yte := Subset(X, y, testIdx)
		m, err := newModel()
		if err != nil {
			return nil, err
		}
		if err := m.Fit(Xtr, ytr); err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		pred := m.Predict(Xte)
		_, _, f1 := MacroPRF1(yte, pred, nClasses)
		rep.Folds = append(rep.Folds, FoldResult{Fold: f, Accuracy: Accuracy(yte, pred), MacroF1: f1})
		cm := Confusion(yte, pred, nClasses)
		for i := range cm {
			for j := range cm[i] {
				rep.Confusion[i][j] += cm[i][j]
			}
		}
	}
	for _, fr := range rep.Folds {
		rep.MeanAccuracy += fr.Accuracy
		rep.MeanMacroF1 += fr.MacroF1
	}
	n := float64(len(rep.Folds))
	rep.MeanAccuracy /= n
	rep.MeanMacroF1 /= n
	for _, fr := range rep.Folds {
		d := fr.Accuracy - rep.MeanAccuracy
		rep.StdAccuracy += d * d
	}
	rep.StdAccuracy = math.Sqrt(rep.StdAccuracy / n)
	return rep, nil
}
