package models

import (
	"math"
	"sort"
)

// gbStump is a depth-one regression tree. Feature -1 means a constant LeftVal.
type gbStump struct {
	Feature   int
	Threshold float64
	LeftVal   float64
	RightVal  float64
}

func (s gbStump) eval(x []float64) float64 {
	if s.Feature >= 0 && s.Feature < len(x) && x[s.Feature] > s.Threshold {
		return s.RightVal
	}
	return s.LeftVal
}

// GradientBoosting fits one stump per class per round on the softmax
// residuals, starting from the log class priors.
type GradientBoosting struct {
	NEstimators        int
	LearningRate       float64
	MinSamples         int
	MaxThresholdsPerFe int
	NClasses           int
	Init               []float64
	Trees              [][]gbStump
}

func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{NEstimators: 50, LearningRate: 0.1, MinSamples: 1, MaxThresholdsPerFe: 32}
}

func (gb *GradientBoosting) Name() string { return "GradientBoosting" }

func softmax(z []float64) []float64 {
	m := math.Inf(-1)
	for _, v := range z {
		if v > m {
			m = v
		}
	}
	out := make([]float64, len(z))
	sum := 0.0
	for i, v := range z {
		out[i] = math.Exp(v - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func (gb *GradientBoosting) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	n := len(X)
	k := numClasses(y)
	gb.NClasses = k
	gb.Trees = nil

	counts := make([]float64, k)
	for _, c := range y {
		counts[c]++
	}
	gb.Init = make([]float64, k)
	for c := range counts {
		p := counts[c] / float64(n)
		if p <= 1e-3 {
			p = 1e-3
		}
		gb.Init[c] = math.Log(p)
	}
	F := make([][]float64, n)
	for i := range F {
		F[i] = append([]float64(nil), gb.Init...)
	}

	nFeats := len(X[0])
	cands := make([][]float64, nFeats)
	for j := 0; j < nFeats; j++ {
		cands[j] = gbCandidateThresholds(X, j, gb.MaxThresholdsPerFe)
	}

	r := make([]float64, n)
	for m := 0; m < gb.NEstimators; m++ {
		P := make([][]float64, n)
		for i := 0; i < n; i++ {
			P[i] = softmax(F[i])
		}
		round := make([]gbStump, k)
		found := false
		for c := 0; c < k; c++ {
			for i := 0; i < n; i++ {
				t := 0.0
				if y[i] == c {
					t = 1
				}
				r[i] = t - P[i][c]
			}
			best, ok := gb.fitStump(X, r, cands)
			if ok {
				found = true
			}
			round[c] = best
		}
		if !found {
			break
		}
		gb.Trees = append(gb.Trees, round)
		for i := 0; i < n; i++ {
			for c := 0; c < k; c++ {
				F[i][c] += gb.LearningRate * round[c].eval(X[i])
			}
		}
	}
	return nil
}

func (gb *GradientBoosting) fitStump(X [][]float64, r []float64, cands [][]float64) (gbStump, bool) {
	n := len(X)
	best := gbStump{Feature: -1}
	bestSSE := math.MaxFloat64
	for j := range cands {
		for _, thr := range cands[j] {
			leftSum, leftCount := 0.0, 0.0
			rightSum, rightCount := 0.0, 0.0
			for i := 0; i < n; i++ {
				if X[i][j] <= thr {
					leftSum += r[i]
					leftCount++
				} else {
					rightSum += r[i]
					rightCount++
				}
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			if int(leftCount) < gb.MinSamples || int(rightCount) < gb.MinSamples {
				continue
			}
			leftAvg := leftSum / leftCount
			rightAvg := rightSum / rightCount

			sse := 0.0
			for i := 0; i < n; i++ {
				d := r[i] - leftAvg
				if X[i][j] > thr {
					d = r[i] - rightAvg
				}
				sse += d * d
			}
			if sse < bestSSE {
				bestSSE = sse
				best = gbStump{Feature: j, Threshold: thr, LeftVal: leftAvg, RightVal: rightAvg}
			}
		}
	}
	return best, best.Feature != -1
}

func (gb *GradientBoosting) decision(x []float64) []float64 {
	f := append([]float64(nil), gb.Init...)
	for _, round := range gb.Trees {
		for c := range round {
			if c < len(f) {
				f[c] += gb.LearningRate * round[c].eval(x)
			}
		}
	}
	return f
}

func (gb *GradientBoosting) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		if len(gb.Init) == 0 {
			out[i] = uniform(gb.NClasses)
			continue
		}
		out[i] = softmax(gb.decision(X[i]))
	}
	return out
}

func (gb *GradientBoosting) Predict(X [][]float64) []int {
	return predictFromProba(gb.PredictProba(X))
}

// FeatureImportances counts how often each feature is split on.
func (gb *GradientBoosting) FeatureImportances(nFeatures int) []float64 {
	out := make([]float64, nFeatures)
	for _, round := range gb.Trees {
		for _, s := range round {
			if s.Feature >= 0 && s.Feature < nFeatures {
				out[s.Feature]++
			}
		}
	}
	return normalize(out)
}

func gbCandidateThresholds(X [][]float64, j int, nCand int) []float64 {
	if nCand <= 0 {
		nCand = 16
	}
	n := len(X)
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = X[i][j]
	}
	sort.Float64s(vals)
	out := make([]float64, 0, nCand)
	for k := 1; k < nCand; k++ {
		idx := int(math.Round(float64(k) / float64(nCand) * float64(n-1)))
		if idx <= 0 || idx >= n {
			continue
		}
		thr := vals[idx]
		if len(out) == 0 || thr != out[len(out)-1] {
			out = append(out, thr)
		}
	}
	if len(out) == 0 {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += vals[i]
		}
		out = append(out, sum/float64(n))
	}
	return out
}
