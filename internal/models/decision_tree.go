package models

import (
	"math"
	"math/rand"
	"sort"
)

type DTNode struct {
	Feature   int
	Threshold float64
	Left      *DTNode
	Right     *DTNode
	IsLeaf    bool
	Proba     []float64
	Samples   int
	Impurity  float64
}

// DecisionTree is a CART classifier using gini impurity. Zero MaxDepth means
// unlimited depth, zero MaxFeatures means all features are considered at every
// split, zero MaxThresholdsPerFe means every midpoint between distinct values
// is a candidate.
type DecisionTree struct {
	MaxDepth           int
	MinSamplesSplit    int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	NClasses           int
	Root               *DTNode

	rng *rand.Rand
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MaxDepth: 0, MinSamplesSplit: 2, MaxThresholdsPerFe: 0, Seed: 42}
}

func (dt *DecisionTree) Name() string { return "DecisionTree" }

func (dt *DecisionTree) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if k := numClasses(y); k > dt.NClasses {
		dt.NClasses = k
	}
	if dt.MinSamplesSplit < 2 {
		dt.MinSamplesSplit = 2
	}
	dt.rng = rand.New(rand.NewSource(dt.Seed))
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	dt.Root = dt.build(X, y, idx, 0)
	return nil
}

func (dt *DecisionTree) Predict(X [][]float64) []int {
	return predictFromProba(dt.PredictProba(X))
}

func (dt *DecisionTree) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = dt.predictProbaOne(X[i])
	}
	return out
}

func (dt *DecisionTree) predictProbaOne(x []float64) []float64 {
	n := dt.Root
	if n == nil {
		return uniform(dt.NClasses)
	}
	for !n.IsLeaf {
		if n.Feature >= len(x) {
			return uniform(dt.NClasses)
		}
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
		if n == nil {
			return uniform(dt.NClasses)
		}
	}
	return append([]float64(nil), n.Proba...)
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (dt *DecisionTree) Depth() int { return nodeDepth(dt.Root) }

func nodeDepth(n *DTNode) int {
	if n == nil || n.IsLeaf {
		return 0
	}
	l, r := nodeDepth(n.Left), nodeDepth(n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// FeatureImportances is the normalized total weighted gini decrease per feature.
func (dt *DecisionTree) FeatureImportances(nFeatures int) []float64 {
	out := make([]float64, nFeatures)
	var walk func(n *DTNode)
	walk = func(n *DTNode) {
		if n == nil || n.IsLeaf || n.Left == nil || n.Right == nil {
			return
		}
		dec := float64(n.Samples)*n.Impurity -
			float64(n.Left.Samples)*n.Left.Impurity -
			float64(n.Right.Samples)*n.Right.Impurity
		if n.Feature < nFeatures && dec > 0 {
			out[n.Feature] += dec
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(dt.Root)
	return normalize(out)
}

func (dt *DecisionTree) build(X [][]float64, y []int, idx []int, depth int) *DTNode {
	proba := classDistribution(y, idx, dt.NClasses)
	node := &DTNode{Samples: len(idx), Impurity: gini(proba)}
	if len(idx) < dt.MinSamplesSplit || (dt.MaxDepth > 0 && depth >= dt.MaxDepth) || node.Impurity == 0 {
		node.IsLeaf = true
		node.Proba = proba
		return node
	}

	bestFeature := -1
	bestThr := 0.0
	bestImp := math.MaxFloat64
	var leftIdxBest, rightIdxBest []int

	nFeats := len(X[0])
	maxF := dt.MaxFeatures
	if maxF <= 0 || maxF > nFeats {
		maxF = nFeats
	}
	// Features are visited in random order; constant features do not count
	// toward maxF so a node is only a leaf when no feature can split it.
	visited := 0
	for _, f := range dt.featureOrder(nFeats) {
		if visited >= maxF {
			break
		}
		cand := dt.candidateThresholds(X, idx, f)
		if len(cand) == 0 {
			continue
		}
		visited++
		for _, thr := range cand {
			lIdx, rIdx := splitIdx(X, idx, f, thr)
			if len(lIdx) == 0 || len(rIdx) == 0 {
				continue
			}
			imp := giniImpurity(y, lIdx, rIdx, dt.NClasses)
			if imp < bestImp {
				bestImp = imp
				bestFeature = f
				bestThr = thr
				leftIdxBest = lIdx
				rightIdxBest = rIdx
			}
		}
	}

	if bestFeature == -1 {
		node.IsLeaf = true
		node.Proba = proba
		return node
	}
	node.Feature = bestFeature
	node.Threshold = bestThr
	node.Left = dt.build(X, y, leftIdxBest, depth+1)
	node.Right = dt.build(X, y, rightIdxBest, depth+1)
	return node
}

func classDistribution(y []int, idx []int, k int) []float64 {
	out := make([]float64, k)
	if len(idx) == 0 {
		return out
	}
	for _, i := range idx {
		out[y[i]]++
	}
	n := float64(len(idx))
	for c := range out {
		out[c] /= n
	}
	return out
}

func gini(p []float64) float64 {
	s := 1.0
	for _, v := range p {
		s -= v * v
	}
	if s < 1e-12 {
		return 0
	}
	return s
}

func splitIdx(X [][]float64, idx []int, f int, thr float64) ([]int, []int) {
	l := make([]int, 0, len(idx))
	r := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][f] <= thr {
			l = append(l, i)
		} else {
			r = append(r, i)
		}
	}
	return l, r
}

func giniImpurity(y []int, lIdx, rIdx []int, k int) float64 {
	gl := gini(classDistribution(y, lIdx, k))
	gr := gini(classDistribution(y, rIdx, k))
	wl := float64(len(lIdx))
	wr := float64(len(rIdx))
	n := wl + wr
	return (wl/n)*gl + (wr/n)*gr
}

// candidateThresholds returns midpoints between consecutive distinct values of
// feature f, subsampled to MaxThresholdsPerFe when that is positive.
func (dt *DecisionTree) candidateThresholds(X [][]float64, idx []int, f int) []float64 {
	values := make([]float64, len(idx))
	for j, i := range idx {
		values[j] = X[i][f]
	}
	sort.Float64s(values)
	mids := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			mids = append(mids, (values[i]+values[i-1])/2)
		}
	}
	m := dt.MaxThresholdsPerFe
	if m <= 0 || len(mids) <= m {
		return mids
	}
	for i := 0; i < m; i++ {
		j := i + dt.rng.Intn(len(mids)-i)
		mids[i], mids[j] = mids[j], mids[i]
	}
	out := mids[:m]
	sort.Float64s(out)
	return out
}

func (dt *DecisionTree) featureOrder(nFeats int) []int {
	if dt.MaxFeatures <= 0 || dt.MaxFeatures >= nFeats {
		out := make([]int, nFeats)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return dt.rng.Perm(nFeats)
}
