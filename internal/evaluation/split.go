package evaluation

import (
	"fmt"
	"math/rand"
)

// Subset gathers the rows named by idx.
func Subset(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	Xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		Xs[i] = X[j]
		ys[i] = y[j]
	}
	return Xs, ys
}

func byClass(y []int, rng *rand.Rand) [][]int {
	k := 0
	for _, c := range y {
		if c+1 > k {
			k = c + 1
		}
	}
	groups := make([][]int, k)
	for i, c := range y {
		groups[c] = append(groups[c], i)
	}
	for _, g := range groups {
		rng.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
	}
	return groups
}

// StratifiedSplit returns shuffled train and test indices that keep each
// class's share of rows in both parts.
func StratifiedSplit(y []int, testRatio float64, rng *rand.Rand) (train, test []int) {
	for _, g := range byClass(y, rng) {
		nTest := int(testRatio * float64(len(g)))
		test = append(test, g[:nTest]...)
		train = append(train, g[nTest:]...)
	}
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test
}

// StratifiedKFold deals each class round-robin into k folds and returns the
// test indices of every fold.
func StratifiedKFold(y []int, k int, rng *rand.Rand) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("k-fold needs k >= 2, got %d", k)
	}
	if k > len(y) {
		return nil, fmt.Errorf("k=%d exceeds %d samples", k, len(y))
	}
	folds := make([][]int, k)
	pos := 0
	for _, g := range byClass(y, rng) {
		for _, i := range g {
			folds[pos%k] = append(folds[pos%k], i)
			pos++
		}
	}
	return folds, nil
}

// Complement returns 0..n-1 minus the members of idx.
func Complement(n int, idx []int) []int {
	skip := make([]bool, n)
	for _, i := range idx {
		skip[i] = true
	}
	out := make([]int, 0, n-len(idx))
	for i := 0; i < n; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}
