package evaluation

func Accuracy(y, p []int) float64 {
	if len(y) == 0 {
		return 0
	}
	c := 0
	for i := range y {
		if y[i] == p[i] {
			c++
		}
	}
	return float64(c) / float64(len(y))
}

// Confusion returns a k×k matrix with rows indexed by the true class and
// columns by the predicted class. Labels outside [0,k) are ignored.
func Confusion(y, p []int, k int) [][]int {
	m := make([][]int, k)
	for i := range m {
		m[i] = make([]int, k)
	}
	for i := range y {
		if y[i] < 0 || y[i] >= k || p[i] < 0 || p[i] >= k {
			continue
		}
		m[y[i]][p[i]]++
	}
	return m
}

// ClassScores holds one-vs-rest precision, recall and F1 for a single class.
type ClassScores struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

func PerClass(y, p []int, k int) []ClassScores {
	cm := Confusion(y, p, k)
	out := make([]ClassScores, k)
	for c := 0; c < k; c++ {
		tp := cm[c][c]
		fp, fn := 0, 0
		for o := 0; o < k; o++ {
			if o == c {
				continue
			}
			fp += cm[o][c]
			fn += cm[c][o]
		}
		s := ClassScores{Support: tp + fn}
		if tp+fp > 0 {
			s.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			s.Recall = float64(tp) / float64(tp+fn)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		out[c] = s
	}
	return out
}

// MacroPRF1 averages per-class precision, recall and F1 without weighting.
func MacroPRF1(y, p []int, k int) (precision, recall, f1 float64) {
	if k == 0 {
		return
	}
	for _, s := range PerClass(y, p, k) {
		precision += s.Precision
		recall += s.Recall
		f1 += s.F1
	}
	n := float64(k)
	return precision / n, recall / n, f1 / n
}
