package evaluation

import (
	"math"
	"testing"
)

func TestAccuracyAndConfusion(t *testing.T) {
	y := []int{0, 0, 1, 1, 2, 2}
	p := []int{0, 1, 1, 1, 2, 0}
	if a := Accuracy(y, p); math.Abs(a-4.0/6) > 1e-12 {
		t.Fatalf("accuracy=%v", a)
	}
	cm := Confusion(y, p, 3)
	want := [][]int{{1, 1, 0}, {0, 2, 0}, {1, 0, 1}}
	for i := range want {
		for j := range want[i] {
			if cm[i][j] != want[i][j] {
				t.Fatalf("cm[%d][%d]=%d want %d", i, j, cm[i][j], want[i][j])
			}
		}
	}
	if Accuracy(nil, nil) != 0 {
		t.Fatalf("empty accuracy should be 0")
	}
}

func TestPerClassAndMacro(t *testing.T) {
	y := []int{0, 0, 1, 1, 2, 2}
	p := []int{0, 1, 1, 1, 2, 0}
	pc := PerClass(y, p, 3)
	// class 1: tp=2 fp=1 fn=0
	if math.Abs(pc[1].Precision-2.0/3) > 1e-12 || pc[1].Recall != 1 || pc[1].Support != 2 {
		t.Fatalf("class 1 scores: %+v", pc[1])
	}
	prec, rec, f1 := MacroPRF1(y, y, 3)
	if prec != 1 || rec != 1 || f1 != 1 {
		t.Fatalf("perfect prediction gave p=%v r=%v f1=%v", prec, rec, f1)
	}
}

func TestComputeCurveSizes(t *testing.T) {
	for _, useLog := range []bool{false, true} {
		s := ComputeCurveSizes(120, 6, 10, useLog)
		if s[len(s)-1] != 120 {
			t.Fatalf("log=%v last size=%d", useLog, s[len(s)-1])
		}
		for i := 1; i < len(s); i++ {
			if s[i] <= s[i-1] {
				t.Fatalf("log=%v sizes not increasing: %v", useLog, s)
			}
		}
		if s[0] != 10 {
			t.Fatalf("log=%v first size=%d", useLog, s[0])
		}
	}
	if s := ComputeCurveSizes(5, 10, 50, false); len(s) != 1 || s[0] != 5 {
		t.Fatalf("min above total: %v", s)
	}
}
