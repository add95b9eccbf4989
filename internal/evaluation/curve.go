package evaluation

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type CurvePoint struct {
	Size     int
	TrainAcc float64
	TestAcc  float64
	TrainF1  float64
	TestF1   float64
}

// ComputeCurveSizes spreads points training-set sizes between min and total,
// linearly or on a log scale. Sizes are strictly increasing and end at total.
func ComputeCurveSizes(total, points, min int, useLog bool) []int {
	if points <= 1 {
		points = 2
	}
	if min < 1 {
		min = 1
	}
	if min > total {
		min = total
	}
	sizes := make([]int, 0, points)
	if useLog {
		ratio := math.Pow(float64(total)/float64(min), 1.0/float64(points-1))
		for i := 0; i < points; i++ {
			sizes = append(sizes, int(math.Round(float64(min)*math.Pow(ratio, float64(i)))))
		}
	} else {
		step := float64(total-min) / float64(points-1)
		for i := 0; i < points; i++ {
			sizes = append(sizes, int(math.Round(float64(min)+float64(i)*step)))
		}
	}
	cleaned := make([]int, 0, len(sizes))
	last := 0
	for _, s := range sizes {
		if s > total {
			s = total
		}
		if s > last {
			cleaned = append(cleaned, s)
			last = s
		}
	}
	if len(cleaned) == 0 || cleaned[len(cleaned)-1] != total {
		cleaned = append(cleaned, total)
	}
	return cleaned
}

// LearningCurve fits a fresh model on growing stratified prefixes of a
// shuffled training split and scores each on the fixed holdout.
func LearningCurve(newModel Factory, X [][]float64, y []int, nClasses, points, min int, testRatio float64, seed int64) ([]CurvePoint, error) {
	rng := rand.New(rand.NewSource(seed))
	trainIdx, testIdx := StratifiedSplit(y, testRatio, rng)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, fmt.Errorf("split produced %d train and %d test rows", len(trainIdx), len(testIdx))
	}
	Xtr, ytr := Subset(X, y, trainIdx)
	Xte, yte := Subset(X, y, testIdx)

	sizes := ComputeCurveSizes(len(Xtr), points, min, false)
	out := make([]CurvePoint, 0, len(sizes))
	for _, s := range sizes {
		m, err := newModel()
		if err != nil {
			return nil, err
		}
		subX, subY := Xtr[:s], ytr[:s]
		if err := m.Fit(subX, subY); err != nil {
			return nil, fmt.Errorf("size %d: %w", s, err)
		}
		pTrain := m.Predict(subX)
		pTest := m.Predict(Xte)
		_, _, f1Train := MacroPRF1(subY, pTrain, nClasses)
		_, _, f1Test := MacroPRF1(yte, pTest, nClasses)
		out = append(out, CurvePoint{
			Size:     s,
			TrainAcc: Accuracy(subY, pTrain),
			TestAcc:  Accuracy(yte, pTest),
			TrainF1:  f1Train,
			TestF1:   f1Test,
		})
	}
	return out, nil
}

func WriteCurveCSV(path string, pts []CurvePoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"size", "train_acc", "test_acc", "train_f1", "test_f1"}); err != nil {
		return err
	}
	for _, p := range pts {
		rec := []string{strconv.Itoa(p.Size),
			fmt.Sprintf("%.6f", p.TrainAcc), fmt.Sprintf("%.6f", p.TestAcc),
			fmt.Sprintf("%.6f", p.TrainF1), fmt.Sprintf("%.6f", p.TestF1),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func PlotCurvePNG(path, title string, pts []CurvePoint) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Training samples"
	p.Y.Label.Text = "Score"
	p.Y.Min = 0
	p.Y.Max = 1

	toXY := func(get func(CurvePoint) float64) plotter.XYs {
		xy := make(plotter.XYs, len(pts))
		for i := range pts {
			xy[i].X = float64(pts[i].Size)
			xy[i].Y = get(pts[i])
		}
		return xy
	}
	if err := plotutil.AddLinePoints(p,
		"Train (acc)", toXY(func(c CurvePoint) float64 { return c.TrainAcc }),
		"Test (acc)", toXY(func(c CurvePoint) float64 { return c.TestAcc }),
		"Train (macro F1)", toXY(func(c CurvePoint) float64 { return c.TrainF1 }),
		"Test (macro F1)", toXY(func(c CurvePoint) float64 { return c.TestF1 }),
	); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// PlotImportancesPNG draws a bar chart of per-feature importances.
func PlotImportancesPNG(path, title string, names []string, imp []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Importance"

	vals := make(plotter.Values, len(imp))
	copy(vals, imp)
	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
