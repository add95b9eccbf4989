package evaluation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"irisml/internal/data"
	"irisml/internal/models"
)

func TestLearningCurveAndOutputs(t *testing.T) {
	ds, err := data.LoadIris()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	factory := func() (models.Model, error) { return models.Construct("dt", models.Params{Seed: 1}) }
	pts, err := LearningCurve(factory, ds.X, ds.Y, 3, 4, 15, 0.2, 42)
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if len(pts) == 0 || pts[len(pts)-1].Size != 120 {
		t.Fatalf("unexpected points: %+v", pts)
	}
	for _, p := range pts {
		if p.TrainAcc < 0 || p.TrainAcc > 1 || p.TestAcc < 0 || p.TestAcc > 1 {
			t.Fatalf("score out of range: %+v", p)
		}
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out", "curve.csv")
	if err := WriteCurveCSV(csvPath, pts); err != nil {
		t.Fatalf("csv: %v", err)
	}
	b, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != len(pts)+1 || !strings.HasPrefix(lines[0], "size,train_acc") {
		t.Fatalf("unexpected csv:\n%s", b)
	}

	pngPath := filepath.Join(dir, "out", "curve.png")
	if err := PlotCurvePNG(pngPath, "Learning curve", pts); err != nil {
		t.Fatalf("png: %v", err)
	}
	if fi, err := os.Stat(pngPath); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}

	impPath := filepath.Join(dir, "imp.png")
	if err := PlotImportancesPNG(impPath, "Importances", data.FeatureNames, []float64{0.1, 0.05, 0.45, 0.4}); err != nil {
		t.Fatalf("importances png: %v", err)
	}
}
