package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *RunLog {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "runs", "training.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestInsertAndRecent(t *testing.T) {
	l := openTemp(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, acc := range []float64{0.9, 0.97, 0.95} {
		id, err := l.Insert(ctx, Run{ModelName: "rf", Accuracy: acc, F1: acc, TrainedAt: at.Add(time.Duration(i) * time.Minute), DataPoints: 150, Seed: 42, ArtifactPath: "app/iris_model.gob"})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id != int64(i+1) {
			t.Fatalf("id %d, want %d", id, i+1)
		}
	}

	runs, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != 3 || runs[1].ID != 2 {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if !runs[0].TrainedAt.Equal(at.Add(2*time.Minute)) {
		t.Fatalf("trained_at %v", runs[0].TrainedAt)
	}
	if runs[0].DataPoints != 150 || runs[0].Seed != 42 || runs[0].ArtifactPath != "app/iris_model.gob" {
		t.Fatalf("round trip lost fields: %+v", runs[0])
	}
}

func TestBest(t *testing.T) {
	l := openTemp(t)
	ctx := context.Background()
	if _, err := l.Best(ctx, "gb"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows, got %v", err)
	}
	l.Insert(ctx, Run{ModelName: "gb", Accuracy: 0.93})
	l.Insert(ctx, Run{ModelName: "gb", Accuracy: 0.96})
	l.Insert(ctx, Run{ModelName: "dt", Accuracy: 1.0})
	best, err := l.Best(ctx, "gb")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best.Accuracy != 0.96 || best.TrainedAt.IsZero() {
		t.Fatalf("unexpected best %+v", best)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Insert(context.Background(), Run{ModelName: "dt", Accuracy: 1}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	l.Close()

	l, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l.Close()
	runs, err := l.Recent(context.Background(), 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs %v err %v", runs, err)
	}
}
