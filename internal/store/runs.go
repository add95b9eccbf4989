package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one row of the training log.
type Run struct {
	ID           int64
	ModelName    string
	Accuracy     float64
	F1           float64
	TrainedAt    time.Time
	DataPoints   int
	Seed         int64
	ArtifactPath string
}

// RunLog appends trainer results to a local sqlite file.
type RunLog struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS training_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	model_name VARCHAR(50) NOT NULL,
	accuracy REAL,
	f1 REAL,
	trained_at DATETIME NOT NULL,
	data_points INTEGER,
	seed INTEGER,
	artifact_path TEXT
)`

func Open(path string) (*RunLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create run log dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create training_log: %w", err)
	}
	return &RunLog{db: db}, nil
}

func (l *RunLog) Close() error { return l.db.Close() }

// Insert stores r and returns its row id. A zero TrainedAt is set to now.
func (l *RunLog) Insert(ctx context.Context, r Run) (int64, error) {
	if r.TrainedAt.IsZero() {
		r.TrainedAt = time.Now().UTC()
	}
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO training_log (model_name, accuracy, f1, trained_at, data_points, seed, artifact_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ModelName, r.Accuracy, r.F1, r.TrainedAt, r.DataPoints, r.Seed, r.ArtifactPath)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (l *RunLog) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, model_name, accuracy, f1, trained_at, data_points, seed, artifact_path
		FROM training_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var path sql.NullString
		if err := rows.Scan(&r.ID, &r.ModelName, &r.Accuracy, &r.F1, &r.TrainedAt, &r.DataPoints, &r.Seed, &path); err != nil {
			return nil, err
		}
		r.ArtifactPath = path.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Best returns the run with the highest accuracy for model, or sql.ErrNoRows.
func (l *RunLog) Best(ctx context.Context, model string) (Run, error) {
	var r Run
	var path sql.NullString
	err := l.db.QueryRowContext(ctx, `
		SELECT id, model_name, accuracy, f1, trained_at, data_points, seed, artifact_path
		FROM training_log
		WHERE model_name = ?
		ORDER BY accuracy DESC, id DESC
		LIMIT 1`, model).
		Scan(&r.ID, &r.ModelName, &r.Accuracy, &r.F1, &r.TrainedAt, &r.DataPoints, &r.Seed, &path)
	r.ArtifactPath = path.String
	return r, err
}
