package models

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func init() {
	gob.Register(&DecisionTree{})
	gob.Register(&RandomForest{})
	gob.Register(&Bagging{})
	gob.Register(&GradientBoosting{})
}

// Artifact is the serialized unit written by the trainer and read by the API.
// It carries no timestamp so identical training runs encode to identical bytes.
type Artifact struct {
	Algo         string
	Classes      []string
	FeatureNames []string
	Seed         int64
	Model        Model
}

func (a *Artifact) Encode(w io.Writer) error {
	if a.Model == nil {
		return ErrNotFitted
	}
	return gob.NewEncoder(w).Encode(a)
}

// Save writes the artifact to path, creating parent directories as needed.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	return f.Close()
}

func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}
	if a.Model == nil {
		return nil, ErrNotFitted
	}
	return &a, nil
}

func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()
	a, err := DecodeArtifact(f)
	if err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return a, nil
}

var ErrClassOrder = errors.New("artifact class order mismatch")

// Verify checks that the artifact's class labels and feature columns match
// what the caller will use to interpret its outputs and build its inputs.
func (a *Artifact) Verify(classes, features []string) error {
	if len(a.Classes) != len(classes) {
		return fmt.Errorf("%w: artifact has %d classes, want %d", ErrClassOrder, len(a.Classes), len(classes))
	}
	for i := range classes {
		if a.Classes[i] != classes[i] {
			return fmt.Errorf("%w: index %d is %q, want %q", ErrClassOrder, i, a.Classes[i], classes[i])
		}
	}
	if len(a.FeatureNames) != len(features) {
		return fmt.Errorf("%w: artifact has %d features, want %d", ErrShapeMismatch, len(a.FeatureNames), len(features))
	}
	for i := range features {
		if a.FeatureNames[i] != features[i] {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrShapeMismatch, i, a.FeatureNames[i], features[i])
		}
	}
	return nil
}

// Estimators returns the ensemble size, or 1 for a single tree.
func (a *Artifact) Estimators() int {
	switch m := a.Model.(type) {
	case *RandomForest:
		return len(m.Trees)
	case *Bagging:
		return len(m.Trees)
	case *GradientBoosting:
		return len(m.Trees)
	default:
		return 1
	}
}
