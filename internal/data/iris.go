package data

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed iris.csv
var irisCSV []byte

// Dataset holds a feature matrix with integer targets. Target i names TargetNames[i].
type Dataset struct {
	X            [][]float64
	Y            []int
	FeatureNames []string
	TargetNames  []string
}

// LoadIris parses the embedded Fisher Iris table (150 rows, 3 classes).
func LoadIris() (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(irisCSV))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read iris csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("iris csv is empty")
	}
	hdr := rows[0]
	if len(hdr) != len(FeatureNames)+1 {
		return nil, fmt.Errorf("iris csv header has %d columns", len(hdr))
	}
	for i, name := range FeatureNames {
		if strings.TrimSpace(hdr[i]) != name {
			return nil, fmt.Errorf("iris csv column %d is %q, want %q", i, hdr[i], name)
		}
	}

	ds := &Dataset{
		X:            make([][]float64, 0, len(rows)-1),
		Y:            make([]int, 0, len(rows)-1),
		FeatureNames: append([]string(nil), FeatureNames...),
		TargetNames:  append([]string(nil), SpeciesNames...),
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		v := make([]float64, len(FeatureNames))
		for j := range FeatureNames {
			f, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			v[j] = f
		}
		cls, ok := SpeciesIndex(row[len(FeatureNames)])
		if !ok {
			return nil, fmt.Errorf("row %d: unknown species %q", i, row[len(FeatureNames)])
		}
		ds.X = append(ds.X, v)
		ds.Y = append(ds.Y, cls)
	}
	return ds, nil
}

func (d *Dataset) Len() int { return len(d.X) }

// ClassCounts returns the number of samples per target index.
func (d *Dataset) ClassCounts() []int {
	out := make([]int, len(d.TargetNames))
	for _, c := range d.Y {
		if c >= 0 && c < len(out) {
			out[c]++
		}
	}
	return out
}

func (d *Dataset) Sample(i int) Sample {
	x := d.X[i]
	return Sample{SepalLength: x[0], SepalWidth: x[1], PetalLength: x[2], PetalWidth: x[3], Species: d.TargetNames[d.Y[i]]}
}

// WriteCSV exports the dataset with a header row, creating parent directories.
func WriteCSV(path string, d *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, d.FeatureNames...), "species")
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range d.X {
		rec := make([]string, 0, len(header))
		for _, v := range d.X[i] {
			rec = append(rec, strconv.FormatFloat(v, 'f', 1, 64))
		}
		rec = append(rec, d.TargetNames[d.Y[i]])
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
