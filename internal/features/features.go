package features

import (
	"irisml/internal/data"
)

// InputRecord is one flower measurement in centimeters.
type InputRecord struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

// Vectorize returns the positional feature vector and its column names.
func Vectorize(r InputRecord) ([]float64, []string) {
	names := append([]string(nil), data.FeatureNames...)
	vec := []float64{r.SepalLength, r.SepalWidth, r.PetalLength, r.PetalWidth}
	return vec, names
}

func BuildRecord(sepalLength, sepalWidth, petalLength, petalWidth float64) InputRecord {
	return InputRecord{
		SepalLength: sepalLength,
		SepalWidth:  sepalWidth,
		PetalLength: petalLength,
		PetalWidth:  petalWidth,
	}
}

// FromSample drops the label from a dataset row.
func FromSample(s data.Sample) InputRecord {
	return BuildRecord(s.SepalLength, s.SepalWidth, s.PetalLength, s.PetalWidth)
}
