package data

// Sample is one labeled row of the Iris dataset.
type Sample struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
	Species     string  `json:"species"`
}

// FeatureNames is the positional order of the feature vector.
var FeatureNames = []string{"sepal_length", "sepal_width", "petal_length", "petal_width"}

// SpeciesNames maps class index to label. The trainer encodes targets with this
// list and the server refuses artifacts whose class order differs.
var SpeciesNames = []string{"setosa", "versicolor", "virginica"}

func SpeciesName(idx int) (string, bool) {
	if idx < 0 || idx >= len(SpeciesNames) {
		return "", false
	}
	return SpeciesNames[idx], true
}

func SpeciesIndex(name string) (int, bool) {
	for i, s := range SpeciesNames {
		if s == name {
			return i, true
		}
	}
	return -1, false
}
