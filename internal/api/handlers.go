package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"irisml/internal/data"
	"irisml/internal/features"
	"irisml/internal/models"
)

// PredictRequest uses pointers so that an explicit 0 passes validation
// while an absent field does not.
type PredictRequest struct {
	SepalLength *float64 `json:"sepal_length" binding:"required"`
	SepalWidth  *float64 `json:"sepal_width" binding:"required"`
	PetalLength *float64 `json:"petal_length" binding:"required"`
	PetalWidth  *float64 `json:"petal_width" binding:"required"`
}

func (r PredictRequest) Record() features.InputRecord {
	return features.BuildRecord(*r.SepalLength, *r.SepalWidth, *r.PetalLength, *r.PetalWidth)
}

type PredictResponse struct {
	Prediction int    `json:"prediction"`
	Species    string `json:"species"`
}

type ModelInfo struct {
	Algo               string             `json:"algo"`
	Model              string             `json:"model"`
	Classes            []string           `json:"classes"`
	Features           []string           `json:"features"`
	Estimators         int                `json:"estimators"`
	Seed               int64              `json:"seed"`
	FeatureImportances map[string]float64 `json:"feature_importances,omitempty"`
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": InfoMessage})
}

func (s *Server) handleModel(c *gin.Context) {
	a := s.artifact
	info := ModelInfo{
		Algo:       a.Algo,
		Model:      s.model.Name(),
		Classes:    a.Classes,
		Features:   a.FeatureNames,
		Estimators: a.Estimators(),
		Seed:       a.Seed,
	}
	if imp, ok := s.model.(models.Importancer); ok {
		vals := imp.FeatureImportances(len(a.FeatureNames))
		info.FeatureImportances = make(map[string]float64, len(vals))
		for i, name := range a.FeatureNames {
			info.FeatureImportances[name] = vals[i]
		}
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailures.Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validationDetail(err)})
		return
	}
	v, _ := features.Vectorize(req.Record())
	idx := s.model.Predict([][]float64{v})[0]
	species, ok := data.SpeciesName(idx)
	if !ok {
		s.log.Error("model returned unknown class index", zap.Int("index", idx), zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("unknown class index %d", idx)})
		return
	}
	predictionsTotal.WithLabelValues(species).Inc()
	c.JSON(http.StatusOK, PredictResponse{Prediction: idx, Species: species})
}
