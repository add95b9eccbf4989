package api

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"irisml/internal/config"
)

func TestPredictionCounterBySpecies(t *testing.T) {
	h := New(fakeArtifact(&fakeModel{class: 1}), config.Default(), nil).Router()
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("versicolor"))
	do(t, h, http.MethodPost, "/predict", `{"sepal_length":6,"sepal_width":2.9,"petal_length":4.5,"petal_width":1.5}`, nil)
	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues("versicolor")); got != before+1 {
		t.Fatalf("versicolor predictions %v, want %v", got, before+1)
	}
}

func TestValidationFailureCounter(t *testing.T) {
	h := New(fakeArtifact(&fakeModel{}), config.Default(), nil).Router()
	before := testutil.ToFloat64(validationFailures)
	do(t, h, http.MethodPost, "/predict", `{}`, nil)
	if got := testutil.ToFloat64(validationFailures); got != before+1 {
		t.Fatalf("validation failures %v, want %v", got, before+1)
	}
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	h := New(fakeArtifact(&fakeModel{}), config.Default(), nil).Router()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404"))
	do(t, h, http.MethodGet, "/no/such/route", "", nil)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")); got != before+1 {
		t.Fatalf("unmatched requests %v, want %v", got, before+1)
	}
	before = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/healthz", http.MethodGet, "200"))
	do(t, h, http.MethodGet, "/healthz", "", nil)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/healthz", http.MethodGet, "200")); got != before+1 {
		t.Fatalf("healthz requests %v, want %v", got, before+1)
	}
}
