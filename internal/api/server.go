package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"irisml/internal/config"
	"irisml/internal/models"
)

const InfoMessage = "Iris ML Predictor API is running!"

// Server serves a single artifact loaded at startup. The model is never
// mutated after construction, so handlers share it without locking.
type Server struct {
	artifact *models.Artifact
	model    models.Model
	cfg      config.Config
	log      *zap.Logger
}

func New(a *models.Artifact, cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{artifact: a, model: a.Model, cfg: cfg, log: log}
}

func (s *Server) Router() *gin.Engine {
	registerTagNames()

	r := gin.New()
	r.Use(requestID(), requestLogger(s.log), gin.Recovery(), metricsMiddleware())
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(s.cfg.CORSOrigins)))
	}

	r.GET("/", s.handleInfo)
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/model", s.handleModel)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	api.Use(apiKeyMiddleware(s.cfg.APIKey))
	api.POST("/predict", s.handlePredict)
	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	return cc
}
