package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"irisml/internal/api"
	"irisml/internal/config"
	"irisml/internal/data"
	"irisml/internal/models"
	"irisml/pkg/utils"
)

func main() {
	cfg, cfgErr := config.Resolve()
	logger := utils.NewLogger(cfg.LogFile, cfg.LogLevel)
	defer logger.Sync()
	if cfgErr != nil {
		logger.Fatal("load config", zap.Error(cfgErr))
	}

	switch cfg.GinMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	art, err := models.LoadArtifact(cfg.ModelPath)
	if err != nil {
		logger.Fatal("load model", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	if err := art.Verify(data.SpeciesNames, data.FeatureNames); err != nil {
		logger.Fatal("incompatible artifact", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	logger.Info("model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("algo", art.Algo),
		zap.String("model", art.Model.Name()),
		zap.Int("estimators", art.Estimators()),
		zap.Strings("classes", art.Classes),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.New(art, cfg, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.Bool("api_key", cfg.APIKey != ""))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
	logger.Info("stopped")
}
