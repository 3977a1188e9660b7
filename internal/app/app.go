package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ingatlan/agent/config"
	"ingatlan/agent/internal/api"
	"ingatlan/agent/internal/loader"
	"ingatlan/agent/internal/registry"
	"ingatlan/agent/internal/report"
)

const traceHeader = "X-Trace-ID"

// NewLogger builds the process logger from the log configuration.
func NewLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(cfg.Log.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.WithError(err).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// LoadRegistry fills a new registry from the configured input and applies
// the configured discount.
func LoadRegistry(cfg *config.Config, logger *logrus.Logger) (*registry.Registry, loader.Result, error) {
	reg := registry.NewRegistry(logger)

	result, err := loader.NewLoader(logger, cfg.Report.Fallback).LoadFile(cfg.Report.InputFile, reg)
	if err != nil {
		return nil, result, err
	}

	if cfg.Report.Discount != 0 {
		reg.ApplyDiscount(cfg.Report.Discount)
	}
	return reg, result, nil
}

// RunReport loads the listings and writes the report to the output file and
// to console.
func RunReport(cfg *config.Config, logger *logrus.Logger, console io.Writer) error {
	reg, _, err := LoadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(logger, cfg.Report.Format)
	if err != nil {
		return err
	}
	return writer.WriteFile(report.Build(reg, cfg.Report.City), cfg.Report.OutputFile, console)
}

// NewRouter builds the HTTP router over a loaded registry.
func NewRouter(cfg *config.Config, reg *registry.Registry, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	api.SetupRoutes(router, api.NewHandler(reg, cfg.Report.City, logger), cfg.HTTP.CORSOrigins)
	return router
}

// Serve loads the registry and serves it until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	reg, _, err := LoadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           NewRouter(cfg, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Header(traceHeader, traceID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"trace_id":    traceID,
			"http_method": c.Request.Method,
			"http_path":   c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request finished")
	}
}
