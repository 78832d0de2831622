// Package httpapi expone el motor de análisis por HTTP (gin).
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

// FixtureAnalyzer es lo que el API necesita del servicio de análisis.
type FixtureAnalyzer interface {
	Analyze(ctx context.Context, fixtureID int64) (analyzer.FixtureAnalysis, error)
	Momentum(ctx context.Context, fixtureID int64) (analyzer.Momentum, error)
}

// Handler agrupa los endpoints de fixtures.
type Handler struct {
	svc FixtureAnalyzer
}

// NewRouter monta las rutas sobre un gin.Engine sin el logger por defecto de gin;
// cada request se loguea con slog.
func NewRouter(svc FixtureAnalyzer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	h := &Handler{svc: svc}
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.GET("/fixtures/:id/analysis", h.Analysis)
	api.GET("/fixtures/:id/momentum", h.Momentum)
	return r
}

// Health responde siempre 200 mientras el proceso esté vivo.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analysis devuelve el contrato completo de análisis del fixture.
// GET /api/fixtures/:id/analysis
func (h *Handler) Analysis(c *gin.Context) {
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	res, err := h.svc.Analyze(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Analysis", id, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Momentum devuelve la línea de presión minuto a minuto.
// GET /api/fixtures/:id/momentum
func (h *Handler) Momentum(c *gin.Context) {
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	res, err := h.svc.Momentum(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Momentum", id, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func fixtureID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fixture id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, op string, id int64, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("fixture %d not found", id)})
		return
	}
	slog.Error("httpapi: request failed", "op", op, "fixture_id", id, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	}
}

// Serve arranca el servidor en addr y lo apaga limpiamente cuando ctx se cancela.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpapi.Serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpapi.Serve: shutdown: %w", err)
		}
		slog.Info("http api stopped")
		return nil
	}
}
