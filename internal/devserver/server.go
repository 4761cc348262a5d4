// Package devserver is a local stand-in for the advisory backend. It serves
// the two endpoints the client uses, keeps profiles in SQLite and answers
// questions with a configured LLM provider.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/llm"
	"github.com/goabroadai/goabroad/internal/store"
)

// maxUploadBytes bounds the multipart body kept in memory.
const maxUploadBytes = 10 << 20

// Config wires the server.
type Config struct {
	Profiles store.ProfileRepo

	// Provider answers chat questions. When nil, /chat/ask returns 503.
	Provider  llm.Provider
	MaxTokens int

	Logger *zap.Logger
}

// Server is the dev backend.
type Server struct {
	profiles store.ProfileRepo
	advisor  *Advisor
	logger   *zap.Logger
	engine   *gin.Engine
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		profiles: cfg.Profiles,
		logger:   logger.Named("devserver"),
	}
	if cfg.Provider != nil {
		s.advisor = NewAdvisor(cfg.Provider, cfg.MaxTokens)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(s.logger))
	r.Use(errorHandler(s.logger))

	r.GET("/health", s.health)
	r.POST("/profile/submit", s.submitProfile)
	r.POST("/chat/ask", s.ask)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"advisor": s.advisor != nil,
	})
}
