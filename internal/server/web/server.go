// Package web exposes the HTTP surface of the server: account endpoints,
// the authenticated share API, and public slug resolution.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/fragshare/internal/logging"
	"github.com/dmitrijs2005/fragshare/internal/server/services"
)

type Server struct {
	address       string
	jwtSecret     []byte
	maxUploadSize int64
	uploads       *services.UploadService
	links         *services.LinkService
	users         *services.UserService
	logger        logging.Logger
}

func NewServer(address string, secretKey string, maxUploadSize int64,
	uploads *services.UploadService, links *services.LinkService, users *services.UserService,
	logger logging.Logger) *Server {
	return &Server{
		address:       address,
		jwtSecret:     []byte(secretKey),
		maxUploadSize: maxUploadSize,
		uploads:       uploads,
		links:         links,
		users:         users,
		logger:        logger.With("module", "web_server"),
	}
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/register", s.register)
	r.POST("/api/login", s.login)

	// Public resolution endpoint; the slug is the only credential.
	r.GET("/l/:slug", s.resolveLink)

	api := r.Group("/api", s.authRequired)
	api.POST("/share/file", s.shareFile)
	api.POST("/share/code", s.shareCode)
	api.POST("/share/link", s.shareLink)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.newRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
