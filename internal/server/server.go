// Package server exposes the derived views over a read-only HTTP API so the
// web dashboard can poll them. Nothing here writes back to the snapshot store.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
)

// Server serves the most recent dashboard view.
type Server struct {
	router     *gin.Engine
	addr       string
	httpServer *http.Server

	mu   sync.RWMutex
	view dashboard.View
	seen bool
}

// New creates a server bound to host:port.
func New(host string, port int) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		addr:   fmt.Sprintf("%s:%d", host, port),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealthz)

	api := s.router.Group("/api")
	{
		api.GET("/view", s.handleView)
		api.GET("/status", s.handleStatus)
		api.GET("/sessions", s.handleSessions)
		api.GET("/usage", s.handleUsage)
		api.GET("/gamemode", s.handleGameMode)
	}
}

// Update replaces the served view.
func (s *Server) Update(view dashboard.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.seen = true
}

func (s *Server) current() (dashboard.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, s.seen
}

// Run serves until the context is cancelled, consuming views as they arrive.
func (s *Server) Run(ctx context.Context, views <-chan dashboard.View) error {
	go func() {
		for view := range views {
			s.Update(view)
		}
	}()

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Router exposes the handler, used by tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleView(c *gin.Context) {
	view, ok := s.current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no view computed yet"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleStatus(c *gin.Context) {
	view, _ := s.current()
	status := gin.H{
		"isOnline":                  view.Online,
		"freshnessCountdownSeconds": view.Countdown,
	}
	if !view.LastSeen.IsZero() {
		status["lastLogTime"] = view.LastSeen
	}
	if latest := view.Latest; latest != nil {
		status["battery"] = latest.Battery.String()
		status["activeApp"] = latest.ActiveApp
		status["windowTitle"] = latest.WindowTitle
		status["idleTimeSecs"] = latest.IdleTimeSecs
		status["runningApps"] = latest.RunningApps
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleSessions(c *gin.Context) {
	view, _ := s.current()
	sessions := view.Sessions
	if sessions == nil {
		sessions = []domain.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) handleUsage(c *gin.Context) {
	view, _ := s.current()
	c.JSON(http.StatusOK, gin.H{"apps": view.AppUsage})
}

func (s *Server) handleGameMode(c *gin.Context) {
	view, _ := s.current()
	c.JSON(http.StatusOK, view.GameMode)
}
