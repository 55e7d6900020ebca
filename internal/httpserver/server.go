package httpserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	healthgo "github.com/hellofresh/health-go/v5"
	"go.uber.org/zap"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server serving the storefront routes. Shutdown ends open
// event streams before waiting on in-flight requests.
func New(addr string, logger *zap.Logger, deps Deps) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	closing := make(chan struct{})
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger, deps, closing),
		ReadHeaderTimeout: 5 * time.Second,
	}
	var once sync.Once
	httpSrv.RegisterOnShutdown(func() {
		once.Do(func() { close(closing) })
	})

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("http server listening", zap.String("addr", l.Addr().String()))
	return s.httpServer.Serve(l)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(health *healthgo.Health) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		check := health.Measure(ctx)
		status := http.StatusOK
		if check.Status != healthgo.StatusOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, check)
	}
}
