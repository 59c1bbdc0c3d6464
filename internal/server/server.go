package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/api"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/config"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/monitoring"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router  *gin.Engine
	handler *api.Handler
	logger  *logrus.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, handler *api.Handler, logger *logrus.Logger, metrics *monitoring.MetricsCollector) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.New(),
		handler: handler,
		logger:  logger,
	}
	s.router.Use(gin.Recovery())

	s.setupRoutes(devMode, metrics)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool, metrics *monitoring.MetricsCollector) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if metrics != nil {
		s.router.Use(metrics.MetricsMiddleware())
		s.router.GET("/metrics", monitoring.Handler())
	}

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.handler.RegisterRoutes(apiGroup)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用 embed 的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	s.logger.WithField("addr", addr).Info("server listening")
	return s.router.Run(addr)
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
