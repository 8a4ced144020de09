package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AssessmentHandler *AssessmentHandler
	WSHandler         *WSHandler
	// AllowOrigins defaults to any origin when empty.
	AllowOrigins []string
	Logger       *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}
	r.Use(corsMiddleware(cfg.AllowOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	if h := cfg.AssessmentHandler; h != nil {
		api.GET("/questions", h.Questions)
		api.POST("/assessments", h.Complete)
		api.POST("/assessments/precompute", h.Precompute)
		api.GET("/results", h.History)
		api.GET("/results/:id", h.Restore)
		api.DELETE("/results/:id", h.Forget)
		api.GET("/results/:id/content", h.Content)
		api.GET("/latest-result", h.Latest)
	}

	if cfg.WSHandler != nil {
		r.GET("/ws", gin.WrapF(cfg.WSHandler.ServeWS))
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
