package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/api/handlers"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/api/middleware"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/config"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/pages/finder"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/web"
)

// SetupRouter configures and returns the web Gin engine serving the finder pages.
// The rate limiter's background cleanup runs until stop is closed.
func SetupRouter(cfg *config.Config, sendMessageService services.ISendMessageService, formatter *finder.Formatter, log *zap.Logger, stop <-chan struct{}) (*gin.Engine, error) {
	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg, log, stop)

	// Order matters: the request logger must see rate-limited responses too.
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(rateLimiter.Limit())

	contactsHandler := handlers.NewFinderContactsHandler(sendMessageService, formatter, cfg.PageRenderTimeout, log)

	finderGroup := r.Group("/finder")
	finderGroup.Use(middleware.FinderContextMiddleware())
	{
		finderGroup.GET("/contacts", contactsHandler.ListContacts)
		finderGroup.GET("/contacts/:id", contactsHandler.GetContact)
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
	}

	return r, nil
}

// SetupServiceRouter configures and returns the service Gin engine.
func SetupServiceRouter(log *zap.Logger, shutdownChan chan<- struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.POST("/api", func(c *gin.Context) {
		var req struct {
			Method    string          `json:"method"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
			return
		}

		switch req.Method {
		case "shutdown":
			log.Info("received shutdown command via service API")
			c.JSON(http.StatusOK, gin.H{"success": true, "result": "Shutdown initiated"})
			select {
			case shutdownChan <- struct{}{}:
			default:
				log.Warn("shutdown channel already signaled")
			}
		case "ping":
			c.JSON(http.StatusOK, gin.H{"success": true, "result": "pong"})
		default:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": fmt.Sprintf("Unknown service method: %s", req.Method)})
		}
	})
	return r
}
