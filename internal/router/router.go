package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sprintindex/notify-api/internal/handler"
	promhandler "github.com/sprintindex/notify-api/internal/handler/prometheus"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine *gin.Engine
	authH  Handler
	promH  *promhandler.Handler
}

func NewRouter(authH Handler, promH *promhandler.Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine: gin.New(),
		authH:  authH,
		promH:  promH,
	}
	return r
}

func (r *Router) Setup() {
	r.engine.Use(gin.Recovery())

	r.engine.GET("/health", handler.HealthCheck)
	if r.promH != nil {
		r.engine.GET("/metrics", r.promH.Handler())
	}

	api := r.engine.Group("/api/v1")
	r.authH.RegisterRoutes(api)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
