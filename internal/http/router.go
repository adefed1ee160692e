package api

import (
	stdhttp "net/http"

	intconfig "along/internal/config"
	h "along/internal/http/handlers"
	"along/internal/http/middleware"
	"along/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins), middleware.Session())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(stdhttp.StatusMethodNotAllowed, gin.H{
			"error":  "Method not allowed",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)
		api.GET("/regions", hs.Regions)

		api.POST("/get-route", hs.GetRoute)
		api.GET("/history", hs.GetHistory)
		api.POST("/route-card", hs.GetRouteCardPDF)
	}

	h.SetRouter(r)
	return r
}
