package handlers

import (
	"net/http"

	"along/internal/domain/models"
	"along/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type routeResponse struct {
	Route       string             `json:"route"`
	Steps       []models.RouteStep `json:"steps"`
	Found       bool               `json:"found"`
	Region      string             `json:"region"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Message     string             `json:"message,omitempty"`
}

// GetRoute answers POST /api/get-route.
func (h *Handlers) GetRoute(c *gin.Context) {
	var req models.RouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Routes
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.Search(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := routeResponse{
		Route:       res.Route,
		Steps:       res.Steps,
		Found:       res.Found,
		Region:      string(res.Region),
		Origin:      res.Origin,
		Destination: res.Destination,
	}
	if !res.Found {
		out.Message = "No valid route found."
	}
	c.JSON(http.StatusOK, out)
}

// GetHistory answers GET /api/history with the session's popular routes.
func (h *Handlers) GetHistory(c *gin.Context) {
	svc := h.Routes
	svc.RequestID = middleware.GetRequestID(c)
	entries := svc.HistoryOf(c.Request.Context(), middleware.GetSession(c))
	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}
