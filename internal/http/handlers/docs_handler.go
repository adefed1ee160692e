package handlers

import (
	"net/http"

	"along/internal/domain"
	"along/internal/domain/models"
	"along/internal/http/middleware"
	"along/internal/services"

	"github.com/gin-gonic/gin"
)

type routeCardRequest struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	State       string             `json:"state"`
	Route       string             `json:"route"`
	Steps       []models.RouteStep `json:"steps"`
}

// GetRouteCardPDF renders a route card (inline).
func (h *Handlers) GetRouteCardPDF(c *gin.Context) {
	var req routeCardRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	fallback := h.DefaultRegion
	if !fallback.IsValid() {
		fallback = domain.DefaultRegion
	}
	region, err := domain.ParseRegion(req.State, fallback)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.GenerateRouteCard(services.RouteCard{
		Origin:      req.Origin,
		Destination: req.Destination,
		Region:      region,
		Route:       req.Route,
		Steps:       req.Steps,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
