package handlers

import (
	"net/http"
	"sync"

	"along/internal/domain"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "along is running"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

type regionInfo struct {
	Name         domain.Region      `json:"name"`
	Placeholders domain.Placeholder `json:"placeholders"`
}

// Regions lists the supported regions with their input placeholders.
func (h *Handlers) Regions(c *gin.Context) {
	def := h.DefaultRegion
	if !def.IsValid() {
		def = domain.DefaultRegion
	}
	out := make([]regionInfo, 0, len(domain.SupportedRegions))
	for _, r := range domain.SupportedRegions {
		out = append(out, regionInfo{Name: r, Placeholders: r.Placeholders()})
	}
	c.JSON(http.StatusOK, gin.H{
		"regions":             out,
		"default":             def,
		"currentLocationText": domain.CurrentLocationText,
	})
}
