package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/amidarace/middleware"
)

// Register mounts the API on e.
func (h *Handler) Register(e *echo.Echo) {
	// Public
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(h.JWTKey))
	api.GET("/catalog", h.Catalog)
	api.GET("/horses", h.Horses)
	api.GET("/paddock", h.Paddock)
	api.GET("/presets", h.Presets)
	api.POST("/presets", h.CreatePreset)
	api.POST("/races", h.Race)
}
