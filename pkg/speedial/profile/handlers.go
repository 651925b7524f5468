package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reinieltalplacido/speedial/pkg/speedial/links"
)

// Handler serves the read-only shared profile view
type Handler struct {
	service *links.Service
}

// NewHandler creates a new profile handler
func NewHandler(service *links.Service) *Handler {
	return &Handler{service: service}
}

// View returns the public payload for a shared profile URL.
// A username with no links is a valid, empty profile and still returns 200.
// @Summary View a shared profile
// @Description Get the read-only link collection for a username
// @Tags profile
// @Produce json
// @Param username path string true "Profile username"
// @Success 200 {object} map[string]interface{}
// @Router /u/{username} [get]
func (h *Handler) View(c *gin.Context) {
	username := c.Param("username")
	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"links":    h.service.List(username),
	})
}

// RegisterRoutes registers profile routes on the root router.
// This should be called AFTER the API routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/u/:username", h.View)
}
