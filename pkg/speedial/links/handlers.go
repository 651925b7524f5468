package links

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles link-related requests
type Handler struct {
	service *Service
}

// NewHandler creates a new links handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Owner    string `json:"owner"`
}

// UpdateLinkRequest represents the request to update a link
type UpdateLinkRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Owner    string `json:"owner"`
}

// respondError maps service errors onto status codes. Anything that is
// neither a validation nor a not-found error becomes a 500 with the
// operation's generic message.
func respondError(c *gin.Context, err error, fallback string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// List returns links, filtered by owner when given
// @Summary List links
// @Description Get all links for an owner; without an owner, the whole store
// @Tags links
// @Produce json
// @Param owner query string false "Owner username"
// @Success 200 {array} models.Link
// @Router /links [get]
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Query("owner")))
}

// Create creates a new link for an owner
// @Summary Create a link
// @Description Create a new link owned by a username
// @Tags links
// @Accept json
// @Produce json
// @Param request body CreateLinkRequest true "Link details"
// @Success 201 {object} models.Link
// @Failure 400 {object} map[string]string "Validation error"
// @Router /links [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	link, err := h.service.Create(req.Title, req.URL, req.Category, req.Owner)
	if err != nil {
		respondError(c, err, "Failed to create link")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Update updates an existing link
// @Summary Update a link
// @Description Update the link matching both id and owner
// @Tags links
// @Accept json
// @Produce json
// @Param request body UpdateLinkRequest true "Updated link details"
// @Success 200 {object} models.Link
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Link not found"
// @Router /links [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	link, err := h.service.Update(req.ID, req.Title, req.URL, req.Category, req.Owner)
	if err != nil {
		respondError(c, err, "Failed to update link")
		return
	}
	c.JSON(http.StatusOK, link)
}

// Delete deletes a link
// @Summary Delete a link
// @Description Delete the link matching both id and owner
// @Tags links
// @Produce json
// @Param id query string true "Link ID"
// @Param owner query string true "Owner username"
// @Success 200 {object} map[string]string "Link deleted"
// @Failure 400 {object} map[string]string "Missing parameters"
// @Failure 404 {object} map[string]string "Link not found"
// @Router /links [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Query("id"), c.Query("owner")); err != nil {
		respondError(c, err, "Failed to delete link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

// RegisterRoutes registers link routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/links", h.List)
	rg.POST("/links", h.Create)
	rg.PUT("/links", h.Update)
	rg.DELETE("/links", h.Delete)
}
