package handlers

import (
	"net/http"

	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
)

type ExternalToolHandler struct {
	toolService services.ExternalToolService
}

func NewExternalToolHandler(toolService services.ExternalToolService) *ExternalToolHandler {
	return &ExternalToolHandler{toolService: toolService}
}

func (h *ExternalToolHandler) List(c *gin.Context) {
	siteID, ok := optionalSiteFilter(c)
	if !ok {
		return
	}

	tools, err := h.toolService.List(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("external tools", tools))
}

// ListBySite handles GET /sites/:id/external-tools.
func (h *ExternalToolHandler) ListBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tools, err := h.toolService.List(c.Request.Context(), &siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("external tools", tools))
}

func (h *ExternalToolHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tool, err := h.toolService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("external tool", tool))
}

func (h *ExternalToolHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req models.CreateExternalToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	h.create(c, actor, &req)
}

// CreateForSite handles POST /sites/:id/external-tools. The path site wins
// over whatever site_id the body carries.
func (h *ExternalToolHandler) CreateForSite(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateExternalToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}
	req.SiteID = siteID

	h.create(c, actor, &req)
}

func (h *ExternalToolHandler) create(c *gin.Context, actor services.Actor, req *models.CreateExternalToolRequest) {
	tool, err := h.toolService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("external tool created", tool))
}

func (h *ExternalToolHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateExternalToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	tool, err := h.toolService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("external tool updated", tool))
}

func (h *ExternalToolHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.toolService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("external tool deleted", nil))
}
