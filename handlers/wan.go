package handlers

import (
	"net/http"

	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
)

type WANHandler struct {
	wanService services.WANService
}

func NewWANHandler(wanService services.WANService) *WANHandler {
	return &WANHandler{wanService: wanService}
}

func (h *WANHandler) List(c *gin.Context) {
	siteID, ok := optionalSiteFilter(c)
	if !ok {
		return
	}

	deployments, err := h.wanService.List(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("WAN deployments", deployments))
}

// ListBySite handles GET /sites/:id/wan.
func (h *WANHandler) ListBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deployments, err := h.wanService.List(c.Request.Context(), &siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("WAN deployments", deployments))
}

func (h *WANHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wan, err := h.wanService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("WAN deployment", wan))
}

func (h *WANHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req models.CreateWANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	h.create(c, actor, &req)
}

// CreateForSite handles POST /sites/:id/wan-connections. The path site wins
// over whatever site_id the body carries.
func (h *WANHandler) CreateForSite(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateWANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}
	req.SiteID = siteID

	h.create(c, actor, &req)
}

func (h *WANHandler) create(c *gin.Context, actor services.Actor, req *models.CreateWANRequest) {
	wan, err := h.wanService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("WAN deployment created", wan))
}

func (h *WANHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	wan, err := h.wanService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("WAN deployment updated", wan))
}

func (h *WANHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.wanService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("WAN deployment deleted", nil))
}
