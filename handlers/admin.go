package handlers

import (
	"net/http"

	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ResetDatabase wipes all data except user accounts. Admin role plus a
// matching operator email are both required.
func (h *AdminHandler) ResetDatabase(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.adminService.ResetDatabase(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("database reset", nil))
}
