package handlers

import (
	"net/http"

	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeploymentHandler struct {
	deploymentService services.DeploymentService
}

func NewDeploymentHandler(deploymentService services.DeploymentService) *DeploymentHandler {
	return &DeploymentHandler{deploymentService: deploymentService}
}

// deploymentID reads the deployment id from the route. Flat routes bind it
// to :id; routes nested under a site bind it to :deploymentId because :id
// is taken by the site there.
func deploymentID(c *gin.Context) (uuid.UUID, bool) {
	if c.Param("deploymentId") != "" {
		return parseIDParam(c, "deploymentId")
	}
	return parseIDParam(c, "id")
}

// ListBySite handles GET /sites/:id/deployments.
func (h *DeploymentHandler) ListBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deployments, err := h.deploymentService.ListBySite(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("deployments", deployments))
}

func (h *DeploymentHandler) ListArchivedBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	archived, err := h.deploymentService.ListArchivedBySite(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("archived deployments", archived))
}

func (h *DeploymentHandler) Get(c *gin.Context) {
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	deployment, err := h.deploymentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("deployment", deployment))
}

func (h *DeploymentHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	deployment, err := h.deploymentService.Create(c.Request.Context(), actor, siteID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("deployment created", deployment))
}

func (h *DeploymentHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	var req models.UpdateDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	deployment, err := h.deploymentService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("deployment updated", deployment))
}

func (h *DeploymentHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	if err := h.deploymentService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("deployment deleted", nil))
}

func (h *DeploymentHandler) Archive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	if err := h.deploymentService.Archive(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("deployment archived", nil))
}

func (h *DeploymentHandler) ListComments(c *gin.Context) {
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	comments, err := h.deploymentService.ListComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("comments", comments))
}

func (h *DeploymentHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	var req models.DeploymentCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	comment, err := h.deploymentService.AddComment(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("comment added", comment))
}

func (h *DeploymentHandler) ListTasks(c *gin.Context) {
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	tasks, err := h.deploymentService.ListTasks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("tasks", tasks))
}

func (h *DeploymentHandler) AddTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	task, err := h.deploymentService.AddTask(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("task added", task))
}

func (h *DeploymentHandler) UpdateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	task, err := h.deploymentService.UpdateTask(c.Request.Context(), actor, id, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("task updated", task))
}

func (h *DeploymentHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := deploymentID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.deploymentService.DeleteTask(c.Request.Context(), actor, id, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("task deleted", nil))
}
