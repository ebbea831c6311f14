package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) List(c *gin.Context) {
	siteID, ok := optionalSiteFilter(c)
	if !ok {
		return
	}

	documents, err := h.documentService.List(c.Request.Context(), siteID, c.Query("module"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("documents", documents))
}

// ListBySite handles GET /sites/:id/documents.
func (h *DocumentHandler) ListBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	documents, err := h.documentService.List(c.Request.Context(), &siteID, c.Query("module"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("documents", documents))
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("document", document))
}

// CreateExternal registers a link-only document.
func (h *DocumentHandler) CreateExternal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req models.CreateExternalDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	document, err := h.documentService.CreateExternal(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("document created", document))
}

// Upload stores a multipart file and its metadata fields. The site comes
// from the site_id form field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	siteID, err := uuid.Parse(c.PostForm("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid site_id"))
		return
	}

	h.upload(c, siteID)
}

// UploadForSite handles POST /sites/:id/documents, taking the site from
// the path instead of the form.
func (h *DocumentHandler) UploadForSite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.upload(c, siteID)
}

func (h *DocumentHandler) upload(c *gin.Context, siteID uuid.UUID) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("unable to read file"))
		return
	}
	defer file.Close()

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	document, err := h.documentService.Upload(c.Request.Context(), actor, &services.UploadInput{
		SiteID:      siteID,
		Name:        c.PostForm("name"),
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
		Module:      c.PostForm("module"),
		Tags:        tags,
		Filename:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("document uploaded", document))
}

// Download streams the stored blob with the original filename.
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, rc, err := h.documentService.Download(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	mimeType := document.FileInfo.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.FileInfo.Filename))
	c.DataFromReader(http.StatusOK, document.FileInfo.Size, mimeType, rc, nil)
}

func (h *DocumentHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.DocumentCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return
	}

	comments, err := h.documentService.AddComment(c.Request.Context(), actor, id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse("comment added", comments))
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse("document deleted", nil))
}
