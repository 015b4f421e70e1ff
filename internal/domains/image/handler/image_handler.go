package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collections-backend/internal/domains/image/model"
	"collections-backend/internal/domains/image/service"
	"collections-backend/internal/shared/response"
	"collections-backend/internal/shared/utils"
)

type ImageHandler struct {
	service service.ServiceInterface
}

func NewImageHandler(service service.ServiceInterface) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /v1/images
// Multipart form: file, entity_id, entity_type.
func (h *ImageHandler) Upload(c *gin.Context) {
	entityID := utils.ParseStringToUUID(c.PostForm("entity_id"))
	if entityID == uuid.Nil {
		response.BadRequest(c, "Invalid entity id")
		return
	}
	entityType := c.PostForm("entity_type")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "Cannot read uploaded file")
		return
	}

	image, err := h.service.Upload(c.Request.Context(), entityID, entityType, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "IMG_004", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, image.ToResponse())
}

// GetByEntity handles GET /v1/images?entity_id=...&entity_type=...
func (h *ImageHandler) GetByEntity(c *gin.Context) {
	entityID := utils.ParseStringToUUID(c.Query("entity_id"))
	if entityID == uuid.Nil {
		response.BadRequest(c, "Invalid entity id")
		return
	}

	images, err := h.service.GetByEntity(c.Request.Context(), entityID, c.Query("entity_type"))
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "IMG_005", err.Error())
		return
	}

	data := make([]model.ImageResponse, len(images))
	for i := range images {
		data[i] = *images[i].ToResponse()
	}

	response.Success(c, http.StatusOK, data)
}

// Delete handles DELETE /v1/images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid image id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), externalID); err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "IMG_007", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
