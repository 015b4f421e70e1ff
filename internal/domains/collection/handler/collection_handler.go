package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collections-backend/internal/domains/collection/model"
	"collections-backend/internal/domains/collection/service"
	"collections-backend/internal/shared/response"
)

type CollectionHandler struct {
	service service.ServiceInterface
}

func NewCollectionHandler(service service.ServiceInterface) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// Create handles POST /v1/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req model.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	collection, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_002", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, collection.ToResponse())
}

// GetByID handles GET /v1/collections/:id
func (h *CollectionHandler) GetByID(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	collection, err := h.service.GetByExternalID(c.Request.Context(), externalID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_004", err.Error())
		return
	}

	response.Success(c, http.StatusOK, collection.ToResponse())
}

// GetBySlug handles GET /v1/collections/slug/:slug
func (h *CollectionHandler) GetBySlug(c *gin.Context) {
	collection, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_004", err.Error())
		return
	}

	response.Success(c, http.StatusOK, collection.ToResponse())
}

// GetAll handles GET /v1/collections
func (h *CollectionHandler) GetAll(c *gin.Context) {
	filter := model.CollectionFilter{
		Status: model.Status(c.Query("status")),
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sort_by", "created_at"),
		Order:  c.DefaultQuery("order", "desc"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	collections, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_005", err.Error())
		return
	}

	data := make([]model.CollectionResponse, len(collections))
	for i := range collections {
		data[i] = *collections[i].ToResponse()
	}

	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}
	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Page:  page,
		Limit: filter.Limit,
		Total: total,
	})
}

// Update handles PUT /v1/collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	collection, err := h.service.Update(c.Request.Context(), externalID, req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_006", err.Error())
		return
	}

	response.Success(c, http.StatusOK, collection.ToResponse())
}

// Publish handles POST /v1/collections/:id/publish
func (h *CollectionHandler) Publish(c *gin.Context) {
	h.transition(c, h.service.Publish)
}

// Unpublish handles POST /v1/collections/:id/unpublish
func (h *CollectionHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.service.Unpublish)
}

// Archive handles POST /v1/collections/:id/archive
func (h *CollectionHandler) Archive(c *gin.Context) {
	h.transition(c, h.service.Archive)
}

func (h *CollectionHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*model.Collection, error)) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	collection, err := fn(c.Request.Context(), externalID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_006", err.Error())
		return
	}

	response.Success(c, http.StatusOK, collection.ToResponse())
}

// Delete handles DELETE /v1/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), externalID); err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "COL_007", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	value := c.Query(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
