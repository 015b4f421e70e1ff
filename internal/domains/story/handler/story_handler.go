package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collections-backend/internal/domains/story/model"
	"collections-backend/internal/domains/story/service"
	"collections-backend/internal/shared/response"
)

type StoryHandler struct {
	service service.ServiceInterface
}

func NewStoryHandler(service service.ServiceInterface) *StoryHandler {
	return &StoryHandler{service: service}
}

// Create handles POST /v1/collections/:id/stories
func (h *StoryHandler) Create(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	story, err := h.service.Create(c.Request.Context(), collectionID, req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "STO_003", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, story.ToResponse())
}

// GetByID handles GET /v1/stories/:id
func (h *StoryHandler) GetByID(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid story id")
		return
	}

	story, err := h.service.GetByExternalID(c.Request.Context(), externalID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "STO_005", err.Error())
		return
	}

	response.Success(c, http.StatusOK, story.ToResponse())
}

// GetByCollection handles GET /v1/collections/:id/stories
func (h *StoryHandler) GetByCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	stories, err := h.service.GetByCollection(c.Request.Context(), collectionID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "STO_005", err.Error())
		return
	}

	data := make([]model.StoryResponse, len(stories))
	for i := range stories {
		data[i] = *stories[i].ToResponse()
	}

	response.Success(c, http.StatusOK, model.StoryListResponse{Data: data})
}

// Update handles PUT /v1/stories/:id
func (h *StoryHandler) Update(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid story id")
		return
	}

	var req model.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	story, err := h.service.Update(c.Request.Context(), externalID, req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "STO_006", err.Error())
		return
	}

	response.Success(c, http.StatusOK, story.ToResponse())
}

// Delete handles DELETE /v1/stories/:id
func (h *StoryHandler) Delete(c *gin.Context) {
	externalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid story id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), externalID); err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "STO_007", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
