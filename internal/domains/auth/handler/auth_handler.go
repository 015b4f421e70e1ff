package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collections-backend/internal/domains/auth/model"
	"collections-backend/internal/domains/auth/service"
	"collections-backend/internal/shared/response"
)

type AuthHandler struct {
	service service.ServiceInterface
}

func NewAuthHandler(service service.ServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), "AUTH_002", err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
