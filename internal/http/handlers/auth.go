package handlers

import (
	"adminhub/internal/domain/models"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) auth(c *gin.Context) services.AuthService {
	svc := h.Auth
	svc.RequestID = requestID(c)
	if svc.DB == nil {
		svc.DB = h.DB
	}
	return svc
}

// POST /api/auth/login
func (h Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := h.auth(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, resp)
}

// POST /api/auth/register
func (h Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.auth(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, u)
}

// GET /api/auth/me
func (h Handler) Me(c *gin.Context) {
	u, err := h.auth(c).Me(c.Request.Context(), caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, u)
}
