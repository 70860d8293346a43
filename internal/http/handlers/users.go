package handlers

import (
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/repositories"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) users(c *gin.Context) services.UserService {
	return services.UserService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

// GET /api/users
func (h Handler) ListUsers(c *gin.Context) {
	cr, valid := criteria(c, repositories.UserFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.users(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/users/:id (admin or self)
func (h Handler) GetUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if !caller(c).CanActOn(id) {
		RespondDomainError(c, domain.ForbiddenError{})
		return
	}
	u, err := h.users(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, u)
}

// POST /api/users
func (h Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.users(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, u)
}

// PUT /api/users/:id
func (h Handler) UpdateUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.UpdateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.users(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, u)
}

// PATCH /api/users/:id/status
func (h Handler) UpdateUserStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.UserStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.users(c).UpdateStatus(c.Request.Context(), caller(c), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, u)
}

// DELETE /api/users/:id
func (h Handler) DeleteUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.users(c).Delete(c.Request.Context(), caller(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}
