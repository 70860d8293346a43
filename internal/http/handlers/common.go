package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/http/middleware"
	"adminhub/internal/listing"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds what every endpoint needs; services are built per request
// so they carry the request id.
type Handler struct {
	DB    *sql.DB
	Cache cache.ListCache
	Auth  services.AuthService
	Now   func() time.Time
}

func (h Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "istek gövdesi boş", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		msg, details := bindErrorDetails(err)
		respondError(c, http.StatusBadRequest, "validation_error", msg, details)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (domain.ID, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "geçersiz kimlik: "+name, nil)
		return 0, false
	}
	return id, true
}

// criteria reads the list filter from the query string; only selectors the
// collection understands are kept.
func criteria(c *gin.Context, selectorKeys []string) (listing.Criteria, bool) {
	cr, err := listing.ParseCriteria(c.Request.URL.Query(), selectorKeys...)
	if err != nil {
		RespondDomainError(c, err)
		return listing.Criteria{}, false
	}
	return cr, true
}

func requestID(c *gin.Context) string { return middleware.GetRequestID(c) }

func caller(c *gin.Context) domain.RequestContext { return middleware.Caller(c) }

func ok(c *gin.Context, v any) { c.JSON(http.StatusOK, v) }

func created(c *gin.Context, v any) { c.JSON(http.StatusCreated, v) }

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }
