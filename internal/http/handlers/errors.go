package handlers

import (
	"errors"
	"net/http"
	"strings"

	"adminhub/internal/domain"
	"adminhub/internal/http/middleware"
	"adminhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the payload of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything
// unrecognised is logged and reported as a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var ve domain.ValidationError
		errors.As(err, &ve)
		var details any
		if ve.Field != "" {
			details = map[string]string{ve.Field: ve.Msg}
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), err)
		msg := domain.InternalError{}.Error()
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Msg != "" {
			msg = ie.Msg
		}
		respondError(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}

// bindErrorDetails flattens validator errors to field -> rule.
func bindErrorDetails(err error) (string, map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "geçersiz istek gövdesi", nil
	}
	details := make(map[string]string, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := lowerFirst(fe.Field())
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[name] = rule
		fields = append(fields, name)
	}
	return "geçersiz alanlar: " + strings.Join(fields, ", "), details
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
