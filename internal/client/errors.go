package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"adminhub/internal/domain"
)

var (
	ErrTimeout     = errors.New("sunucu zamanında yanıt vermedi")
	ErrUnavailable = errors.New("sunucuya ulaşılamadı")
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func decodeAPIError(status int, raw []byte) error {
	e := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, e); err != nil || e.Message == "" {
		e.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
		e.Message = fmt.Sprintf("beklenmeyen sunucu yanıtı (%d)", status)
	}
	return e
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == status
}

// Message flattens any failure to the one line a user sees: server messages
// are shown as sent, transport failures and local checks get a fixed text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	switch {
	case errors.As(err, &ae):
		if len(ae.Details) == 0 || ae.StatusCode != http.StatusBadRequest {
			return ae.Message
		}
		fields := make([]string, 0, len(ae.Details))
		for k := range ae.Details {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		return ae.Message + " (" + strings.Join(fields, ", ") + ")"
	case errors.Is(err, ErrTimeout):
		return ErrTimeout.Error()
	case errors.Is(err, ErrUnavailable):
		return ErrUnavailable.Error()
	case errors.Is(err, context.Canceled):
		return "işlem iptal edildi"
	case domain.IsValidation(err), domain.IsConflict(err), domain.IsForbidden(err),
		domain.IsNotFound(err), domain.IsUnauthorized(err):
		return err.Error()
	default:
		return "beklenmeyen bir hata oluştu"
	}
}
