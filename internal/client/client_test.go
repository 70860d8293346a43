package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, StaticToken("tok-1"), DefaultConfig())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListSendsTokenAndCriteria(t *testing.T) {
	var gotAuth, gotQuery, gotRID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/assets", r.URL.Path)
		writeJSON(w, http.StatusOK, []models.Asset{{ID: 1, Name: "Laptop", Status: domain.AssetAvailable}})
	})

	cr := listing.Criteria{}.WithSearch("lap").With("status", "1")
	got, err := c.Assets().List(context.Background(), cr)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Laptop", got[0].Name)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRID)
	assert.Equal(t, "q=lap&status=1", gotQuery)
}

func TestEmptyListIsNotNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	got, err := c.Venues().List(context.Background(), listing.Criteria{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestServerErrorsFlattenToMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error": "kategori: kullanımda", "code": "conflict", "message": "kategori: kullanımda",
		})
	})
	err := c.Categories().Delete(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusConflict))
	assert.Equal(t, "kategori: kullanımda", Message(err))
}

func TestValidationDetailsListFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code": "validation_error", "message": "geçersiz alanlar",
			"details": map[string]string{"name": "required", "code": "required"},
		})
	})
	_, err := c.Categories().Create(context.Background(), models.CategoryRequest{})
	assert.Equal(t, "geçersiz alanlar (code, name)", Message(err))
}

func TestNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})
	_, err := c.Me(context.Background())
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, "beklenmeyen sunucu yanıtı (502)", Message(err))
}

func TestActiveAssignmentNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	got, err := c.ActiveAssignment(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatusAndScorePatches(t *testing.T) {
	var bodies []map[string]any
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var b map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		bodies = append(bodies, b)
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 7})
	})

	_, err := SetStatus(context.Background(), c.Matches(), 7, domain.MatchInProgress)
	require.NoError(t, err)
	_, err = c.UpdateScore(context.Background(), 7, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/matches/7/status", "/api/matches/7/score"}, paths)
	assert.Equal(t, "IN_PROGRESS", bodies[0]["status"])
	assert.Equal(t, float64(3), bodies[1]["scoreParticipant1"])
	assert.Equal(t, float64(0), bodies[1]["scoreParticipant2"])
}

func TestReservationCancelAndAvailability(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/reservations/4/cancel":
			writeJSON(w, http.StatusOK, models.Reservation{ID: 4, Status: domain.ReservationCancelled})
		case "/api/reservations/availability":
			assert.Equal(t, "3", r.URL.Query().Get("venueId"))
			assert.Equal(t, "2024-05-11T10:00:00Z", r.URL.Query().Get("startTime"))
			assert.Equal(t, "2024-05-11T12:00:00Z", r.URL.Query().Get("endTime"))
			writeJSON(w, http.StatusOK, map[string]any{"venueId": 3, "isAvailable": false,
				"conflicts": []map[string]any{{"id": 9}}})
		}
	})

	r, err := c.CancelReservation(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, r.Status)

	start := time.Date(2024, 5, 11, 10, 0, 0, 0, time.UTC)
	a, err := c.Availability(context.Background(), 3, start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, a.Available)
	require.Len(t, a.Conflicts, 1)
	assert.Equal(t, domain.ID(9), a.Conflicts[0].ID)
	assert.Equal(t, []string{"PATCH /api/reservations/4/cancel", "GET /api/reservations/availability"}, calls)
}

func TestReceiptFilename(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `inline; filename="ZIMMET_42_DMB_001.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3"))
	})
	pdf, name, err := c.Receipt(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "ZIMMET_42_DMB_001.pdf", name)
	assert.Equal(t, "%PDF-1.3", string(pdf))
}

func TestTimeoutAndUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, nil, Config{ReadTimeout: 50 * time.Millisecond})
	_, err := c.Users().List(context.Background(), listing.Criteria{})
	assert.True(t, errors.Is(err, ErrTimeout), err)
	assert.Equal(t, ErrTimeout.Error(), Message(err))

	dead := New("http://127.0.0.1:1", nil, DefaultConfig())
	_, err = dead.Users().List(context.Background(), listing.Criteria{})
	assert.True(t, errors.Is(err, ErrUnavailable), err)
	assert.Equal(t, ErrUnavailable.Error(), Message(err))
}

func TestMessageForLocalErrors(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "işlem iptal edildi", Message(context.Canceled))
	assert.Equal(t, "bu işlem için yetkiniz yok", Message(domain.ForbiddenError{}))
	assert.Equal(t, "beklenmeyen bir hata oluştu", Message(errors.New("x")))
}
