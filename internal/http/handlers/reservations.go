package handlers

import (
	"net/http"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/repositories"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) reservations(c *gin.Context) services.ReservationService {
	return services.ReservationService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c), Now: h.Now}
}

// GET /api/reservations
func (h Handler) ListReservations(c *gin.Context) {
	cr, valid := criteria(c, repositories.ReservationFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.reservations(c).List(c.Request.Context(), caller(c), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

type availabilityQuery struct {
	VenueID   domain.ID `form:"venueId" binding:"required,gt=0"`
	StartTime time.Time `form:"startTime" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"endTime" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// GET /api/reservations/availability?venueId=&startTime=&endTime=
func (h Handler) ReservationAvailability(c *gin.Context) {
	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		msg, details := bindErrorDetails(err)
		respondError(c, http.StatusBadRequest, "validation_error", msg, details)
		return
	}
	a, err := h.reservations(c).Availability(c.Request.Context(), q.VenueID, q.StartTime, q.EndTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, a)
}

// GET /api/reservations/:id
func (h Handler) GetReservation(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	r, err := h.reservations(c).Get(c.Request.Context(), caller(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, r)
}

// POST /api/reservations
func (h Handler) CreateReservation(c *gin.Context) {
	var req models.ReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	r, err := h.reservations(c).Create(c.Request.Context(), caller(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, r)
}

// PUT /api/reservations/:id
func (h Handler) UpdateReservation(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.ReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	r, err := h.reservations(c).Update(c.Request.Context(), caller(c), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, r)
}

// PATCH /api/reservations/:id/cancel
func (h Handler) CancelReservation(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	r, err := h.reservations(c).Cancel(c.Request.Context(), caller(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, r)
}

// PATCH /api/reservations/:id/status
func (h Handler) UpdateReservationStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.ReservationStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	r, err := h.reservations(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, r)
}

// DELETE /api/reservations/:id
func (h Handler) DeleteReservation(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.reservations(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}
