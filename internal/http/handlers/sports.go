package handlers

import (
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/repositories"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) venues(c *gin.Context) services.VenueService {
	return services.VenueService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

func (h Handler) competitions(c *gin.Context) services.CompetitionService {
	return services.CompetitionService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

func (h Handler) participants(c *gin.Context) services.ParticipantService {
	return services.ParticipantService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

func (h Handler) matches(c *gin.Context) services.MatchService {
	return services.MatchService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

// GET /api/venues
func (h Handler) ListVenues(c *gin.Context) {
	cr, valid := criteria(c, repositories.VenueFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.venues(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/venues/:id
func (h Handler) GetVenue(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	v, err := h.venues(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, v)
}

// POST /api/venues
func (h Handler) CreateVenue(c *gin.Context) {
	var req models.VenueRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.venues(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, v)
}

// PUT /api/venues/:id
func (h Handler) UpdateVenue(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.VenueRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.venues(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, v)
}

// PATCH /api/venues/:id/status
func (h Handler) UpdateVenueStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.VenueStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.venues(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, v)
}

// DELETE /api/venues/:id
func (h Handler) DeleteVenue(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.venues(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

// GET /api/competitions
func (h Handler) ListCompetitions(c *gin.Context) {
	cr, valid := criteria(c, repositories.CompetitionFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.competitions(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/competitions/:id
func (h Handler) GetCompetition(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	comp, err := h.competitions(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, comp)
}

// POST /api/competitions
func (h Handler) CreateCompetition(c *gin.Context) {
	var req models.CompetitionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	comp, err := h.competitions(c).Create(c.Request.Context(), caller(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, comp)
}

// PUT /api/competitions/:id
func (h Handler) UpdateCompetition(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.CompetitionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	comp, err := h.competitions(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, comp)
}

// PATCH /api/competitions/:id/status
func (h Handler) UpdateCompetitionStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.CompetitionStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	comp, err := h.competitions(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, comp)
}

// DELETE /api/competitions/:id
func (h Handler) DeleteCompetition(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.competitions(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

// GET /api/participants
func (h Handler) ListParticipants(c *gin.Context) {
	cr, valid := criteria(c, repositories.ParticipantFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.participants(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/participants/:id
func (h Handler) GetParticipant(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.participants(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, p)
}

// POST /api/participants
// A PARTICIPANT may only register themself.
func (h Handler) CreateParticipant(c *gin.Context) {
	var req models.ParticipantRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rc := caller(c)
	if rc.Role == domain.RoleParticipant {
		uid := rc.UserID
		req.UserID = &uid
	}
	p, err := h.participants(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, p)
}

// PUT /api/participants/:id
func (h Handler) UpdateParticipant(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.ParticipantRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.participants(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, p)
}

// PATCH /api/participants/:id/status
func (h Handler) UpdateParticipantStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.ParticipantStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.participants(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, p)
}

// PATCH /api/participants/:id/payment
func (h Handler) UpdateParticipantPayment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.PaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.participants(c).UpdatePayment(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, p)
}

// DELETE /api/participants/:id
func (h Handler) DeleteParticipant(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.participants(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

// GET /api/matches
func (h Handler) ListMatches(c *gin.Context) {
	cr, valid := criteria(c, repositories.MatchFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.matches(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/matches/:id
func (h Handler) GetMatch(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	m, err := h.matches(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, m)
}

// POST /api/matches
func (h Handler) CreateMatch(c *gin.Context) {
	var req models.MatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := h.matches(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, m)
}

// PUT /api/matches/:id
func (h Handler) UpdateMatch(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.MatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := h.matches(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, m)
}

// PATCH /api/matches/:id/status
func (h Handler) UpdateMatchStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.MatchStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := h.matches(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, m)
}

// PATCH /api/matches/:id/score
func (h Handler) UpdateMatchScore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.ScoreRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := h.matches(c).UpdateScore(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, m)
}

// DELETE /api/matches/:id
func (h Handler) DeleteMatch(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.matches(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}
