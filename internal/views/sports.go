package views

import (
	"context"
	"fmt"
	"time"

	"adminhub/internal/client"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

func venueID(v models.Venue) domain.ID { return v.ID }

func competitionID(c models.Competition) domain.ID { return c.ID }

func participantID(p models.Participant) domain.ID { return p.ID }

func matchID(m models.Match) domain.ID { return m.ID }

type VenuesData struct {
	Venues []models.Venue
}

type VenuesPage struct {
	page[VenuesData]
	list collection[models.Venue]
}

func NewVenuesPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *VenuesPage {
	return &VenuesPage{
		page: newPage("venues", api, rc, confirm,
			listTask(api.Venues().List, func(d *VenuesData) *[]models.Venue { return &d.Venues })),
		list: collection[models.Venue]{spec: VenueSpec},
	}
}

func (p *VenuesPage) Filtered(cr listing.Criteria) []models.Venue {
	d, v := p.data()
	return p.list.filter(v, d.Venues, cr)
}

type VenueStats struct {
	Total         int
	Active        int
	Indoor        int
	TotalCapacity int
}

func VenueStatsOf(items []models.Venue) VenueStats {
	return VenueStats{
		Total:         len(items),
		Active:        listing.Count(items, func(v models.Venue) bool { return v.Status == domain.VenueActive }),
		Indoor:        listing.Count(items, func(v models.Venue) bool { return v.IsIndoor }),
		TotalCapacity: listing.Sum(items, func(v models.Venue) int { return v.Capacity }),
	}
}

func (p *VenuesPage) NextStatuses(id domain.ID) []domain.VenueStatus {
	d, _ := p.data()
	v, known := find(d.Venues, id, venueID)
	return nextStatuses(domain.VenueStatuses, v.Status, known)
}

func (p *VenuesPage) Create(ctx context.Context, req models.VenueRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "venue.create",
		Guard:  p.guard(domain.ActManageVenues, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Venues().Create(ctx, req)) },
	})
}

func (p *VenuesPage) Update(ctx context.Context, id domain.ID, req models.VenueRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "venue.update",
		Guard:  p.guard(domain.ActManageVenues, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Venues().Update(ctx, id, req)) },
	})
}

func (p *VenuesPage) SetStatus(ctx context.Context, id domain.ID, status domain.VenueStatus) Result {
	d, _ := p.data()
	v, known := find(d.Venues, id, venueID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "venue.status",
		Guard:  p.guard(domain.ActManageVenues, nil, transition(domain.VenueStatuses, v.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Venues(), id, status))
		},
	})
}

func (p *VenuesPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	v, _ := find(d.Venues, id, venueID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "venue.delete",
		Prompt: fmt.Sprintf("%q tesisi silinsin mi?", v.Name),
		Guard:  p.guard(domain.ActManageVenues, nil),
		Do:     func(ctx context.Context) error { return p.api.Venues().Delete(ctx, id) },
	})
}

type CompetitionsData struct {
	Competitions []models.Competition
	Venues       []models.Venue
}

type CompetitionsPage struct {
	page[CompetitionsData]
	list collection[models.Competition]
}

func NewCompetitionsPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *CompetitionsPage {
	return &CompetitionsPage{
		page: newPage("competitions", api, rc, confirm,
			listTask(api.Competitions().List, func(d *CompetitionsData) *[]models.Competition { return &d.Competitions }),
			listTask(api.Venues().List, func(d *CompetitionsData) *[]models.Venue { return &d.Venues })),
		list: collection[models.Competition]{spec: CompetitionSpec},
	}
}

func (p *CompetitionsPage) Filtered(cr listing.Criteria) []models.Competition {
	d, v := p.data()
	return p.list.filter(v, d.Competitions, cr)
}

// ByStatus counts competitions per status for the summary tiles.
func ByStatus(items []models.Competition) map[domain.CompetitionStatus]int {
	return listing.CountBy(items, func(c models.Competition) domain.CompetitionStatus { return c.Status })
}

// ActiveVenues are the venues a new competition may be placed in.
func (p *CompetitionsPage) ActiveVenues() []models.Venue {
	d, _ := p.data()
	return listing.Filter(d.Venues, VenueSpec, listing.Criteria{}.With("status", string(domain.VenueActive)))
}

func (p *CompetitionsPage) NextStatuses(id domain.ID) []domain.CompetitionStatus {
	d, _ := p.data()
	c, known := find(d.Competitions, id, competitionID)
	return nextStatuses(domain.CompetitionStatuses, c.Status, known)
}

func checkDates(req models.CompetitionRequest) func() error {
	return func() error {
		if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
			return domain.ValidationError{Field: "endDate", Msg: "bitiş tarihi başlangıçtan önce olamaz"}
		}
		if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartDate) {
			return domain.ValidationError{Field: "registrationDeadline", Msg: "kayıt son tarihi başlangıçtan sonra olamaz"}
		}
		return nil
	}
}

func (p *CompetitionsPage) Create(ctx context.Context, req models.CompetitionRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "competition.create",
		Guard:  p.guard(domain.ActManageCompetitions, req, checkDates(req)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Competitions().Create(ctx, req)) },
	})
}

func (p *CompetitionsPage) Update(ctx context.Context, id domain.ID, req models.CompetitionRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "competition.update",
		Guard:  p.guard(domain.ActManageCompetitions, req, checkDates(req)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Competitions().Update(ctx, id, req)) },
	})
}

func (p *CompetitionsPage) SetStatus(ctx context.Context, id domain.ID, status domain.CompetitionStatus) Result {
	d, _ := p.data()
	c, known := find(d.Competitions, id, competitionID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "competition.status",
		Guard:  p.guard(domain.ActManageCompetitions, nil, transition(domain.CompetitionStatuses, c.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Competitions(), id, status))
		},
	})
}

func (p *CompetitionsPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	c, _ := find(d.Competitions, id, competitionID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "competition.delete",
		Prompt: fmt.Sprintf("%q müsabakası ve tüm kayıtları silinsin mi?", c.Name),
		Guard:  p.guard(domain.ActManageCompetitions, nil),
		Do:     func(ctx context.Context) error { return p.api.Competitions().Delete(ctx, id) },
	})
}

type ParticipantsData struct {
	Participants []models.Participant
	Competitions []models.Competition
}

type ParticipantStats struct {
	Total     int
	Confirmed int
	Paid      int
	Pending   int
}

type ParticipantsPage struct {
	page[ParticipantsData]
	list collection[models.Participant]
}

func NewParticipantsPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *ParticipantsPage {
	return &ParticipantsPage{
		page: newPage("participants", api, rc, confirm,
			listTask(api.Participants().List, func(d *ParticipantsData) *[]models.Participant { return &d.Participants }),
			listTask(api.Competitions().List, func(d *ParticipantsData) *[]models.Competition { return &d.Competitions })),
		list: collection[models.Participant]{spec: ParticipantSpec},
	}
}

func (p *ParticipantsPage) Filtered(cr listing.Criteria) []models.Participant {
	d, v := p.data()
	return p.list.filter(v, d.Participants, cr)
}

func ParticipantStatsOf(items []models.Participant) ParticipantStats {
	return ParticipantStats{
		Total:     len(items),
		Confirmed: listing.Count(items, func(p models.Participant) bool { return p.Status == domain.ParticipantConfirmed }),
		Paid:      listing.Count(items, func(p models.Participant) bool { return p.PaymentStatus == domain.PaymentPaid }),
		Pending:   listing.Count(items, func(p models.Participant) bool { return p.PaymentStatus == domain.PaymentPending }),
	}
}

// OpenCompetitions are those still taking entries with a free slot.
func (p *ParticipantsPage) OpenCompetitions() []models.Competition {
	d, _ := p.data()
	out := []models.Competition{}
	for _, c := range d.Competitions {
		if acceptsEntries(c) == nil {
			out = append(out, c)
		}
	}
	return out
}

func acceptsEntries(c models.Competition) error {
	if c.Status != domain.CompetitionPlanned && c.Status != domain.CompetitionRegistrationOpen {
		return domain.ConflictError{Resource: "katılımcı", Msg: "müsabaka kayıt kabul etmiyor: " + domain.CompetitionStatuses.Label(c.Status)}
	}
	if c.MaxParticipants > 0 && c.ParticipantCount >= c.MaxParticipants {
		return domain.ConflictError{Resource: "katılımcı", Msg: "müsabaka kontenjanı dolu"}
	}
	return nil
}

func (p *ParticipantsPage) Register(ctx context.Context, req models.ParticipantRequest) Result {
	d, _ := p.data()
	c, known := find(d.Competitions, req.CompetitionID, competitionID)
	if p.caller.Role == domain.RoleParticipant {
		uid := p.caller.UserID
		req.UserID = &uid
	}
	return p.disp.Dispatch(ctx, Mutation{
		Action: "participant.create",
		Guard: p.guard(domain.ActRegisterParticipant, req, func() error {
			if !known {
				return nil
			}
			return acceptsEntries(c)
		}),
		Do: func(ctx context.Context) error { return ignore(p.api.Participants().Create(ctx, req)) },
	})
}

func (p *ParticipantsPage) Update(ctx context.Context, id domain.ID, req models.ParticipantRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "participant.update",
		Guard:  p.guard(domain.ActManageParticipants, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Participants().Update(ctx, id, req)) },
	})
}

func (p *ParticipantsPage) NextStatuses(id domain.ID) []domain.ParticipantStatus {
	d, _ := p.data()
	pt, known := find(d.Participants, id, participantID)
	return nextStatuses(domain.ParticipantStatuses, pt.Status, known)
}

func (p *ParticipantsPage) SetStatus(ctx context.Context, id domain.ID, status domain.ParticipantStatus) Result {
	d, _ := p.data()
	pt, known := find(d.Participants, id, participantID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "participant.status",
		Guard:  p.guard(domain.ActManageParticipants, nil, transition(domain.ParticipantStatuses, pt.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Participants(), id, status))
		},
	})
}

func (p *ParticipantsPage) SetPayment(ctx context.Context, id domain.ID, status domain.PaymentStatus) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "participant.payment",
		Guard: p.guard(domain.ActManageParticipants, nil, func() error {
			if !domain.PaymentStatuses.Valid(status) {
				return domain.ValidationError{Field: "paymentStatus", Msg: "geçersiz ödeme durumu"}
			}
			return nil
		}),
		Do: func(ctx context.Context) error { return ignore(p.api.UpdatePayment(ctx, id, status)) },
	})
}

func (p *ParticipantsPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	pt, _ := find(d.Participants, id, participantID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "participant.delete",
		Prompt: fmt.Sprintf("%s kaydı silinsin mi?", pt.Name()),
		Guard:  p.guard(domain.ActManageParticipants, nil),
		Do:     func(ctx context.Context) error { return p.api.Participants().Delete(ctx, id) },
	})
}

type MatchesData struct {
	Matches      []models.Match
	Competitions []models.Competition
	Participants []models.Participant
}

type MatchStats struct {
	Total      int
	Scheduled  int
	InProgress int
	Completed  int
}

type MatchesPage struct {
	page[MatchesData]
	list collection[models.Match]
}

func NewMatchesPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *MatchesPage {
	return &MatchesPage{
		page: newPage("matches", api, rc, confirm,
			listTask(api.Matches().List, func(d *MatchesData) *[]models.Match { return &d.Matches }),
			listTask(api.Competitions().List, func(d *MatchesData) *[]models.Competition { return &d.Competitions }),
			listTask(api.Participants().List, func(d *MatchesData) *[]models.Participant { return &d.Participants })),
		list: collection[models.Match]{spec: MatchSpec},
	}
}

func (p *MatchesPage) Filtered(cr listing.Criteria) []models.Match {
	d, v := p.data()
	return p.list.filter(v, d.Matches, cr)
}

func MatchStatsOf(items []models.Match) MatchStats {
	by := listing.CountBy(items, func(m models.Match) domain.MatchStatus { return m.Status })
	return MatchStats{
		Total:      len(items),
		Scheduled:  by[domain.MatchScheduled],
		InProgress: by[domain.MatchInProgress],
		Completed:  by[domain.MatchCompleted],
	}
}

// Upcoming lists the next n scheduled matches from now on.
func (p *MatchesPage) Upcoming(now time.Time, n int) []models.Match {
	d, _ := p.data()
	scheduled := listing.Filter(d.Matches, MatchSpec, listing.Criteria{}.With("status", string(domain.MatchScheduled)))
	return listing.Earliest(scheduled, func(m models.Match) time.Time { return m.MatchDate }, now, n)
}

// Entrants are the participants a match of competitionID can be drawn from.
func (p *MatchesPage) Entrants(competitionID domain.ID) []models.Participant {
	d, _ := p.data()
	return listing.Filter(d.Participants, ParticipantSpec, listing.Criteria{}.With("competitionId", idString(competitionID)))
}

func checkSides(req models.MatchRequest) func() error {
	return func() error {
		if req.Participant1ID != nil && req.Participant2ID != nil && *req.Participant1ID == *req.Participant2ID {
			return domain.ValidationError{Field: "participant2Id", Msg: "bir katılımcı kendisiyle eşleşemez"}
		}
		return nil
	}
}

func (p *MatchesPage) Create(ctx context.Context, req models.MatchRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "match.create",
		Guard:  p.guard(domain.ActManageMatches, req, checkSides(req)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Matches().Create(ctx, req)) },
	})
}

func (p *MatchesPage) Update(ctx context.Context, id domain.ID, req models.MatchRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "match.update",
		Guard:  p.guard(domain.ActManageMatches, req, checkSides(req)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Matches().Update(ctx, id, req)) },
	})
}

func (p *MatchesPage) NextStatuses(id domain.ID) []domain.MatchStatus {
	d, _ := p.data()
	m, known := find(d.Matches, id, matchID)
	return nextStatuses(domain.MatchStatuses, m.Status, known)
}

func (p *MatchesPage) SetStatus(ctx context.Context, id domain.ID, status domain.MatchStatus) Result {
	d, _ := p.data()
	m, known := find(d.Matches, id, matchID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "match.status",
		Guard:  p.guard(domain.ActOfficiateMatches, nil, transition(domain.MatchStatuses, m.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Matches(), id, status))
		},
	})
}

func (p *MatchesPage) SetScore(ctx context.Context, id domain.ID, score1, score2 int) Result {
	d, _ := p.data()
	m, known := find(d.Matches, id, matchID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "match.score",
		Guard: p.guard(domain.ActOfficiateMatches, nil, func() error {
			if score1 < 0 || score2 < 0 {
				return domain.ValidationError{Field: "score", Msg: "skor negatif olamaz"}
			}
			if known && m.Status != domain.MatchInProgress && m.Status != domain.MatchCompleted {
				return domain.ConflictError{Resource: "maç", Msg: "skor yalnızca devam eden veya tamamlanan maça girilebilir"}
			}
			return nil
		}),
		Do: func(ctx context.Context) error { return ignore(p.api.UpdateScore(ctx, id, score1, score2)) },
	})
}

func (p *MatchesPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	m, _ := find(d.Matches, id, matchID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "match.delete",
		Prompt: fmt.Sprintf("%d numaralı maç silinsin mi?", m.MatchNumber),
		Guard:  p.guard(domain.ActManageMatches, nil),
		Do:     func(ctx context.Context) error { return p.api.Matches().Delete(ctx, id) },
	})
}

type SportsDashboardPage struct {
	page[models.SportsDashboard]
}

func NewSportsDashboardPage(api *client.Client, rc domain.RequestContext) *SportsDashboardPage {
	return &SportsDashboardPage{
		page: newPage[models.SportsDashboard]("sports_dashboard", api, rc, nil,
			func(ctx context.Context, d *models.SportsDashboard) (err error) {
				*d, err = api.SportsDashboard(ctx)
				return err
			}),
	}
}

func (p *SportsDashboardPage) Dashboard() models.SportsDashboard {
	d, _ := p.data()
	return d
}
