package views

import (
	"strconv"
	"strings"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

// Selector keys match the query parameters the API understands, so one
// Criteria can drive both the server query and the local filter.

func idString(id domain.ID) string { return strconv.FormatInt(id, 10) }

func optID(id *domain.ID) string {
	if id == nil {
		return ""
	}
	return idString(*id)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func refName(u *models.UserRef) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// assetStatusValue accepts a status code or name, as the API does.
func assetStatusValue(v string) string {
	s, err := domain.ParseAssetStatus(v)
	if err != nil {
		return v
	}
	return s.String()
}

func boolValue(v string) string {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return strconv.FormatBool(b)
}

var AssetSpec = listing.Spec[models.Asset]{
	Text: []func(models.Asset) string{
		func(a models.Asset) string { return a.Name },
		func(a models.Asset) string { return a.AssetCode },
		func(a models.Asset) string { return a.Brand },
		func(a models.Asset) string { return a.Model },
		func(a models.Asset) string { return a.SerialNumber },
	},
	Selectors: map[string]func(models.Asset) string{
		"status":     func(a models.Asset) string { return a.Status.String() },
		"categoryId": func(a models.Asset) string { return idString(a.CategoryID) },
		"userId":     func(a models.Asset) string { return optID(a.CurrentAssignedUserID) },
	},
	Normalize: map[string]func(string) string{"status": assetStatusValue},
	Date:      func(a models.Asset) *time.Time { return a.PurchaseDate },
}

var CategorySpec = listing.Spec[models.Category]{
	Text: []func(models.Category) string{
		func(c models.Category) string { return c.Name },
		func(c models.Category) string { return c.Description },
		func(c models.Category) string { return c.Code },
	},
	Date: func(c models.Category) *time.Time { return timePtr(c.CreatedDate) },
}

var AssignmentSpec = listing.Spec[models.Assignment]{
	Text: []func(models.Assignment) string{
		func(a models.Assignment) string {
			if a.Asset == nil {
				return ""
			}
			return a.Asset.Name
		},
		func(a models.Assignment) string {
			if a.Asset == nil {
				return ""
			}
			return a.Asset.AssetCode
		},
		func(a models.Assignment) string { return refName(a.User) },
		func(a models.Assignment) string { return a.Notes },
	},
	Selectors: map[string]func(models.Assignment) string{
		"type":    func(a models.Assignment) string { return a.Type.String() },
		"userId":  func(a models.Assignment) string { return idString(a.UserID) },
		"assetId": func(a models.Assignment) string { return idString(a.AssetID) },
	},
	Date: func(a models.Assignment) *time.Time { return timePtr(a.AssignmentDate) },
}

var UserSpec = listing.Spec[models.User]{
	Text: []func(models.User) string{
		func(u models.User) string { return u.Username },
		func(u models.User) string { return u.Email },
		func(u models.User) string { return u.FirstName },
		func(u models.User) string { return u.LastName },
	},
	Selectors: map[string]func(models.User) string{
		"status": func(u models.User) string { return string(u.Status) },
		"role":   func(u models.User) string { return string(u.Role) },
	},
	Date: func(u models.User) *time.Time { return timePtr(u.CreatedAt) },
}

var VenueSpec = listing.Spec[models.Venue]{
	Text: []func(models.Venue) string{
		func(v models.Venue) string { return v.Name },
		func(v models.Venue) string { return v.Address },
		func(v models.Venue) string { return v.City },
	},
	Selectors: map[string]func(models.Venue) string{
		"status": func(v models.Venue) string { return string(v.Status) },
		"city":   func(v models.Venue) string { return v.City },
		"indoor": func(v models.Venue) string { return strconv.FormatBool(v.IsIndoor) },
	},
	Normalize: map[string]func(string) string{"indoor": boolValue},
}

var CompetitionSpec = listing.Spec[models.Competition]{
	Text: []func(models.Competition) string{
		func(c models.Competition) string { return c.Name },
		func(c models.Competition) string { return c.Description },
	},
	Selectors: map[string]func(models.Competition) string{
		"status":      func(c models.Competition) string { return string(c.Status) },
		"sportType":   func(c models.Competition) string { return string(c.SportType) },
		"venueId":     func(c models.Competition) string { return optID(c.VenueID) },
		"organizerId": func(c models.Competition) string { return optID(c.OrganizerID) },
	},
	Date: func(c models.Competition) *time.Time { return timePtr(c.StartDate) },
}

var ParticipantSpec = listing.Spec[models.Participant]{
	Text: []func(models.Participant) string{
		models.Participant.Name,
		func(p models.Participant) string { return p.Email },
		func(p models.Participant) string { return p.ClubName },
	},
	Selectors: map[string]func(models.Participant) string{
		"status":        func(p models.Participant) string { return string(p.Status) },
		"gender":        func(p models.Participant) string { return string(p.Gender) },
		"payment":       func(p models.Participant) string { return string(p.PaymentStatus) },
		"competitionId": func(p models.Participant) string { return idString(p.CompetitionID) },
	},
	Date: func(p models.Participant) *time.Time { return timePtr(p.RegistrationDate) },
}

func sideName(p *models.ParticipantRef) string {
	if p == nil {
		return ""
	}
	return p.Name
}

var MatchSpec = listing.Spec[models.Match]{
	Text: []func(models.Match) string{
		func(m models.Match) string { return sideName(m.Participant1) },
		func(m models.Match) string { return sideName(m.Participant2) },
		func(m models.Match) string { return m.CompetitionName },
	},
	Selectors: map[string]func(models.Match) string{
		"status":        func(m models.Match) string { return string(m.Status) },
		"competitionId": func(m models.Match) string { return idString(m.CompetitionID) },
		"refereeId": func(m models.Match) string {
			if m.Referee == nil {
				return ""
			}
			return idString(m.Referee.ID)
		},
	},
	Date: func(m models.Match) *time.Time { return timePtr(m.MatchDate) },
}

var ReservationSpec = listing.Spec[models.Reservation]{
	Text: []func(models.Reservation) string{
		func(r models.Reservation) string { return r.VenueName },
		func(r models.Reservation) string { return r.UserName },
		func(r models.Reservation) string { return r.Notes },
	},
	Selectors: map[string]func(models.Reservation) string{
		"status":  func(r models.Reservation) string { return string(r.Status) },
		"venueId": func(r models.Reservation) string { return idString(r.VenueID) },
		"userId":  func(r models.Reservation) string { return idString(r.UserID) },
	},
	Normalize: map[string]func(string) string{"status": strings.ToUpper},
	Date:      func(r models.Reservation) *time.Time { return timePtr(r.StartTime) },
}
