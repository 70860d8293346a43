package models

import (
	"strings"
	"time"

	"adminhub/internal/domain"
)

type Venue struct {
	ID               domain.ID          `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Address          string             `json:"address"`
	City             string             `json:"city"`
	PostalCode       string             `json:"postalCode"`
	PhoneNumber      string             `json:"phoneNumber"`
	Email            string             `json:"email"`
	Capacity         int                `json:"capacity"`
	ParkingCapacity  int                `json:"parkingCapacity"`
	IsIndoor         bool               `json:"isIndoor"`
	HasLighting      bool               `json:"hasLighting"`
	HasChangingRooms bool               `json:"hasChangingRooms"`
	HasMedicalRoom   bool               `json:"hasMedicalRoom"`
	HourlyRate       float64            `json:"hourlyRate"`
	Status           domain.VenueStatus `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type VenueRequest struct {
	Name             string             `json:"name" binding:"required,max=200"`
	Description      string             `json:"description" binding:"max=1000"`
	Address          string             `json:"address" binding:"required,max=300"`
	City             string             `json:"city" binding:"required,max=100"`
	PostalCode       string             `json:"postalCode" binding:"max=20"`
	PhoneNumber      string             `json:"phoneNumber" binding:"max=30"`
	Email            string             `json:"email" binding:"omitempty,email"`
	Capacity         int                `json:"capacity" binding:"gte=0"`
	ParkingCapacity  int                `json:"parkingCapacity" binding:"gte=0"`
	IsIndoor         bool               `json:"isIndoor"`
	HasLighting      bool               `json:"hasLighting"`
	HasChangingRooms bool               `json:"hasChangingRooms"`
	HasMedicalRoom   bool               `json:"hasMedicalRoom"`
	HourlyRate       float64            `json:"hourlyRate" binding:"gte=0"`
	Status           domain.VenueStatus `json:"status"`
}

type Competition struct {
	ID                   domain.ID                `json:"id"`
	Name                 string                   `json:"name"`
	Description          string                   `json:"description"`
	SportType            domain.SportType         `json:"sportType"`
	Status               domain.CompetitionStatus `json:"status"`
	StartDate            time.Time                `json:"startDate"`
	EndDate              time.Time                `json:"endDate"`
	RegistrationDeadline *time.Time               `json:"registrationDeadline,omitempty"`
	MaxParticipants      int                      `json:"maxParticipants"`
	MinAge               int                      `json:"minAge"`
	MaxAge               int                      `json:"maxAge"`
	GenderCategory       domain.GenderCategory    `json:"genderCategory"`
	EntryFee             float64                  `json:"entryFee"`
	PrizePool            float64                  `json:"prizePool"`
	VenueID              *domain.ID               `json:"venueId,omitempty"`
	VenueName            string                   `json:"venueName,omitempty"`
	OrganizerID          *domain.ID               `json:"organizerId,omitempty"`
	OrganizerName        string                   `json:"organizerName,omitempty"`
	ParticipantCount     int                      `json:"participantCount"`
}

type CompetitionRequest struct {
	Name                 string                `json:"name" binding:"required,max=200"`
	Description          string                `json:"description" binding:"max=2000"`
	SportType            domain.SportType      `json:"sportType" binding:"required"`
	StartDate            time.Time             `json:"startDate" binding:"required"`
	EndDate              time.Time             `json:"endDate" binding:"required"`
	RegistrationDeadline *time.Time            `json:"registrationDeadline"`
	MaxParticipants      int                   `json:"maxParticipants" binding:"gte=0"`
	MinAge               int                   `json:"minAge" binding:"gte=0"`
	MaxAge               int                   `json:"maxAge" binding:"gte=0"`
	GenderCategory       domain.GenderCategory `json:"genderCategory"`
	EntryFee             float64               `json:"entryFee" binding:"gte=0"`
	PrizePool            float64               `json:"prizePool" binding:"gte=0"`
	VenueID              *domain.ID            `json:"venueId"`
	OrganizerID          *domain.ID            `json:"organizerId"`
}

type Participant struct {
	ID                 domain.ID                `json:"id"`
	CompetitionID      domain.ID                `json:"competitionId"`
	CompetitionName    string                   `json:"competitionName,omitempty"`
	UserID             *domain.ID               `json:"userId,omitempty"`
	FirstName          string                   `json:"firstName"`
	LastName           string                   `json:"lastName"`
	Email              string                   `json:"email"`
	PhoneNumber        string                   `json:"phoneNumber"`
	DateOfBirth        *time.Time               `json:"dateOfBirth,omitempty"`
	Nationality        string                   `json:"nationality"`
	ClubName           string                   `json:"clubName"`
	LicenseNumber      string                   `json:"licenseNumber"`
	Gender             domain.Gender            `json:"gender"`
	Status             domain.ParticipantStatus `json:"status"`
	RegistrationDate   time.Time                `json:"registrationDate"`
	PaymentStatus      domain.PaymentStatus     `json:"paymentStatus"`
	MedicalCertificate bool                     `json:"medicalCertificate"`
	InsuranceStatus    bool                     `json:"insuranceStatus"`
	Notes              string                   `json:"notes"`
}

// Name is the display name used by search and match listings.
func (p Participant) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type ParticipantRequest struct {
	CompetitionID      domain.ID     `json:"competitionId" binding:"required,gt=0"`
	UserID             *domain.ID    `json:"userId"`
	FirstName          string        `json:"firstName" binding:"required,max=100"`
	LastName           string        `json:"lastName" binding:"required,max=100"`
	Email              string        `json:"email" binding:"omitempty,email"`
	PhoneNumber        string        `json:"phoneNumber" binding:"max=30"`
	DateOfBirth        *time.Time    `json:"dateOfBirth"`
	Nationality        string        `json:"nationality" binding:"max=60"`
	ClubName           string        `json:"clubName" binding:"max=150"`
	LicenseNumber      string        `json:"licenseNumber" binding:"max=60"`
	Gender             domain.Gender `json:"gender" binding:"required"`
	MedicalCertificate bool          `json:"medicalCertificate"`
	InsuranceStatus    bool          `json:"insuranceStatus"`
	Notes              string        `json:"notes" binding:"max=1000"`
}

type PaymentRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus" binding:"required"`
}

type ParticipantRef struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

type Match struct {
	ID                domain.ID          `json:"id"`
	CompetitionID     domain.ID          `json:"competitionId"`
	CompetitionName   string             `json:"competitionName,omitempty"`
	Participant1      *ParticipantRef    `json:"participant1,omitempty"`
	Participant2      *ParticipantRef    `json:"participant2,omitempty"`
	Referee           *UserRef           `json:"referee,omitempty"`
	MatchDate         time.Time          `json:"matchDate"`
	DurationMinutes   int                `json:"durationMinutes"`
	ScoreParticipant1 *int               `json:"scoreParticipant1,omitempty"`
	ScoreParticipant2 *int               `json:"scoreParticipant2,omitempty"`
	Status            domain.MatchStatus `json:"status"`
	MatchNumber       int                `json:"matchNumber"`
	RoundNumber       int                `json:"roundNumber"`
	CourtNumber       string             `json:"courtNumber"`
	Notes             string             `json:"notes"`
}

type MatchRequest struct {
	CompetitionID   domain.ID  `json:"competitionId" binding:"required,gt=0"`
	Participant1ID  *domain.ID `json:"participant1Id"`
	Participant2ID  *domain.ID `json:"participant2Id"`
	RefereeID       *domain.ID `json:"refereeId"`
	MatchDate       time.Time  `json:"matchDate" binding:"required"`
	DurationMinutes int        `json:"durationMinutes" binding:"gte=0"`
	MatchNumber     int        `json:"matchNumber" binding:"gte=0"`
	RoundNumber     int        `json:"roundNumber" binding:"gte=0"`
	CourtNumber     string     `json:"courtNumber" binding:"max=20"`
	Notes           string     `json:"notes" binding:"max=1000"`
}

type ScoreRequest struct {
	ScoreParticipant1 *int `json:"scoreParticipant1" binding:"required,gte=0"`
	ScoreParticipant2 *int `json:"scoreParticipant2" binding:"required,gte=0"`
}

type SportsDashboard struct {
	TotalCompetitions  int           `json:"totalCompetitions"`
	ActiveCompetitions int           `json:"activeCompetitions"`
	TotalParticipants  int           `json:"totalParticipants"`
	TotalMatches       int           `json:"totalMatches"`
	CompletedMatches   int           `json:"completedMatches"`
	TotalVenues        int           `json:"totalVenues"`
	ActiveVenues       int           `json:"activeVenues"`
	RecentCompetitions []Competition `json:"recentCompetitions"`
	UpcomingMatches    []Match       `json:"upcomingMatches"`
}

// Reservation books a venue for one user over [StartTime, EndTime).
type Reservation struct {
	ID         domain.ID                `json:"id"`
	VenueID    domain.ID                `json:"venueId"`
	VenueName  string                   `json:"venueName,omitempty"`
	UserID     domain.ID                `json:"userId"`
	UserName   string                   `json:"userName,omitempty"`
	StartTime  time.Time                `json:"startTime"`
	EndTime    time.Time                `json:"endTime"`
	Status     domain.ReservationStatus `json:"status"`
	Notes      string                   `json:"notes"`
	TotalPrice float64                  `json:"totalPrice"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  *time.Time               `json:"updatedAt,omitempty"`
}

// Overlaps reports whether r still holds a slot that intersects
// [start, end). Back-to-back bookings do not overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.Status.HoldsSlot() && r.StartTime.Before(end) && r.EndTime.After(start)
}

type ReservationRequest struct {
	VenueID domain.ID `json:"venueId" binding:"required,gt=0"`
	// UserID books on behalf of someone else; only managers may set it.
	UserID    *domain.ID `json:"userId"`
	StartTime time.Time  `json:"startTime" binding:"required"`
	EndTime   time.Time  `json:"endTime" binding:"required"`
	Notes     string     `json:"notes" binding:"max=500"`
}

type Availability struct {
	VenueID   domain.ID     `json:"venueId"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Available bool          `json:"isAvailable"`
	Conflicts []Reservation `json:"conflicts"`
}
