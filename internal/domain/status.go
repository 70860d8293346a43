package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AssetStatus is stored and transmitted as its integer code.
type AssetStatus int

const (
	AssetAvailable   AssetStatus = 1
	AssetAssigned    AssetStatus = 2
	AssetMaintenance AssetStatus = 3
	AssetDamaged     AssetStatus = 4
	AssetDisposed    AssetStatus = 5
)

// Assigned is unreachable here: it is entered and left only by
// the assignment flow.
var AssetStatuses = NewEnum("asset_status",
	EnumEntry[AssetStatus]{Value: AssetAvailable, Display: Display{"Müsait", "green"},
		Next: []AssetStatus{AssetMaintenance, AssetDamaged, AssetDisposed}},
	EnumEntry[AssetStatus]{Value: AssetAssigned, Display: Display{"Zimmetli", "blue"}},
	EnumEntry[AssetStatus]{Value: AssetMaintenance, Display: Display{"Bakımda", "yellow"},
		Next: []AssetStatus{AssetAvailable, AssetDamaged, AssetDisposed}},
	EnumEntry[AssetStatus]{Value: AssetDamaged, Display: Display{"Arızalı", "red"},
		Next: []AssetStatus{AssetMaintenance, AssetAvailable, AssetDisposed}},
	EnumEntry[AssetStatus]{Value: AssetDisposed, Display: Display{"İmha Edildi", "gray"}},
)

func (s AssetStatus) String() string { return strconv.Itoa(int(s)) }
func (s AssetStatus) Label() string  { return AssetStatuses.Label(s) }

// ParseAssetStatus accepts the numeric code ("1") or the constant name ("Available").
func ParseAssetStatus(raw string) (AssetStatus, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if AssetStatuses.Valid(AssetStatus(n)) {
			return AssetStatus(n), nil
		}
	}
	switch strings.ToLower(raw) {
	case "available":
		return AssetAvailable, nil
	case "assigned":
		return AssetAssigned, nil
	case "maintenance":
		return AssetMaintenance, nil
	case "damaged":
		return AssetDamaged, nil
	case "disposed":
		return AssetDisposed, nil
	}
	return 0, ValidationError{Field: "status", Msg: fmt.Sprintf("geçersiz demirbaş durumu: %q", raw)}
}

// AssignmentType distinguishes a handover from a return.
type AssignmentType int

const (
	AssignmentIssue  AssignmentType = 1
	AssignmentReturn AssignmentType = 2
)

var AssignmentTypes = NewEnum("assignment_type",
	EnumEntry[AssignmentType]{Value: AssignmentIssue, Display: Display{"Zimmet", "blue"}},
	EnumEntry[AssignmentType]{Value: AssignmentReturn, Display: Display{"İade", "green"}},
)

func (t AssignmentType) String() string { return strconv.Itoa(int(t)) }
func (t AssignmentType) Label() string  { return AssignmentTypes.Label(t) }

type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RolePersonnel   UserRole = "PERSONNEL"
	RoleOrganizer   UserRole = "ORGANIZER"
	RoleReferee     UserRole = "REFEREE"
	RoleParticipant UserRole = "PARTICIPANT"
	RoleViewer      UserRole = "VIEWER"
)

var UserRoles = NewEnum("user_role",
	EnumEntry[UserRole]{Value: RoleAdmin, Display: Display{"Yönetici", "red"}},
	EnumEntry[UserRole]{Value: RolePersonnel, Display: Display{"Personel", "blue"}},
	EnumEntry[UserRole]{Value: RoleOrganizer, Display: Display{"Organizatör", "purple"}},
	EnumEntry[UserRole]{Value: RoleReferee, Display: Display{"Hakem", "orange"}},
	EnumEntry[UserRole]{Value: RoleParticipant, Display: Display{"Katılımcı", "green"}},
	EnumEntry[UserRole]{Value: RoleViewer, Display: Display{"İzleyici", "gray"}},
).AnyTransition()

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserPending   UserStatus = "PENDING"
)

var UserStatuses = NewEnum("user_status",
	EnumEntry[UserStatus]{Value: UserActive, Display: Display{"Aktif", "green"}},
	EnumEntry[UserStatus]{Value: UserInactive, Display: Display{"Pasif", "red"}},
	EnumEntry[UserStatus]{Value: UserSuspended, Display: Display{"Askıya Alınmış", "orange"}},
	EnumEntry[UserStatus]{Value: UserPending, Display: Display{"Beklemede", "yellow"}},
).AnyTransition()

type CompetitionStatus string

const (
	CompetitionPlanned            CompetitionStatus = "PLANNED"
	CompetitionRegistrationOpen   CompetitionStatus = "REGISTRATION_OPEN"
	CompetitionRegistrationClosed CompetitionStatus = "REGISTRATION_CLOSED"
	CompetitionInProgress         CompetitionStatus = "IN_PROGRESS"
	CompetitionCompleted          CompetitionStatus = "COMPLETED"
	CompetitionCancelled          CompetitionStatus = "CANCELLED"
)

var CompetitionStatuses = NewEnum("competition_status",
	EnumEntry[CompetitionStatus]{Value: CompetitionPlanned, Display: Display{"Planlandı", "gray"},
		Next: []CompetitionStatus{CompetitionRegistrationOpen, CompetitionCancelled}},
	EnumEntry[CompetitionStatus]{Value: CompetitionRegistrationOpen, Display: Display{"Kayıt Açık", "green"},
		Next: []CompetitionStatus{CompetitionRegistrationClosed, CompetitionCancelled}},
	EnumEntry[CompetitionStatus]{Value: CompetitionRegistrationClosed, Display: Display{"Kayıt Kapalı", "yellow"},
		Next: []CompetitionStatus{CompetitionRegistrationOpen, CompetitionInProgress, CompetitionCancelled}},
	EnumEntry[CompetitionStatus]{Value: CompetitionInProgress, Display: Display{"Devam Ediyor", "blue"},
		Next: []CompetitionStatus{CompetitionCompleted, CompetitionCancelled}},
	EnumEntry[CompetitionStatus]{Value: CompetitionCompleted, Display: Display{"Tamamlandı", "purple"}},
	EnumEntry[CompetitionStatus]{Value: CompetitionCancelled, Display: Display{"İptal Edildi", "red"}},
)

type SportType string

const (
	SportFootball    SportType = "FOOTBALL"
	SportBasketball  SportType = "BASKETBALL"
	SportVolleyball  SportType = "VOLLEYBALL"
	SportTennis      SportType = "TENNIS"
	SportSwimming    SportType = "SWIMMING"
	SportAthletics   SportType = "ATHLETICS"
	SportBoxing      SportType = "BOXING"
	SportWrestling   SportType = "WRESTLING"
	SportJudo        SportType = "JUDO"
	SportKarate      SportType = "KARATE"
	SportTableTennis SportType = "TABLE_TENNIS"
	SportBadminton   SportType = "BADMINTON"
)

var SportTypes = NewEnum("sport_type",
	EnumEntry[SportType]{Value: SportFootball, Display: Display{"Futbol", "green"}},
	EnumEntry[SportType]{Value: SportBasketball, Display: Display{"Basketbol", "orange"}},
	EnumEntry[SportType]{Value: SportVolleyball, Display: Display{"Voleybol", "yellow"}},
	EnumEntry[SportType]{Value: SportTennis, Display: Display{"Tenis", "lime"}},
	EnumEntry[SportType]{Value: SportSwimming, Display: Display{"Yüzme", "blue"}},
	EnumEntry[SportType]{Value: SportAthletics, Display: Display{"Atletizm", "red"}},
	EnumEntry[SportType]{Value: SportBoxing, Display: Display{"Boks", "red"}},
	EnumEntry[SportType]{Value: SportWrestling, Display: Display{"Güreş", "brown"}},
	EnumEntry[SportType]{Value: SportJudo, Display: Display{"Judo", "gray"}},
	EnumEntry[SportType]{Value: SportKarate, Display: Display{"Karate", "gray"}},
	EnumEntry[SportType]{Value: SportTableTennis, Display: Display{"Masa Tenisi", "teal"}},
	EnumEntry[SportType]{Value: SportBadminton, Display: Display{"Badminton", "teal"}},
)

type GenderCategory string

const (
	GenderCategoryMale   GenderCategory = "MALE"
	GenderCategoryFemale GenderCategory = "FEMALE"
	GenderCategoryMixed  GenderCategory = "MIXED"
)

var GenderCategories = NewEnum("gender_category",
	EnumEntry[GenderCategory]{Value: GenderCategoryMale, Display: Display{"Erkek", "blue"}},
	EnumEntry[GenderCategory]{Value: GenderCategoryFemale, Display: Display{"Kadın", "pink"}},
	EnumEntry[GenderCategory]{Value: GenderCategoryMixed, Display: Display{"Karma", "purple"}},
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var Genders = NewEnum("gender",
	EnumEntry[Gender]{Value: GenderMale, Display: Display{"Erkek", "blue"}},
	EnumEntry[Gender]{Value: GenderFemale, Display: Display{"Kadın", "pink"}},
	EnumEntry[Gender]{Value: GenderOther, Display: Display{"Diğer", "gray"}},
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchCompleted  MatchStatus = "COMPLETED"
	MatchCancelled  MatchStatus = "CANCELLED"
	MatchPostponed  MatchStatus = "POSTPONED"
)

var MatchStatuses = NewEnum("match_status",
	EnumEntry[MatchStatus]{Value: MatchScheduled, Display: Display{"Planlandı", "yellow"},
		Next: []MatchStatus{MatchInProgress, MatchCancelled, MatchPostponed}},
	EnumEntry[MatchStatus]{Value: MatchInProgress, Display: Display{"Devam Ediyor", "blue"},
		Next: []MatchStatus{MatchCompleted, MatchCancelled}},
	EnumEntry[MatchStatus]{Value: MatchCompleted, Display: Display{"Tamamlandı", "green"}},
	EnumEntry[MatchStatus]{Value: MatchCancelled, Display: Display{"İptal Edildi", "red"}},
	EnumEntry[MatchStatus]{Value: MatchPostponed, Display: Display{"Ertelendi", "orange"},
		Next: []MatchStatus{MatchScheduled, MatchCancelled}},
)

type ParticipantStatus string

const (
	ParticipantRegistered   ParticipantStatus = "REGISTERED"
	ParticipantConfirmed    ParticipantStatus = "CONFIRMED"
	ParticipantWithdrawn    ParticipantStatus = "WITHDRAWN"
	ParticipantDisqualified ParticipantStatus = "DISQUALIFIED"
	ParticipantWinner       ParticipantStatus = "WINNER"
	ParticipantRunnerUp     ParticipantStatus = "RUNNER_UP"
)

var ParticipantStatuses = NewEnum("participant_status",
	EnumEntry[ParticipantStatus]{Value: ParticipantRegistered, Display: Display{"Kayıtlı", "yellow"},
		Next: []ParticipantStatus{ParticipantConfirmed, ParticipantWithdrawn, ParticipantDisqualified}},
	EnumEntry[ParticipantStatus]{Value: ParticipantConfirmed, Display: Display{"Onaylandı", "green"},
		Next: []ParticipantStatus{ParticipantWithdrawn, ParticipantDisqualified, ParticipantWinner, ParticipantRunnerUp}},
	EnumEntry[ParticipantStatus]{Value: ParticipantWithdrawn, Display: Display{"Çekildi", "gray"}},
	EnumEntry[ParticipantStatus]{Value: ParticipantDisqualified, Display: Display{"Diskalifiye", "red"}},
	EnumEntry[ParticipantStatus]{Value: ParticipantWinner, Display: Display{"Kazanan", "purple"}},
	EnumEntry[ParticipantStatus]{Value: ParticipantRunnerUp, Display: Display{"İkinci", "blue"}},
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var PaymentStatuses = NewEnum("payment_status",
	EnumEntry[PaymentStatus]{Value: PaymentPending, Display: Display{"Bekliyor", "yellow"}},
	EnumEntry[PaymentStatus]{Value: PaymentPaid, Display: Display{"Ödendi", "green"}},
	EnumEntry[PaymentStatus]{Value: PaymentRefunded, Display: Display{"İade Edildi", "gray"}},
).AnyTransition()

type VenueStatus string

const (
	VenueActive      VenueStatus = "ACTIVE"
	VenueInactive    VenueStatus = "INACTIVE"
	VenueMaintenance VenueStatus = "MAINTENANCE"
	VenueClosed      VenueStatus = "CLOSED"
)

var VenueStatuses = NewEnum("venue_status",
	EnumEntry[VenueStatus]{Value: VenueActive, Display: Display{"Aktif", "green"}},
	EnumEntry[VenueStatus]{Value: VenueInactive, Display: Display{"Pasif", "gray"}},
	EnumEntry[VenueStatus]{Value: VenueMaintenance, Display: Display{"Bakımda", "yellow"}},
	EnumEntry[VenueStatus]{Value: VenueClosed, Display: Display{"Kapalı", "red"}},
).AnyTransition()

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

var ReservationStatuses = NewEnum("reservation_status",
	EnumEntry[ReservationStatus]{Value: ReservationPending, Display: Display{"Onay Bekliyor", "yellow"},
		Next: []ReservationStatus{ReservationConfirmed, ReservationCancelled}},
	EnumEntry[ReservationStatus]{Value: ReservationConfirmed, Display: Display{"Onaylandı", "green"},
		Next: []ReservationStatus{ReservationCompleted, ReservationCancelled, ReservationNoShow}},
	EnumEntry[ReservationStatus]{Value: ReservationCancelled, Display: Display{"İptal Edildi", "red"}},
	EnumEntry[ReservationStatus]{Value: ReservationCompleted, Display: Display{"Tamamlandı", "blue"}},
	EnumEntry[ReservationStatus]{Value: ReservationNoShow, Display: Display{"Gelmedi", "gray"}},
)

// HoldsSlot reports whether a reservation in status s still blocks its time
// slot for other bookings.
func (s ReservationStatus) HoldsSlot() bool {
	return s != ReservationCancelled && s != ReservationNoShow
}

// NormalizeCode upper-cases and trims string enum input from query strings and payloads.
func NormalizeCode[T ~string](raw string) T {
	return T(strings.ToUpper(strings.TrimSpace(raw)))
}

// MarshalJSON keeps asset statuses numeric on the wire.
func (s AssetStatus) MarshalJSON() ([]byte, error) { return json.Marshal(int(s)) }

// UnmarshalJSON accepts both 2 and "2".
func (s *AssetStatus) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*s = AssetStatus(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseAssetStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
