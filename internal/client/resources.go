package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

// Resource is one REST collection: C is the create body, U the update body.
type Resource[T, C, U any] struct {
	c    *Client
	path string
}

func (r Resource[T, C, U]) List(ctx context.Context, cr listing.Criteria) ([]T, error) {
	var out []T
	if err := r.c.call(ctx, http.MethodGet, r.path, cr.Values(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r Resource[T, C, U]) Get(ctx context.Context, id domain.ID) (T, error) {
	var out T
	err := r.c.call(ctx, http.MethodGet, r.item(id), nil, nil, &out)
	return out, err
}

func (r Resource[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	var out T
	err := r.c.call(ctx, http.MethodPost, r.path, nil, req, &out)
	return out, err
}

func (r Resource[T, C, U]) Update(ctx context.Context, id domain.ID, req U) (T, error) {
	var out T
	err := r.c.call(ctx, http.MethodPut, r.item(id), nil, req, &out)
	return out, err
}

func (r Resource[T, C, U]) Delete(ctx context.Context, id domain.ID) error {
	return r.c.call(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r Resource[T, C, U]) patch(ctx context.Context, id domain.ID, sub string, body any) (T, error) {
	var out T
	err := r.c.call(ctx, http.MethodPatch, r.item(id)+"/"+sub, nil, body, &out)
	return out, err
}

func (r Resource[T, C, U]) item(id domain.ID) string { return fmt.Sprintf("%s/%d", r.path, id) }

// SetStatus calls the dedicated status endpoint of a status-bearing resource.
func SetStatus[T, C, U, S any](ctx context.Context, r Resource[T, C, U], id domain.ID, status S) (T, error) {
	return r.patch(ctx, id, "status", models.StatusRequest[S]{Status: status})
}

func (c *Client) Users() Resource[models.User, models.CreateUserRequest, models.UpdateUserRequest] {
	return Resource[models.User, models.CreateUserRequest, models.UpdateUserRequest]{c: c, path: "/api/users"}
}

func (c *Client) Categories() Resource[models.Category, models.CategoryRequest, models.CategoryRequest] {
	return Resource[models.Category, models.CategoryRequest, models.CategoryRequest]{c: c, path: "/api/categories"}
}

func (c *Client) Assets() Resource[models.Asset, models.AssetRequest, models.AssetRequest] {
	return Resource[models.Asset, models.AssetRequest, models.AssetRequest]{c: c, path: "/api/assets"}
}

func (c *Client) Assignments() Resource[models.Assignment, models.AssignmentRequest, struct{}] {
	return Resource[models.Assignment, models.AssignmentRequest, struct{}]{c: c, path: "/api/assignments"}
}

func (c *Client) Venues() Resource[models.Venue, models.VenueRequest, models.VenueRequest] {
	return Resource[models.Venue, models.VenueRequest, models.VenueRequest]{c: c, path: "/api/venues"}
}

func (c *Client) Competitions() Resource[models.Competition, models.CompetitionRequest, models.CompetitionRequest] {
	return Resource[models.Competition, models.CompetitionRequest, models.CompetitionRequest]{c: c, path: "/api/competitions"}
}

func (c *Client) Participants() Resource[models.Participant, models.ParticipantRequest, models.ParticipantRequest] {
	return Resource[models.Participant, models.ParticipantRequest, models.ParticipantRequest]{c: c, path: "/api/participants"}
}

func (c *Client) Matches() Resource[models.Match, models.MatchRequest, models.MatchRequest] {
	return Resource[models.Match, models.MatchRequest, models.MatchRequest]{c: c, path: "/api/matches"}
}

func (c *Client) Reservations() Resource[models.Reservation, models.ReservationRequest, models.ReservationRequest] {
	return Resource[models.Reservation, models.ReservationRequest, models.ReservationRequest]{c: c, path: "/api/reservations"}
}

func (c *Client) CancelReservation(ctx context.Context, id domain.ID) (models.Reservation, error) {
	return c.Reservations().patch(ctx, id, "cancel", nil)
}

// Availability asks whether [start, end) is free at the venue.
func (c *Client) Availability(ctx context.Context, venueID domain.ID, start, end time.Time) (models.Availability, error) {
	q := url.Values{}
	q.Set("venueId", strconv.FormatInt(venueID, 10))
	q.Set("startTime", start.Format(time.RFC3339))
	q.Set("endTime", end.Format(time.RFC3339))
	var out models.Availability
	err := c.call(ctx, http.MethodGet, "/api/reservations/availability", q, nil, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, login, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login", nil, models.LoginRequest{Login: login, Password: password}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.call(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out)
	return out, err
}

func (c *Client) AssetDetail(ctx context.Context, id domain.ID) (models.AssetDetail, error) {
	var out models.AssetDetail
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/assets/%d/detail", id), nil, nil, &out)
	return out, err
}

func (c *Client) AssignedAssets(ctx context.Context, userID domain.ID) ([]models.Asset, error) {
	var out []models.Asset
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/assets/user/%d/assigned", userID), nil, nil, &out)
	return out, err
}

func (c *Client) AssetAssignments(ctx context.Context, assetID domain.ID) ([]models.Assignment, error) {
	var out []models.Assignment
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/assignments/asset/%d", assetID), nil, nil, &out)
	return out, err
}

// ActiveAssignment returns nil when the asset is not held by anyone.
func (c *Client) ActiveAssignment(ctx context.Context, assetID domain.ID) (*models.Assignment, error) {
	var out models.Assignment
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/assignments/asset/%d/active", assetID), nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return nil, nil
	}
	if err := jsonDecode(resp.body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserAssignments(ctx context.Context, userID domain.ID) ([]models.Assignment, error) {
	var out []models.Assignment
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/assignments/user/%d", userID), nil, nil, &out)
	return out, err
}

// Receipt downloads the handover PDF and the file name the server suggests.
func (c *Client) Receipt(ctx context.Context, assignmentID domain.ID) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/assignments/%d/receipt", assignmentID), nil, nil)
	if err != nil {
		return nil, "", err
	}
	return resp.body, attachmentName(resp.header), nil
}

func (c *Client) UpdatePayment(ctx context.Context, id domain.ID, status domain.PaymentStatus) (models.Participant, error) {
	return c.Participants().patch(ctx, id, "payment", models.PaymentRequest{PaymentStatus: status})
}

func (c *Client) UpdateScore(ctx context.Context, id domain.ID, score1, score2 int) (models.Match, error) {
	return c.Matches().patch(ctx, id, "score", models.ScoreRequest{ScoreParticipant1: &score1, ScoreParticipant2: &score2})
}

func (c *Client) InventoryDashboard(ctx context.Context) (models.InventoryDashboard, error) {
	var out models.InventoryDashboard
	err := c.call(ctx, http.MethodGet, "/api/dashboard/inventory", nil, nil, &out)
	return out, err
}

func (c *Client) SportsDashboard(ctx context.Context) (models.SportsDashboard, error) {
	var out models.SportsDashboard
	err := c.call(ctx, http.MethodGet, "/api/dashboard/sports", nil, nil, &out)
	return out, err
}
