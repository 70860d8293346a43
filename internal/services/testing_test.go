package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	assetCols = []string{"id", "name", "description", "asset_code", "serial_number", "brand", "model",
		"purchase_price", "purchase_date", "status", "location", "notes", "category_id",
		"current_assigned_user_id", "created_date", "c_name", "c_code", "u_first", "u_last"}
	userCols = []string{"id", "username", "email", "first_name", "last_name", "phone_number",
		"department", "role", "status", "created_at", "last_login_at"}
	assignmentCols = []string{"id", "type", "assignment_date", "return_date", "notes", "item_condition",
		"asset_id", "user_id", "assigned_by_user_id", "a_name", "a_code", "u_first", "u_last", "b_first", "b_last"}
	competitionCols = []string{"id", "name", "description", "sport_type", "status", "start_date", "end_date",
		"registration_deadline", "max_participants", "min_age", "max_age", "gender_category", "entry_fee",
		"prize_pool", "venue_id", "v_name", "organizer_id", "o_first", "o_last", "participant_count"}
	participantCols = []string{"id", "competition_id", "c_name", "user_id", "first_name", "last_name", "email",
		"phone_number", "date_of_birth", "nationality", "club_name", "license_number", "gender", "status",
		"registration_date", "payment_status", "medical_certificate", "insurance_status", "notes"}
	matchCols = []string{"id", "competition_id", "c_name",
		"p1_id", "p1_first", "p1_last", "p2_id", "p2_first", "p2_last", "ref_id", "ref_first", "ref_last",
		"match_date", "duration_minutes", "score1", "score2", "status",
		"match_number", "round_number", "court_number", "notes"}
	venueCols = []string{"id", "name", "description", "address", "city", "postal_code", "phone_number",
		"email", "capacity", "parking_capacity", "is_indoor", "has_lighting", "has_changing_rooms",
		"has_medical_room", "hourly_rate", "status", "created_at"}
	reservationCols = []string{"id", "venue_id", "v_name", "user_id", "u_first", "u_last",
		"start_time", "end_time", "status", "notes", "total_price", "created_at", "updated_at"}
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func assetRow(id int64, status int, holder any) *sqlmock.Rows {
	return sqlmock.NewRows(assetCols).AddRow(id, "Laptop", "", "DMB-1", "SN1", "Dell", "XPS",
		1500.0, nil, status, "Ofis", "", 3, holder, fixedNow, "Bilgisayar", "BLG", nil, nil)
}

func userRow(id int64, role, status string) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(id, "ayse", "ayse@example.com", "Ayşe", "Kaya", "",
		"BT", role, status, fixedNow, nil)
}

func assignmentRow(id int64, typ int, returnDate any, assetID, userID int64) *sqlmock.Rows {
	return sqlmock.NewRows(assignmentCols).AddRow(id, typ, fixedNow, returnDate, "", "",
		assetID, userID, 1, "Laptop", "DMB-1", "Ayşe", "Kaya", "Admin", "User")
}

func competitionRow(id int64, status, gender string, maxParticipants int) *sqlmock.Rows {
	start := fixedNow.AddDate(0, 1, 0)
	return sqlmock.NewRows(competitionCols).AddRow(id, "Bahar Kupası", "", "TENNIS", status, start,
		start.AddDate(0, 0, 2), nil, maxParticipants, 0, 0, gender, 0.0, 0.0, nil, nil, nil, nil, nil, 0)
}

func participantRow(id, competitionID int64) *sqlmock.Rows {
	return sqlmock.NewRows(participantCols).AddRow(id, competitionID, "Bahar Kupası", nil, "Can", "Demir",
		"", "", nil, "TR", "", "", "MALE", "REGISTERED", fixedNow, "PENDING", false, false, "")
}

func matchRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(matchCols).AddRow(id, 4, "Bahar Kupası",
		1, "Can", "Demir", 2, "Efe", "Yıldız", nil, nil, nil,
		fixedNow, 60, nil, nil, status, 1, 1, "K1", "")
}

func venueRow(id int64, status string, rate float64) *sqlmock.Rows {
	return sqlmock.NewRows(venueCols).AddRow(id, "Spor Salonu", "", "Cad. 1", "Ankara", "", "", "",
		500, 50, true, true, true, false, rate, status, fixedNow)
}

func reservationRow(id, venueID, userID int64, start time.Time, hours int, status string) *sqlmock.Rows {
	return sqlmock.NewRows(reservationCols).AddRow(id, venueID, "Spor Salonu", userID, "Can", "Demir",
		start, start.Add(time.Duration(hours)*time.Hour), status, "", 0.0, fixedNow, nil)
}
