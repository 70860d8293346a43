package repositories

import (
	"context"
	"database/sql"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var ParticipantFilters = filterColumns{
	search: []string{"CONCAT(p.first_name, ' ', p.last_name)", "p.email", "p.club_name"},
	selectors: map[string]column{
		"status":        upperCol("p.status"),
		"gender":        upperCol("p.gender"),
		"payment":       upperCol("p.payment_status"),
		"competitionId": idCol("p.competition_id"),
	},
	date: "p.registration_date",
}

const participantSelect = `SELECT p.id, p.competition_id, c.name, p.user_id, p.first_name, p.last_name, p.email,
	p.phone_number, p.date_of_birth, p.nationality, p.club_name, p.license_number, p.gender, p.status,
	p.registration_date, p.payment_status, p.medical_certificate, p.insurance_status, p.notes
	FROM participants p
	LEFT JOIN competitions c ON c.id = p.competition_id`

type ParticipantRepository struct {
	DB DBTX
}

func scanParticipant(row rowScanner) (models.Participant, error) {
	var (
		p        models.Participant
		compName sql.NullString
		userID   sql.NullInt64
		dob      sql.NullTime
	)
	err := row.Scan(&p.ID, &p.CompetitionID, &compName, &userID, &p.FirstName, &p.LastName, &p.Email,
		&p.PhoneNumber, &dob, &p.Nationality, &p.ClubName, &p.LicenseNumber, &p.Gender, &p.Status,
		&p.RegistrationDate, &p.PaymentStatus, &p.MedicalCertificate, &p.InsuranceStatus, &p.Notes)
	if err != nil {
		return p, err
	}
	p.CompetitionName = compName.String
	p.UserID = idPtr(userID)
	p.DateOfBirth = timePtr(dob)
	return p, nil
}

func (r ParticipantRepository) List(ctx context.Context, c listing.Criteria) ([]models.Participant, error) {
	var w whereBuilder
	if err := ParticipantFilters.apply(&w, c); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, participantSelect+w.clause()+` ORDER BY p.registration_date DESC, p.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r ParticipantRepository) GetByID(ctx context.Context, id domain.ID) (models.Participant, error) {
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, participantSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return p, notFound("katılımcı", err)
	}
	return p, nil
}

// CountActive counts participants of a competition that still hold a slot.
func (r ParticipantRepository) CountActive(ctx context.Context, competitionID domain.ID) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants
		WHERE competition_id = ? AND status NOT IN (?, ?)`,
		competitionID, string(domain.ParticipantWithdrawn), string(domain.ParticipantDisqualified)).Scan(&n)
	return n, err
}

func (r ParticipantRepository) Create(ctx context.Context, p models.Participant) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO participants
		(competition_id, user_id, first_name, last_name, email, phone_number, date_of_birth, nationality,
		 club_name, license_number, gender, status, registration_date, payment_status,
		 medical_certificate, insurance_status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CompetitionID, nullID(p.UserID), p.FirstName, p.LastName, p.Email, p.PhoneNumber,
		nullTime(p.DateOfBirth), p.Nationality, p.ClubName, p.LicenseNumber, string(p.Gender),
		string(p.Status), time.Now(), string(p.PaymentStatus), p.MedicalCertificate, p.InsuranceStatus, p.Notes)
	if err != nil {
		return 0, mapWriteError("katılımcı", err)
	}
	return res.LastInsertId()
}

func (r ParticipantRepository) Update(ctx context.Context, p models.Participant) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE participants SET competition_id = ?, user_id = ?, first_name = ?,
		last_name = ?, email = ?, phone_number = ?, date_of_birth = ?, nationality = ?, club_name = ?,
		license_number = ?, gender = ?, medical_certificate = ?, insurance_status = ?, notes = ?
		WHERE id = ?`,
		p.CompetitionID, nullID(p.UserID), p.FirstName, p.LastName, p.Email, p.PhoneNumber,
		nullTime(p.DateOfBirth), p.Nationality, p.ClubName, p.LicenseNumber, string(p.Gender),
		p.MedicalCertificate, p.InsuranceStatus, p.Notes, p.ID)
	if err != nil {
		return mapWriteError("katılımcı", err)
	}
	return requireAffected(res, "katılımcı")
}

func (r ParticipantRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.ParticipantStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE participants SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "katılımcı")
}

func (r ParticipantRepository) UpdatePayment(ctx context.Context, id domain.ID, status domain.PaymentStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE participants SET payment_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "katılımcı")
}

func (r ParticipantRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("katılımcı", err)
	}
	return requireAffected(res, "katılımcı")
}
