package repositories

import (
	"context"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var VenueFilters = filterColumns{
	search: []string{"v.name", "v.address", "v.city"},
	selectors: map[string]column{
		"status": upperCol("v.status"),
		"city":   textCol("v.city"),
		"indoor": boolCol("v.is_indoor"),
	},
}

const venueSelect = `SELECT v.id, v.name, v.description, v.address, v.city, v.postal_code, v.phone_number,
	v.email, v.capacity, v.parking_capacity, v.is_indoor, v.has_lighting, v.has_changing_rooms,
	v.has_medical_room, v.hourly_rate, v.status, v.created_at
	FROM venues v`

type VenueRepository struct {
	DB DBTX
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var v models.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Description, &v.Address, &v.City, &v.PostalCode, &v.PhoneNumber,
		&v.Email, &v.Capacity, &v.ParkingCapacity, &v.IsIndoor, &v.HasLighting, &v.HasChangingRooms,
		&v.HasMedicalRoom, &v.HourlyRate, &v.Status, &v.CreatedAt)
	return v, err
}

func (r VenueRepository) List(ctx context.Context, c listing.Criteria) ([]models.Venue, error) {
	var w whereBuilder
	if err := VenueFilters.apply(&w, c); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, venueSelect+w.clause()+` ORDER BY v.name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VenueRepository) GetByID(ctx context.Context, id domain.ID) (models.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx, venueSelect+` WHERE v.id = ?`, id))
	if err != nil {
		return v, notFound("tesis", err)
	}
	return v, nil
}

// GetForUpdate reads a venue and locks its row until the surrounding
// transaction ends, serializing bookings of that venue.
func (r VenueRepository) GetForUpdate(ctx context.Context, id domain.ID) (models.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx, venueSelect+` WHERE v.id = ? FOR UPDATE`, id))
	if err != nil {
		return v, notFound("tesis", err)
	}
	return v, nil
}

func (r VenueRepository) Create(ctx context.Context, v models.Venue) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO venues
		(name, description, address, city, postal_code, phone_number, email, capacity, parking_capacity,
		 is_indoor, has_lighting, has_changing_rooms, has_medical_room, hourly_rate, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.Description, v.Address, v.City, v.PostalCode, v.PhoneNumber, v.Email, v.Capacity,
		v.ParkingCapacity, v.IsIndoor, v.HasLighting, v.HasChangingRooms, v.HasMedicalRoom,
		v.HourlyRate, string(v.Status), time.Now())
	if err != nil {
		return 0, mapWriteError("tesis", err)
	}
	return res.LastInsertId()
}

func (r VenueRepository) Update(ctx context.Context, v models.Venue) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE venues SET name = ?, description = ?, address = ?, city = ?,
		postal_code = ?, phone_number = ?, email = ?, capacity = ?, parking_capacity = ?, is_indoor = ?,
		has_lighting = ?, has_changing_rooms = ?, has_medical_room = ?, hourly_rate = ?
		WHERE id = ?`,
		v.Name, v.Description, v.Address, v.City, v.PostalCode, v.PhoneNumber, v.Email, v.Capacity,
		v.ParkingCapacity, v.IsIndoor, v.HasLighting, v.HasChangingRooms, v.HasMedicalRoom, v.HourlyRate, v.ID)
	if err != nil {
		return mapWriteError("tesis", err)
	}
	return requireAffected(res, "tesis")
}

func (r VenueRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.VenueStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE venues SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "tesis")
}

func (r VenueRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("tesis", err)
	}
	return requireAffected(res, "tesis")
}
