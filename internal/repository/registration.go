package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/offroad-club/backend/internal/db"
	"github.com/offroad-club/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
)

type registrationRepository struct {
	db *sqlx.DB
}

func newRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{
		db: db,
	}
}

const registrationColumns = "id, event_id, user_id, first_name, username, adults_count, children_count, children_ages, vehicle_id, car_info, phone, payment_status, created_at"

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	const query = `
	INSERT INTO registration
	(id, event_id, user_id, first_name, username, adults_count, children_count, children_ages, vehicle_id, car_info, phone, payment_status)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, uuid_to_bin(?), ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query,
		registration.ID,
		registration.EventID,
		registration.UserID,
		registration.FirstName,
		registration.Username,
		registration.AdultsCount,
		registration.ChildrenCount,
		registration.ChildrenAges,
		registration.VehicleID,
		registration.CarInfo,
		registration.Phone,
		registration.PaymentStatus,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert registration: %w", err)
	}

	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registration WHERE id = uuid_to_bin(?);"

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select registration by id failed: %w", err)
	}

	return &registration, nil
}

func (r *registrationRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registration WHERE event_id = uuid_to_bin(?) ORDER BY created_at;"

	var registrations []domain.Registration
	if err := r.db.SelectContext(ctx, &registrations, query, eventID); err != nil {
		return nil, fmt.Errorf("select registrations by event failed: %w", err)
	}

	return registrations, nil
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registration WHERE user_id = ? ORDER BY created_at;"

	var registrations []domain.Registration
	if err := r.db.SelectContext(ctx, &registrations, query, userID); err != nil {
		return nil, fmt.Errorf("select registrations by user failed: %w", err)
	}

	return registrations, nil
}

// MarkPaid takes the id exactly as it came out of the notification label.
// The update is a single atomic row write and the only writer of paid, so
// concurrent redeliveries race to the same terminal value.
func (r *registrationRepository) MarkPaid(ctx context.Context, id string) error {
	const query = "UPDATE registration SET payment_status = ? WHERE id = uuid_to_bin(?);"

	if _, err := r.db.ExecContext(ctx, query, domain.PaymentStatusPaid, id); err != nil {
		return fmt.Errorf("db update registration payment status: %w", err)
	}

	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = "DELETE FROM registration WHERE id = uuid_to_bin(?);"

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete registration: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete registration rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// DeletePending removes the caller's own registration, but only while it is
// still unpaid. A paid row does not match the predicate and reports
// ErrNoRowsAffected so the service can tell "already paid" from "not yours".
func (r *registrationRepository) DeletePending(ctx context.Context, id uuid.UUID, userID string) error {
	const query = "DELETE FROM registration WHERE id = uuid_to_bin(?) AND user_id = ? AND payment_status = ?;"

	res, err := r.db.ExecContext(ctx, query, id, userID, domain.PaymentStatusPending)
	if err != nil {
		return fmt.Errorf("db delete pending registration: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete pending registration rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
