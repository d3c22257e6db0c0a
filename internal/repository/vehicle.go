package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/offroad-club/backend/internal/domain"
)

type vehicleRepository struct {
	db *sqlx.DB
}

func newVehicleRepository(db *sqlx.DB) *vehicleRepository {
	return &vehicleRepository{
		db: db,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
	INSERT INTO vehicle (id, user_id, model, tires, has_winch)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.UserID,
		vehicle.Model,
		vehicle.Tires,
		vehicle.HasWinch,
	)
	if err != nil {
		return fmt.Errorf("db insert vehicle: %w", err)
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	const query = "SELECT id, user_id, model, tires, has_winch, created_at FROM vehicle WHERE id = uuid_to_bin(?);"

	var vehicle domain.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select vehicle by id failed: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	const query = "SELECT id, user_id, model, tires, has_winch, created_at FROM vehicle WHERE user_id = ? ORDER BY created_at;"

	var vehicles []domain.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, query, userID); err != nil {
		return nil, fmt.Errorf("select vehicles by user failed: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	const query = "DELETE FROM vehicle WHERE id = uuid_to_bin(?) AND user_id = ?;"

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db delete vehicle: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete vehicle rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
