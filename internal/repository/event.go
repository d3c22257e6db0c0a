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

type eventRepository struct {
	db *sqlx.DB
}

func newEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{
		db: db,
	}
}

const eventColumns = "id, title, date, location, description, price, image_url, report_link, warning_text, children_allowed, is_archived, created_at, updated_at"

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
	INSERT INTO event
	(id, title, date, location, description, price, image_url, report_link, warning_text, children_allowed)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.Location,
		event.Description,
		event.Price,
		event.ImageURL,
		event.ReportLink,
		event.WarningText,
		event.ChildrenAllowed,
	)
	if err != nil {
		return fmt.Errorf("db insert event: %w", err)
	}

	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
	UPDATE event
	SET title = ?, date = ?, location = ?, description = ?, price = ?, image_url = ?,
	    report_link = ?, warning_text = ?, children_allowed = ?, is_archived = ?
	WHERE id = uuid_to_bin(?);
	`

	res, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Date,
		event.Location,
		event.Description,
		event.Price,
		event.ImageURL,
		event.ReportLink,
		event.WarningText,
		event.ChildrenAllowed,
		event.IsArchived,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("db update event: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update event rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *eventRepository) GetAll(ctx context.Context, includeArchived bool) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event"
	if !includeArchived {
		query += " WHERE is_archived = false"
	}
	query += " ORDER BY date ASC;"

	var events []domain.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("select events failed: %w", err)
	}

	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event WHERE id = uuid_to_bin(?);"

	var event domain.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select event by id failed: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = "DELETE FROM event WHERE id = uuid_to_bin(?);"

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete event: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete event rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
