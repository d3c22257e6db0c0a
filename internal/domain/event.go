package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Date            time.Time      `db:"date" json:"date"`
	Location        string         `db:"location" json:"location"`
	Description     sql.NullString `db:"description" json:"description"`
	Price           int            `db:"price" json:"price"`
	ImageURL        sql.NullString `db:"image_url" json:"image_url"`
	ReportLink      sql.NullString `db:"report_link" json:"report_link"`
	WarningText     sql.NullString `db:"warning_text" json:"warning_text"`
	ChildrenAllowed bool           `db:"children_allowed" json:"children_allowed"`
	IsArchived      bool           `db:"is_archived" json:"is_archived"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsFree reports whether registrations for the event skip the payment step.
func (e *Event) IsFree() bool {
	return e.Price <= 0
}
