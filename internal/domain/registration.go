package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Registration is a crew's booking for one event. PaymentStatus moves
// pending -> paid exactly once; paid is terminal, there is no transition out
// of it in this service. Free events are created as paid right away.
type Registration struct {
	ID      uuid.UUID `db:"id" json:"id"`
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	// UserID is the messaging-platform user id in string form, set by the
	// client and never reinterpreted server-side.
	UserID    string         `db:"user_id" json:"user_id"`
	FirstName sql.NullString `db:"first_name" json:"first_name"`
	Username  sql.NullString `db:"username" json:"username"`

	// Party composition. AdultsCount includes the registrant.
	AdultsCount   int            `db:"adults_count" json:"adults_count"`
	ChildrenCount int            `db:"children_count" json:"children_count"`
	ChildrenAges  sql.NullString `db:"children_ages" json:"children_ages"`

	VehicleID *uuid.UUID     `db:"vehicle_id" json:"vehicle_id"`
	CarInfo   sql.NullString `db:"car_info" json:"car_info"`
	Phone     sql.NullString `db:"phone" json:"phone"`

	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

func (r *Registration) IsPaid() bool {
	return r.PaymentStatus == PaymentStatusPaid
}
