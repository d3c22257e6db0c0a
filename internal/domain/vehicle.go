package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Vehicle is a garage entry owned by a club member.
type Vehicle struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Model     string         `db:"model" json:"model"`
	Tires     sql.NullString `db:"tires" json:"tires"`
	HasWinch  bool           `db:"has_winch" json:"has_winch"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
