package entity

import (
	"github.com/google/uuid"
)

type Attendance struct {
	BaseSimple
	EventID  uuid.UUID `db:"event_id"`
	UserID   uuid.UUID `db:"user_id"`
	Present  bool      `db:"present"`
	MarkedBy uuid.UUID `db:"marked_by"`
}
