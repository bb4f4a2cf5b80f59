package entity

import (
	"time"

	"github.com/google/uuid"
)

// PassIssuance is the ledger of physical pass hand-overs. A row is created
// when payment for a pass is verified; Issued flips when the pass is
// actually collected.
type PassIssuance struct {
	BaseSimple
	UserID         uuid.UUID  `db:"user_id"`
	PassID         uuid.UUID  `db:"pass_id"`
	RegistrationID uuid.UUID  `db:"registration_id"`
	Issued         bool       `db:"issued"`
	IssuedAt       *time.Time `db:"issued_at"`
}
