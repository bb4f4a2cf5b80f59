package entity

import (
	"github.com/google/uuid"
)

// Registration is one purchased cart line awaiting (or past) payment
// verification. Verified is tri-state: nil pending, true verified,
// false rejected.
type Registration struct {
	BaseNoDelete
	UserID            uuid.UUID    `db:"user_id"`
	Kind              CartItemKind `db:"kind"`
	ItemID            uuid.UUID    `db:"item_id"`
	ItemName          string       `db:"item_name"`
	Quantity          int          `db:"quantity"`
	WorkshopEventIDs  []string     `db:"workshop_event_ids"`
	TransactionID     string       `db:"transaction_id"`
	TransactionTime   string       `db:"transaction_time"`
	TransactionDate   string       `db:"transaction_date"`
	TransactionAmount int          `db:"transaction_amount"`
	ProofName         string       `db:"proof_name"`
	ProofData         []byte       `db:"proof_data"`
	Verified          *bool        `db:"verified"`
}

func (r *Registration) Pending() bool {
	return r.Verified == nil
}
