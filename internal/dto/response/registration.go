package response

import (
	"time"

	"symposium-registration/internal/data/entity"
)

type RegistrationResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Kind            string    `json:"kind"`
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	Quantity        int       `json:"quantity,omitempty"`
	TransactionID   string    `json:"transaction_id"`
	TransactionTime string    `json:"transaction_time,omitempty"`
	TransactionDate string    `json:"transaction_date,omitempty"`
	Amount          int       `json:"amount"`
	Verified        *bool     `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
}

type CheckoutResponse struct {
	TransactionID string                 `json:"transaction_id"`
	Amount        int                    `json:"amount"`
	Free          bool                   `json:"free"`
	Registrations []RegistrationResponse `json:"registrations"`
}

// BulkVerifyResult is the per-transaction outcome of a CSV-driven batch. One
// row failing never stops the rest.
type BulkVerifyResult struct {
	TransactionID string `json:"transaction_id"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type BulkVerifyResponse struct {
	Results   []BulkVerifyResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

type PassIssuanceResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	PassID         string     `json:"pass_id"`
	RegistrationID string     `json:"registration_id"`
	Issued         bool       `json:"issued"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
}

type AttendanceResponse struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Present  bool   `json:"present"`
	MarkedBy string `json:"marked_by"`
}

// BroadcastResult is the per-recipient outcome of a bulk email.
type BroadcastResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type BroadcastResponse struct {
	Results   []BroadcastResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

func RegistrationToResponse(reg *entity.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:              reg.ID.String(),
		UserID:          reg.UserID.String(),
		Kind:            string(reg.Kind),
		ItemID:          reg.ItemID.String(),
		ItemName:        reg.ItemName,
		Quantity:        reg.Quantity,
		TransactionID:   reg.TransactionID,
		TransactionTime: reg.TransactionTime,
		TransactionDate: reg.TransactionDate,
		Amount:          reg.TransactionAmount,
		Verified:        reg.Verified,
		CreatedAt:       reg.CreatedAt,
	}
}

func PassIssuanceToResponse(issuance *entity.PassIssuance) PassIssuanceResponse {
	return PassIssuanceResponse{
		ID:             issuance.ID.String(),
		UserID:         issuance.UserID.String(),
		PassID:         issuance.PassID.String(),
		RegistrationID: issuance.RegistrationID.String(),
		Issued:         issuance.Issued,
		IssuedAt:       issuance.IssuedAt,
	}
}

func AttendanceToResponse(att *entity.Attendance) AttendanceResponse {
	return AttendanceResponse{
		EventID:  att.EventID.String(),
		UserID:   att.UserID.String(),
		Present:  att.Present,
		MarkedBy: att.MarkedBy.String(),
	}
}
