package request

type VerifyRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,min=1,max=100"`
}

type AttendanceRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
	UserID  string `json:"user_id" validate:"required,uuid4"`
	Present bool   `json:"present"`
}

type BroadcastEmailRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required,min=1"`
	// Empty means every active user.
	Recipients []string `json:"recipients,omitempty" validate:"omitempty,dive,email"`
}
