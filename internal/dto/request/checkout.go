package request

// CheckoutRequest carries the whole cart submission in one call. Proof fields
// come from the multipart upload; they may be empty only when every cart line
// is free of charge.
type CheckoutRequest struct {
	TransactionID   string `json:"transaction_id"`
	TransactionTime string `json:"transaction_time"`
	TransactionDate string `json:"transaction_date"`
	CouponCode      string `json:"coupon_code,omitempty"`
	ProofName       string `json:"-"`
	Proof           []byte `json:"-"`
}
