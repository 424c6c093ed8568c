package model

// InviteCodeStatus is computed on demand by joining registry membership with
// the booking store; it is never persisted.
type InviteCodeStatus struct {
	Code    string   `json:"code"`
	IsValid bool     `json:"isValid"`
	IsUsed  bool     `json:"isUsed"`
	Booking *Booking `json:"booking,omitempty"`
}
