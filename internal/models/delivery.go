package models

import "time"

// DeliveryRecord is one notification that passed through the gate.
type DeliveryRecord struct {
	ID        string    `json:"id"`
	App       string    `json:"app"`
	Text      string    `json:"text"`
	Muted     bool      `json:"muted"`
	Reason    string    `json:"reason"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Status summarises the outcome for listings.
func (r DeliveryRecord) Status() string {
	switch {
	case r.Muted:
		return "muted"
	case r.Delivered:
		return "sent"
	case r.Error != "":
		return "failed"
	default:
		return "dropped"
	}
}
