package mykafka

import "time"

const (
	EventUserRegistered      = "user_registered"
	EventUserLoggedOut       = "user_logged_out"
	EventReclamationCreated  = "reclamation_created"
	EventReclamationAdjudged = "reclamation_updated"
)

type UserEvent struct {
	Type   string    `json:"type"`
	UserID uint      `json:"userID"`
	Email  string    `json:"email,omitempty"`
	At     time.Time `json:"at"`
}

type ReclamationEvent struct {
	Type          string    `json:"type"`
	ReclamationID uint      `json:"reclamationID"`
	UserID        uint      `json:"userID"`
	SupplierID    uint      `json:"supplierID"`
	Approved      bool      `json:"approved"`
	Refund        *float64  `json:"refund,omitempty"`
	At            time.Time `json:"at"`
}
