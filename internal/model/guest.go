package model

import "time"

// Guest represents a guest profile in the directory.  Beyond the
// primary key there is no uniqueness constraint; the same person may
// appear twice with different identity documents.
type Guest struct {
	ID            uint64    `json:"id"`              // guests.id
	FirstName     string    `json:"first_name"`      // guests.first_name
	LastName      string    `json:"last_name"`       // guests.last_name
	Email         string    `json:"email"`           // guests.email
	Phone         string    `json:"phone"`           // guests.phone
	Address       string    `json:"address"`         // guests.address
	IDProofType   string    `json:"id_proof_type"`   // guests.id_proof_type
	IDProofNumber string    `json:"id_proof_number"` // guests.id_proof_number
	CreatedAt     time.Time `json:"created_at"`      // guests.created_at
	UpdatedAt     time.Time `json:"updated_at"`      // guests.updated_at
}
