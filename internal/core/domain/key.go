package domain

import "time"

// RegistrationKey is a single-use invitation token. Once consumed it is
// immutable: IsUsed never reverts and used keys cannot be deleted.
type RegistrationKey struct {
	ID          string    `json:"id"`
	Value       string    `json:"value"`
	IsUsed      bool      `json:"is_used"`
	UsedBy      string    `json:"used_by,omitempty"`
	GeneratedBy string    `json:"generated_by"`
	CreatedAt   time.Time `json:"created_at"`
}
