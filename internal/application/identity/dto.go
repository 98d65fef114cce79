package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the issued token and the authenticated user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the public view of a user returned after login
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Region       string     `json:"region,omitempty"`
	Role         string     `json:"role"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty"`
}
