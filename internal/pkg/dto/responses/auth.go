package responses

import "time"

type LoginUser struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Profile struct {
	UserID    string              `json:"user_id"`
	Email     string              `json:"email"`
	Name      string              `json:"name"`
	Roles     []string            `json:"roles"`
	TenantID  string              `json:"tenant_id"`
	Abilities map[string][]string `json:"abilities"`
}
