package models

import (
	"slices"
	"time"
)

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	TenantID  string    `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}
