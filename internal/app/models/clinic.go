package models

type Clinic struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Image       *string        `json:"image"`
	UserID      string         `json:"user_id"`
	TenantID    string         `json:"tenant_id"`
	User        *User          `json:"user,omitempty"`
	Count       map[string]int `json:"_count,omitempty"`
	TimeModel
}
