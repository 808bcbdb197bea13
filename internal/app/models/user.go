package models

type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	FirstName    *string        `json:"first_name"`
	LastName     *string        `json:"last_name"`
	Role         string         `json:"role"`
	ExternalID   *string        `json:"external_id"`
	TenantID     string         `json:"tenant_id"`
	PasswordHash string         `json:"-"`
	Count        map[string]int `json:"_count,omitempty"`
	TimeModel
}

func (u User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
