package requests

type CreateUser struct {
	Email      string  `json:"email" validate:"required,email,max=255"`
	Password   string  `json:"password" validate:"required,password"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=255"`
	LastName   *string `json:"last_name" validate:"omitempty,max=255"`
	Role       string  `json:"role" validate:"required,tenant_role"`
	ExternalID *string `json:"external_id" validate:"omitempty,max=255"`
}

type UpdateUser struct {
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Password   *string `json:"password" validate:"omitempty,password"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=255"`
	LastName   *string `json:"last_name" validate:"omitempty,max=255"`
	Role       *string `json:"role" validate:"omitempty,tenant_role"`
	ExternalID *string `json:"external_id" validate:"omitempty,max=255"`
}
