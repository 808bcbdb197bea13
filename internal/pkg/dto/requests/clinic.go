package requests

type CreateClinic struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,url"`
	UserID      string  `json:"user_id" validate:"required,uuid"`
}

type UpdateClinic struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,url"`
	UserID      *string `json:"user_id" validate:"omitempty,uuid"`
}
