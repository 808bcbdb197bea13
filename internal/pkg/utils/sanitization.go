package utils

import (
	"clinic-admin-service/internal/pkg/dto/requests"
	"strings"
)

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func SanitizeLoginRequest(input *requests.LoginUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.TrimSpace(input.Role)
	input.FirstName = trimOptional(input.FirstName)
	input.LastName = trimOptional(input.LastName)
	input.ExternalID = trimOptional(input.ExternalID)
}

func SanitizeUpdateUserRequest(input *requests.UpdateUser) {
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
	}
	input.Role = trimOptional(input.Role)
	input.FirstName = trimOptional(input.FirstName)
	input.LastName = trimOptional(input.LastName)
	input.ExternalID = trimOptional(input.ExternalID)
}
