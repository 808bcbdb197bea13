package utils

import (
	"clinic-admin-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	specialCharRegex = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	uppercaseRegex   = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterValidation("password", validatePassword)
	v.RegisterValidation("tenant_role", validateTenantRole)
	return v
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	hasSpecialChar := specialCharRegex.MatchString(password)
	hasUppercase := uppercaseRegex.MatchString(password)
	return hasMinLen && hasSpecialChar && hasUppercase
}

func validateTenantRole(fl validator.FieldLevel) bool {
	return slices.Contains(constvars.TenantRoles, fl.Field().String())
}
