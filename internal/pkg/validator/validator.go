package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Payment mode validation
	validate.RegisterValidation("payment_mode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		validModes := []string{"cash", "cheque", "card", "online", ""}
		for _, m := range validModes {
			if mode == m {
				return true
			}
		}
		return false
	})

	// Membership duration validation: standard tiers plus 0 (temporary)
	validate.RegisterValidation("months_tier", func(fl validator.FieldLevel) bool {
		months := fl.Field().Int()
		switch months {
		case 0, 1, 3, 6, 12:
			return true
		}
		return false
	})

	// Renewal duration validation: temporary memberships cannot renew
	validate.RegisterValidation("renew_months", func(fl validator.FieldLevel) bool {
		months := fl.Field().Int()
		switch months {
		case 1, 3, 6, 12:
			return true
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier"
		case "payment_mode":
			errors[field] = "Invalid payment mode. Must be: cash, cheque, card, or online"
		case "months_tier":
			errors[field] = "Invalid duration. Must be 0 (temporary), 1, 3, 6, or 12 months"
		case "renew_months":
			errors[field] = "Invalid duration. Must be 1, 3, 6, or 12 months"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
