package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("actor_role", validateActorRole); err != nil {
		return nil
	}
	if err := v.RegisterValidation("menu_action", validateMenuAction); err != nil {
		return nil
	}
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		return nil
	}
	if err := v.RegisterValidation("asset_preset", validateAssetPreset); err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateActorRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "SUPER_ADMIN" || role == "CONTENT_MANAGER" || role == "MARKETER"
}

func validateMenuAction(fl playgroundvalidator.FieldLevel) bool {
	action := fl.Field().String()
	return action == "view" || action == "create" || action == "update" || action == "delete"
}

func validateWeekday(fl playgroundvalidator.FieldLevel) bool {
	validDays := map[string]bool{
		"monday":    true,
		"tuesday":   true,
		"wednesday": true,
		"thursday":  true,
		"friday":    true,
		"saturday":  true,
		"sunday":    true,
	}
	return validDays[strings.ToLower(fl.Field().String())]
}

func validateAssetPreset(fl playgroundvalidator.FieldLevel) bool {
	preset := fl.Field().String()
	return preset == "icon" || preset == "inline" || preset == "hero"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}
