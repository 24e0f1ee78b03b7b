package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/readsprout/learning-service/internal/errors"
	"github.com/readsprout/learning-service/internal/models"
)

// Custom validation functions

func ValidateActivityType(fl validator.FieldLevel) bool {
	validTypes := []models.ActivityType{
		models.ActivityGame,
		models.ActivityTracing,
		models.ActivityReading,
		models.ActivityVideo,
	}

	// Case-insensitive: clients send lowercase type names and the
	// service normalizes them before persisting.
	value := fl.Field().String()
	for _, validType := range validTypes {
		if strings.EqualFold(string(validType), value) {
			return true
		}
	}
	return false
}

func ValidateTier(fl validator.FieldLevel) bool {
	validTiers := []models.Tier{
		models.TierBeginner,
		models.TierIntermediate,
		models.TierAdvanced,
	}

	value := fl.Field().String()
	for _, validTier := range validTiers {
		if string(validTier) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("activity_type", ValidateActivityType)
	validate.RegisterValidation("tier", ValidateTier)

	// Report json field names in validation errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validator wraps the go-playground validator with our custom rules and
// error conversion.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks the struct tags and converts failures into
// apperrors.ValidationErrors so callers never see validator internals.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// Engine exposes the underlying validator for binding integrations.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}
