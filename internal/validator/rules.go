package validator

import (
	"log"

	"beatbattle_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the project's domain rules into the validator.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-notification-kind", validateNotificationKind)
}

func validateNotificationKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by 'required'
	}
	return models.NotificationKind(value).Valid()
}
