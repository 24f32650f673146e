package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Grade labels look like "10-9" or "11-1": grade number, dash, section.
var gradeLabelRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)

func registerCustomRules(v *validator.Validate) error {
	return v.RegisterValidation("grade_label", func(fl validator.FieldLevel) bool {
		return gradeLabelRe.MatchString(fl.Field().String())
	})
}
