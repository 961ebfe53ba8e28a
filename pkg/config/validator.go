package config

import (
	"strings"

	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
)

type validator struct {
}

func NewValidator() model.RequiredValuesValidator {
	return validator{}
}

func (v validator) Validate(options []model.OptionDescriptor, resolved model.ResolvedConfig) model.ValidationResult {
	return ValidateRequired(options, resolved)
}

// ValidateRequired returns the flag of every required option without a
// value, in declaration order. It checks all options, so a user can fix
// every missing flag at once.
func ValidateRequired(options []model.OptionDescriptor, resolved model.ResolvedConfig) (validationErrors model.ValidationResult) {
	for _, o := range options {
		if !o.Required {
			continue
		}
		if v, ok := resolved.Get(o.Name); !ok || v == "" {
			validationErrors = append(validationErrors, o.Flag)
		}
	}
	if len(validationErrors) > 0 {
		logger.WithField("func", "ValidateRequired").Errorf("the following arguments are required: %s", strings.Join(validationErrors, ", "))
	}
	logger.WithField("func", "ValidateRequired").Infof("validation finished with %d validation errors", len(validationErrors))
	return validationErrors
}
