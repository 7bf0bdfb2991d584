package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

var validate = validator.New()

// ValidateConfig validates a configuration struct using its validate tags.
func ValidateConfig(name string, config any) error {
	if err := validate.Struct(config); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s configuration", name)
	}

	return nil
}
