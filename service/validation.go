package service

import (
	"errors"

	"skillswap-service/model"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return lo.Contains(model.Categories, fl.Field().String())
	})
	return v
}

// failedTag returns the tag of the first failed rule on field, or "".
func failedTag(err error, field string) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return ""
	}
	for _, fe := range errs {
		if fe.Field() == field {
			return fe.Tag()
		}
	}
	return ""
}
