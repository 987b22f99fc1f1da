package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"campus-community-backend/internal/apperr"
)

// Constraint runs a struct through go-playground/validator tags and collapses
// every violated field into a single INVALID_PARAMETER error, so the caller
// sees all problems at once instead of the first.
func Constraint(target any, check *validator.Validate) Validator {
	return ValidatorFunc(func() error {
		err := check.Struct(target)
		if err == nil {
			return nil
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperr.Newf(apperr.CodeInternalServer, "constraint validation failed: %v", err)
		}

		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, describeFieldError(fe))
		}
		return apperr.Newf(apperr.CodeInvalidParameter, "invalid parameters: %s", strings.Join(details, "; "))
	})
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", fe.Field(), fe.Param())
	case "hexadecimal":
		return fmt.Sprintf("%s must be hexadecimal", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
