package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom rules registered
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := RegisterRules(validate); err != nil {
			panic(fmt.Sprintf("validation: registering rules: %v", err))
		}
	})
	return validate
}

// RegisterRules adds the custom tags to v and makes field errors report json names.
// gin's binding validator is passed through here too so request DTOs share the rules.
func RegisterRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"payment_method": func(fl validator.FieldLevel) bool {
			return domain.PaymentMethod(fl.Field().String()).Valid()
		},
		"fiscal_year": func(fl validator.FieldLevel) bool {
			return domain.ValidFinancialYear(fl.Field().String())
		},
		"month": func(fl validator.FieldLevel) bool {
			_, err := helpers.ParseMonth(fl.Field().String())
			return err == nil
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Struct validates s and converts the first failure into a field validation error.
// All failures are attached as details.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return ToAppError(err)
}

// ToAppError converts validator errors into an apperrors validation error
func ToAppError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = Message(fe)
	}

	first := fieldErrs[0]
	custom := apperrors.NewCustomError(apperrors.ErrValidationFailed, Message(first))
	custom.Field = first.Field()
	return custom.WithDetails(details)
}

// Message renders a field error as a human readable sentence
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "payment_method":
		return e.Field() + " must be one of: UPI CASH BANK OTHER"
	case "fiscal_year":
		return e.Field() + " must be a financial year like 25-26"
	case "month", "datetime":
		return e.Field() + " has an invalid date format"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
