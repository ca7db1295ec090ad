package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"swiftmeet/internal/domain"
)

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.IsCategory(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateDraft checks a normalized draft and returns a *domain.ValidationError
// listing every failed field, in declaration order.
func validateDraft(d domain.EventDraft) error {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &domain.ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, domain.FieldError{Field: fe.Field(), Reason: reasonFor(fe)})
	}
	return ve
}

const emailReason = "must be a valid email address"

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "contactEmail" {
			return emailReason
		}
		return "is required"
	case "category":
		return "must be one of: " + strings.Join(domain.Categories, ", ")
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return "must be a date formatted YYYY-MM-DD"
		}
		return "must be a time formatted HH:MM"
	case "contains":
		return emailReason
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
