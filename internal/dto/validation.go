package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of date-only query parameters.
const DateLayout = "2006-01-02"

// RegisterValidations installs the custom binding tags used by request DTOs.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("claimtype", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseClaimType(fl.Field().String())
		return ok
	})
}

// ParseDateRange parses optional from/to dates. To is extended to the end of its day
// so the range is inclusive.
func ParseDateRange(from, to string) (domain.DateRange, error) {
	var r domain.DateRange
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return r, apperrors.NewValidationFailedError(fmt.Sprintf("invalid from date %q", from))
		}
		r.From = &t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return r, apperrors.NewValidationFailedError(fmt.Sprintf("invalid to date %q", to))
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		r.To = &end
	}
	if !r.Valid() {
		return r, apperrors.NewValidationFailedError("from date must not be after to date")
	}
	return r, nil
}
