package dto

import (
	"time"

	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(helpers.DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(helpers.DateLayout)
	return &s
}

// parseDate reads a required date field, naming the field on failure
func parseDate(field, value string) (time.Time, error) {
	t, err := helpers.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, err.Error())
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	t, err := helpers.ParseOptionalDate(value)
	if err != nil {
		return nil, apperrors.NewValidationError(field, err.Error())
	}
	return t, nil
}

// parseDatePatch reads a date that is only changed when present
func parseDatePatch(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
