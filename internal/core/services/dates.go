package services

import (
	"fmt"
	"time"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/dto"
	"github.com/himaltex/production_tracking_app/internal/utils/nepcal"
)

// parseOptionalDate normalizes an optional YYYY-MM-DD string in either
// calendar system to the canonical timeline. An empty string is an open
// bound. Parse failures are validation errors naming the offending field.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := nepcal.ToCanonical(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, field, err)
	}
	if !nepcal.IsValidCanonical(t) {
		return nil, fmt.Errorf("%w: %s: %q normalizes to a sentinel date", apperrors.ErrValidation, field, value)
	}
	return &t, nil
}

// parseDateWindow normalizes both bounds of a wage query window. Omitted
// bounds stay open: no start means "since the beginning of records", no end
// means "through the present". The window is inclusive on both ends.
func parseDateWindow(window dto.DateWindow) (from, to *time.Time, err error) {
	from, err = parseOptionalDate("start_date", window.StartDate)
	if err != nil {
		return nil, nil, err
	}
	to, err = parseOptionalDate("end_date", window.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: start_date %s is after end_date %s", apperrors.ErrValidation, window.StartDate, window.EndDate)
	}
	return from, to, nil
}
