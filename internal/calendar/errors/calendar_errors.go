package calendarerrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrInvalidWindow = apperror.New(
		apperror.CodeInvalidInput,
		"window end must not be before window start",
		http.StatusBadRequest,
	)
	ErrEmptyWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working day set must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"working days must be ISO weekdays between 1 (Monday) and 7 (Sunday)",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year is out of range",
		http.StatusBadRequest,
	)
)
