package workweekerrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrEmptyWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working_days must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"working_days must contain ISO weekdays between 1 (Monday) and 7 (Sunday)",
		http.StatusBadRequest,
	)
	ErrDuplicateWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"working_days must not contain duplicates",
		http.StatusBadRequest,
	)
)
