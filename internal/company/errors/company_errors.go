package companyerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrDomainTaken = apperror.New(
		apperror.CodeConflict,
		"a company with this domain is already registered",
		http.StatusConflict,
	)
	ErrDomainMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"your email domain does not match the company domain",
		http.StatusBadRequest,
	)
)
