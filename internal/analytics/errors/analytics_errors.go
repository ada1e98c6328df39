package analyticserrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	// ErrInsufficientData never reaches the HTTP layer as a failure; the
	// service converts it into an empty result with a message.
	ErrInsufficientData = apperror.New(
		apperror.CodeInsufficientData,
		"Not enough payroll history for analytics",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee record not found for this user",
		http.StatusNotFound,
	)
	ErrUnknownRole = apperror.New(
		apperror.CodeForbidden,
		"Role is not allowed to view the dashboard",
		http.StatusForbidden,
	)
)
