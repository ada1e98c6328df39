package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrPayrollAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"Payroll already processed for this employee and period",
		http.StatusConflict,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month, expected 1-12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrEmployeeRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee record not found for this user",
		http.StatusNotFound,
	)
	ErrNotRecordOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own payroll records",
		http.StatusForbidden,
	)
)
