package payroll

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	payrollerrors "go-payroll/internal/payroll/errors"
)

// mapRepositoryError translates storage-level failures into domain errors.
// The 23505 branch is what closes the check-then-insert race: a concurrent
// duplicate surfaces here as a Conflict, same as the pre-check path.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_employee_period" {
			return payrollerrors.ErrPayrollAlreadyProcessed
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_employee_period") {
		return payrollerrors.ErrPayrollAlreadyProcessed
	}

	return err
}
