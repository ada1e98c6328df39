package payroll

import (
	"strconv"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
)

// NormalizeMonth accepts "1"–"12" or a zero-padded form and returns the
// canonical two-digit month. Callers supply months in both shapes; arithmetic
// and storage always see the canonical one.
func NormalizeMonth(month string) (string, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", payrollerrors.ErrInvalidMonth
	}
	return padMonth(m), nil
}

func padMonth(m int) string {
	if m < 10 {
		return "0" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

// PeriodWindow returns [month-start, next-month-start) for the given
// canonical month and year.
func PeriodWindow(month string, year int) (time.Time, time.Time) {
	m, _ := strconv.Atoi(month)
	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
