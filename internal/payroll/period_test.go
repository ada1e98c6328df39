package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
)

func TestNormalizeMonth(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1", want: "01"},
		{in: "01", want: "01"},
		{in: "9", want: "09"},
		{in: "10", want: "10"},
		{in: "12", want: "12"},
		{in: "0", wantErr: true},
		{in: "13", wantErr: true},
		{in: "march", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := payroll.NormalizeMonth(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestPeriodWindow(t *testing.T) {
	from, to := payroll.PeriodWindow("02", 2026)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)

	// December rolls into the next year.
	from, to = payroll.PeriodWindow("12", 2025)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
