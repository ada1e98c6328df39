package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/analytics"
	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/payroll"
)

func record(month string, year int, net float64) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		EmployeeID: "EMP-001",
		Month:      month,
		Year:       year,
		NetSalary:  net,
	}
}

func TestAggregateMonthly_InsufficientData(t *testing.T) {
	t.Run("too few records", func(t *testing.T) {
		_, err := analytics.AggregateMonthly([]payroll.PayrollRecord{
			record("01", 2026, 1000),
			record("02", 2026, 1000),
		})
		assert.ErrorIs(t, err, analyticserrors.ErrInsufficientData)
	})

	t.Run("all zero totals", func(t *testing.T) {
		records := make([]payroll.PayrollRecord, 6)
		for i := range records {
			records[i] = record("01", 2026, 0)
		}
		_, err := analytics.AggregateMonthly(records)
		assert.ErrorIs(t, err, analyticserrors.ErrInsufficientData)
	})
}

func TestAggregateMonthly_GroupsAndInterpolates(t *testing.T) {
	// January and April observed, February observed twice, March missing.
	records := []payroll.PayrollRecord{
		record("01", 2026, 1000),
		record("02", 2026, 800),
		record("02", 2026, 1200),
		record("04", 2026, 4000),
		record("01", 2026, 500),
	}

	series, err := analytics.AggregateMonthly(records)
	assert.NoError(t, err)
	assert.Len(t, series, 4)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Month)
	assert.Equal(t, 1500.0, series[0].Total)
	assert.Equal(t, 2000.0, series[1].Total)

	// March sits halfway between February's 2000 and April's 4000.
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), series[2].Month)
	assert.Equal(t, 3000.0, series[2].Total)
	assert.Equal(t, 4000.0, series[3].Total)
}

func TestAggregateMonthly_Deterministic(t *testing.T) {
	records := []payroll.PayrollRecord{
		record("11", 2025, 900),
		record("12", 2025, 1100),
		record("01", 2026, 1000),
		record("02", 2026, 1050),
		record("03", 2026, 980),
	}

	first, err := analytics.AggregateMonthly(records)
	assert.NoError(t, err)
	second, err := analytics.AggregateMonthly(records)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregateMonthly_YearBoundary(t *testing.T) {
	records := []payroll.PayrollRecord{
		record("11", 2025, 900),
		record("12", 2025, 950),
		record("01", 2026, 1000),
		record("02", 2026, 1050),
		record("03", 2026, 1100),
	}

	series, err := analytics.AggregateMonthly(records)
	assert.NoError(t, err)
	assert.Len(t, series, 5)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), series[0].Month)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), series[4].Month)
}
