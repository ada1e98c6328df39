package analytics

import (
	"sort"
	"strconv"
	"time"

	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/payroll"
)

// minAggregateRecords is the floor below which monthly aggregation refuses to
// produce a series. Forecasting over fewer points is pure noise.
const minAggregateRecords = 5

// MonthlyPoint is one month of total net payroll. Month is always the first
// day of the month at midnight UTC.
type MonthlyPoint struct {
	Month time.Time
	Total float64
}

// AggregateMonthly groups payroll records by period, sums net salaries and
// returns a dense, contiguous monthly series between the earliest and latest
// observed months. Interior gaps are linearly interpolated from their
// neighbours. The result is deterministic for identical input.
func AggregateMonthly(records []payroll.PayrollRecord) ([]MonthlyPoint, error) {
	if len(records) < minAggregateRecords {
		return nil, analyticserrors.ErrInsufficientData
	}

	totals := make(map[time.Time]float64)
	var sum float64
	for _, r := range records {
		m, err := strconv.Atoi(r.Month)
		if err != nil || m < 1 || m > 12 {
			continue
		}
		key := time.Date(r.Year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		totals[key] += r.NetSalary
		sum += r.NetSalary
	}

	if len(totals) == 0 || sum == 0 {
		return nil, analyticserrors.ErrInsufficientData
	}

	observed := make([]time.Time, 0, len(totals))
	for k := range totals {
		observed = append(observed, k)
	}
	sort.Slice(observed, func(i, j int) bool { return observed[i].Before(observed[j]) })

	first, last := observed[0], observed[len(observed)-1]

	series := make([]MonthlyPoint, 0, len(totals))
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		series = append(series, MonthlyPoint{Month: m})
	}

	fillGaps(series, totals)

	return series, nil
}

// fillGaps rewrites months missing from totals with values interpolated
// between the nearest observed neighbours. The first and last months are
// always observed, so every gap is interior; boundary fills are kept anyway
// for safety against future callers.
func fillGaps(series []MonthlyPoint, totals map[time.Time]float64) {
	n := len(series)
	known := make([]bool, n)
	for i := range series {
		if v, ok := totals[series[i].Month]; ok {
			series[i].Total = v
			known[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if known[i] {
			continue
		}

		prev := i - 1
		for prev >= 0 && !known[prev] {
			prev--
		}
		next := i + 1
		for next < n && !known[next] {
			next++
		}

		switch {
		case prev >= 0 && next < n:
			span := float64(next - prev)
			frac := float64(i - prev)
			series[i].Total = series[prev].Total + (series[next].Total-series[prev].Total)*frac/span
		case next < n:
			series[i].Total = series[next].Total
		case prev >= 0:
			series[i].Total = series[prev].Total
		}
	}
}
