package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/analytics"
)

func linearSeries(start time.Time, months int, base, slope float64) []analytics.MonthlyPoint {
	series := make([]analytics.MonthlyPoint, months)
	for i := 0; i < months; i++ {
		series[i] = analytics.MonthlyPoint{
			Month: start.AddDate(0, i, 0),
			Total: base + slope*float64(i),
		}
	}
	return series
}

func TestForecast_TooShort(t *testing.T) {
	series := linearSeries(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 3, 1000, 10)
	_, err := analytics.Forecast(series)
	assert.Error(t, err)
}

// Five contiguous months is the smallest history the aggregator lets through,
// so the fit must accept it rather than reporting a degenerate series.
func TestForecast_FiveMonthHistory(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	series := linearSeries(start, 5, 8000, 50)

	points, err := analytics.Forecast(series)
	assert.NoError(t, err)
	assert.Len(t, points, 11)

	assert.Equal(t, start, points[0].Month)
	assert.Equal(t, start.AddDate(0, 10, 0), points[len(points)-1].Month)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
	}
}

func TestForecast_WindowAndHorizon(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := linearSeries(start, 24, 10000, 100)

	points, err := analytics.Forecast(series)
	assert.NoError(t, err)
	assert.Len(t, points, 12)

	// 24 observed + 6 projected, last 12 returned: months 18..29 from start.
	assert.Equal(t, start.AddDate(0, 18, 0), points[0].Month)
	assert.Equal(t, start.AddDate(0, 29, 0), points[len(points)-1].Month)

	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].Month.AddDate(0, 1, 0), points[i].Month)
	}
}

func TestForecast_TracksLinearTrend(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := linearSeries(start, 24, 10000, 100)

	points, err := analytics.Forecast(series)
	assert.NoError(t, err)

	// A noiseless linear series should be fitted nearly exactly, so the
	// projected tail keeps climbing.
	last := points[len(points)-1]
	first := points[0]
	assert.Greater(t, last.Predicted, first.Predicted)
	assert.InDelta(t, 10000+100*29, last.Predicted, 1000)
}

func TestForecast_BoundsWellFormed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := linearSeries(start, 18, 5000, 50)

	points, err := analytics.Forecast(series)
	assert.NoError(t, err)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
		assert.GreaterOrEqual(t, p.Lower, 0.0)
		assert.GreaterOrEqual(t, p.Upper, 0.0)
		assert.LessOrEqual(t, p.Lower, p.Predicted+0.01)
		assert.LessOrEqual(t, p.Upper, 2*p.Predicted+0.01)
	}
}

func TestForecast_ClampsNegativeProjection(t *testing.T) {
	// Steeply declining cost crosses zero inside the horizon.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := linearSeries(start, 12, 5000, -500)

	points, err := analytics.Forecast(series)
	assert.NoError(t, err)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
		assert.GreaterOrEqual(t, p.Lower, 0.0)
		assert.GreaterOrEqual(t, p.Upper, 0.0)
	}
}
