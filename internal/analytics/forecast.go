package analytics

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"go-payroll/internal/shared/money"
)

// The model is an additive decomposition fit by regularized least squares:
// a piecewise-linear trend with changepoints, yearly seasonality and a
// shorter quarterly component expressed as Fourier harmonics. Time enters in
// days so the seasonal periods are calendar-true regardless of month length.
const (
	forecastHorizonMonths = 6
	forecastWindow        = 12

	yearlyPeriodDays    = 365.25
	quarterlyPeriodDays = 90.0
	yearlyOrder         = 3
	quarterlyOrder      = 3

	maxChangepoints    = 5
	changepointSpan    = 0.8 // changepoints live in the first 80% of history
	ridgeLambda        = 1e-4
	intervalZ          = 1.96

	// Matches the aggregator's record floor: any series that survives
	// AggregateMonthly must be fittable.
	minForecastHistory = 5
)

var errDegenerateSeries = errors.New("series too short or flat to fit")

// ForecastPoint is one month of fitted or projected total net payroll with a
// 95% interval.
type ForecastPoint struct {
	Month     time.Time
	Predicted float64
	Lower     float64
	Upper     float64
}

// Forecast fits the model over a dense monthly series and returns the last
// forecastWindow points of the fitted history extended forecastHorizonMonths
// into the future. Callers should treat any error as "no forecast", not a
// request failure.
func Forecast(series []MonthlyPoint) ([]ForecastPoint, error) {
	n := len(series)
	if n < minForecastHistory {
		return nil, errDegenerateSeries
	}

	origin := series[0].Month
	ts := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range series {
		ts[i] = daysSince(origin, p.Month)
		ys[i] = p.Total
	}

	changepoints := pickChangepoints(ts)
	cols := 2 + len(changepoints) + 2*yearlyOrder + 2*quarterlyOrder

	// Ridge via augmentation: stack sqrt(lambda)*I under the design matrix so
	// a plain QR solve regularizes the (often near-collinear) trend columns.
	rows := n + cols
	X := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)

	for i := 0; i < n; i++ {
		X.SetRow(i, designRow(ts[i], changepoints, cols))
		y.SetVec(i, ys[i])
	}
	sqrtLambda := math.Sqrt(ridgeLambda)
	for j := 0; j < cols; j++ {
		X.Set(n+j, j, sqrtLambda)
	}

	var qr mat.QR
	qr.Factorize(X)

	beta := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(beta, false, y); err != nil {
		return nil, errDegenerateSeries
	}

	// Residual spread over the observed points only.
	var sse float64
	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = predict(ts[i], changepoints, beta)
		r := ys[i] - fitted[i]
		sse += r * r
	}
	sigma := math.Sqrt(sse / float64(max(n-1, 1)))
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, errDegenerateSeries
	}

	total := n + forecastHorizonMonths
	points := make([]ForecastPoint, 0, total)
	for i := 0; i < total; i++ {
		m := origin.AddDate(0, i, 0)
		var pred float64
		if i < n {
			pred = fitted[i]
		} else {
			pred = predict(daysSince(origin, m), changepoints, beta)
		}
		points = append(points, finishPoint(m, pred, sigma))
	}

	if len(points) > forecastWindow {
		points = points[len(points)-forecastWindow:]
	}
	return points, nil
}

func finishPoint(m time.Time, pred, sigma float64) ForecastPoint {
	lower := pred - intervalZ*sigma
	upper := pred + intervalZ*sigma

	// Payroll cost cannot go negative, and a runaway upper bound is more
	// misleading than a tightened one.
	pred = math.Max(pred, 0)
	lower = math.Max(lower, 0)
	upper = math.Max(upper, 0)
	if upper > 2*pred {
		upper = 1.5 * pred
	}

	return ForecastPoint{
		Month:     m,
		Predicted: money.Round2(pred),
		Lower:     money.Round2(lower),
		Upper:     money.Round2(upper),
	}
}

// pickChangepoints spreads up to maxChangepoints evenly over the first 80% of
// observed time, skipping the endpoints.
func pickChangepoints(ts []float64) []float64 {
	n := len(ts)
	count := maxChangepoints
	if interior := n - 2; interior < count {
		count = interior
	}
	if count <= 0 {
		return nil
	}

	limit := ts[len(ts)-1] * changepointSpan
	cps := make([]float64, 0, count)
	for j := 1; j <= count; j++ {
		cps = append(cps, limit*float64(j)/float64(count+1))
	}
	return cps
}

func designRow(t float64, changepoints []float64, cols int) []float64 {
	row := make([]float64, 0, cols)
	row = append(row, 1, t)
	for _, cp := range changepoints {
		if t > cp {
			row = append(row, t-cp)
		} else {
			row = append(row, 0)
		}
	}
	row = appendFourier(row, t, yearlyPeriodDays, yearlyOrder)
	row = appendFourier(row, t, quarterlyPeriodDays, quarterlyOrder)
	return row
}

func appendFourier(row []float64, t, period float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		angle := 2 * math.Pi * float64(k) * t / period
		row = append(row, math.Cos(angle), math.Sin(angle))
	}
	return row
}

func predict(t float64, changepoints []float64, beta *mat.VecDense) float64 {
	row := designRow(t, changepoints, beta.Len())
	var v float64
	for j, x := range row {
		v += x * beta.AtVec(j)
	}
	return v
}

func daysSince(origin, m time.Time) float64 {
	return m.Sub(origin).Hours() / 24
}
