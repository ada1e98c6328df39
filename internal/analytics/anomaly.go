package analytics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/money"
)

const (
	minAnomalyRecords = 10
	anomalyNeighbours = 5
	// Share of records expected to be outliers. The score threshold sits at
	// the (1 - contamination) percentile.
	anomalyContamination = 0.10

	anomalyReason = "Net salary deviates sharply from the payroll distribution"
)

// AnomalyFlag is one payroll record flagged as a distribution outlier.
type AnomalyFlag struct {
	EmployeeID   string
	EmployeeName string
	Month        string
	Year         int
	NetSalary    float64
	Score        float64
	DeviationPct float64
	Reason       string
}

// DetectAnomalies scores each record by the distance to its k-th nearest
// neighbour over net salaries and flags records above the 90th percentile of
// scores. Returns ErrInsufficientData under minAnomalyRecords records; the
// service turns that into an empty result, not a request failure.
func DetectAnomalies(records []payroll.PayrollRecord) ([]AnomalyFlag, error) {
	n := len(records)
	if n < minAnomalyRecords {
		return nil, analyticserrors.ErrInsufficientData
	}

	values := make([]float64, n)
	for i, r := range records {
		values[i] = r.NetSalary
	}

	scores := knnScores(values, anomalyNeighbours)

	threshold, err := stats.Percentile(scores, (1-anomalyContamination)*100)
	if err != nil {
		return nil, analyticserrors.ErrInsufficientData
	}
	mean, err := stats.Mean(values)
	if err != nil || mean == 0 {
		return nil, analyticserrors.ErrInsufficientData
	}

	var flags []AnomalyFlag
	for i, r := range records {
		if scores[i] <= threshold {
			continue
		}
		flags = append(flags, AnomalyFlag{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Month:        r.Month,
			Year:         r.Year,
			NetSalary:    r.NetSalary,
			Score:        money.Round2(scores[i] / 1000),
			DeviationPct: money.Round2((r.NetSalary - mean) / mean * 100),
			Reason:       anomalyReason,
		})
	}

	sort.Slice(flags, func(i, j int) bool { return flags[i].Score > flags[j].Score })

	return flags, nil
}

// knnScores returns, per value, the distance to its k-th nearest neighbour.
// One dimension keeps this a sorted-scan problem rather than a spatial index.
func knnScores(values []float64, k int) []float64 {
	n := len(values)
	if k >= n {
		k = n - 1
	}

	scores := make([]float64, n)
	dists := make([]float64, 0, n-1)
	for i, v := range values {
		dists = dists[:0]
		for j, w := range values {
			if i == j {
				continue
			}
			dists = append(dists, math.Abs(v-w))
		}
		sort.Float64s(dists)
		scores[i] = dists[k-1]
	}
	return scores
}
