package simulation

import (
	"fmt"
	"math"
	"strings"

	"github.com/aishield/shield-backend/model"
)

var comparisonBaselines = map[model.ComparisonMetric]map[model.ComparisonPeriod]float64{
	model.MetricBudget:  {model.PeriodWeek: 4500, model.PeriodMonth: 18000, model.PeriodYear: 210000},
	model.MetricAttacks: {model.PeriodWeek: 320, model.PeriodMonth: 1400, model.PeriodYear: 15000},
}

var comparisonLabels = map[model.ComparisonMetric]string{
	model.MetricBudget:  "Kurtarılan Bütçe ($)",
	model.MetricAttacks: "Engellenen Tehditler",
	model.MetricRisk:    "Risk Skoru",
}

// Compare draws a previous/current pair for the comparative panel.
// Budget moves -10%..+30%, attacks -20%..+30%, risk ±10 points around 65.
func Compare(period model.ComparisonPeriod, metric model.ComparisonMetric, rng Source) (model.Comparison, error) {
	var prev, curr float64
	switch metric {
	case model.MetricBudget, model.MetricAttacks:
		base, ok := comparisonBaselines[metric][period]
		if !ok {
			return model.Comparison{}, fmt.Errorf("unknown comparison period %q", period)
		}
		prev = base
		if metric == model.MetricBudget {
			curr = prev * (1 + (rng.Float64()*0.4 - 0.1))
		} else {
			curr = prev * (1 + (rng.Float64()*0.5 - 0.2))
		}
	case model.MetricRisk:
		if _, ok := comparisonBaselines[model.MetricBudget][period]; !ok {
			return model.Comparison{}, fmt.Errorf("unknown comparison period %q", period)
		}
		prev = 65
		curr = 65 + math.Floor(rng.Float64()*20-10)
	default:
		return model.Comparison{}, fmt.Errorf("unknown comparison metric %q", metric)
	}

	delta := math.Round((curr-prev)/prev*1000) / 10
	improved := delta > 0
	if metric == model.MetricRisk {
		improved = delta < 0
	}

	return model.Comparison{
		Period:       period,
		Metric:       metric,
		MetricLabel:  comparisonLabels[metric],
		Previous:     int(math.Floor(prev)),
		Current:      int(math.Floor(curr)),
		DeltaPercent: delta,
		Improved:     improved,
	}, nil
}

// RangeMultiplier scales platform budgets to the selected window
func RangeMultiplier(r model.TimeRange) float64 {
	switch r {
	case model.TimeRangeLive:
		return 1
	case model.TimeRangeLast24H:
		return 50
	default:
		return 1500
	}
}

// PlatformBreakdown scales the platform baselines to a time range
func PlatformBreakdown(base []model.PlatformSpend, r model.TimeRange) []model.PlatformSpend {
	m := RangeMultiplier(r)
	out := make([]model.PlatformSpend, len(base))
	for i, p := range base {
		p.Spend *= m
		p.Saved *= m
		out[i] = p
	}
	return out
}

// PlatformSummary is the context line handed to the budget strategy narrative
func PlatformSummary(platforms []model.PlatformSpend) string {
	parts := make([]string, 0, len(platforms))
	for _, p := range platforms {
		parts = append(parts, fmt.Sprintf("%s: Risk %d%%, Saved $%.0f", p.Name, p.Risk, p.Saved))
	}
	return strings.Join(parts, ". ")
}

// weakAxisThreshold marks a radar axis that needs a recovery plan
const weakAxisThreshold = 75

// ReputationRadar returns the five defense axes for a time range
func ReputationRadar(r model.TimeRange) []model.RadarAxis {
	base := 85
	if r == model.TimeRangeLive {
		base = 70
	}
	return []model.RadarAxis{
		{Axis: "Ad Security", Value: base + 5},
		{Axis: "Account Protection", Value: base - 10},
		{Axis: "Brand Reputation", Value: base},
		{Axis: "API Stability", Value: 95},
		{Axis: "Phishing Prevention", Value: base - 5},
	}
}

// HasWeakAxis reports whether any axis falls below the recovery threshold
func HasWeakAxis(axes []model.RadarAxis) bool {
	for _, a := range axes {
		if a.Value < weakAxisThreshold {
			return true
		}
	}
	return false
}

// CPC draws clean and risky cost per click and the efficiency gap between them
func CPC(rng Source) model.CPCEfficiency {
	safe := 0.45 + rng.Float64()*0.1
	risky := 1.10 + rng.Float64()*0.3
	return model.CPCEfficiency{
		Safe:       safe,
		Risky:      risky,
		Efficiency: int(math.Round((risky - safe) / risky * 100)),
	}
}
