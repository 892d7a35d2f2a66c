package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/aishield/shield-backend/model"
)

// ErrInvalidScenario is returned when a scenario input is outside the supported controls
var ErrInvalidScenario = errors.New("invalid scenario")

const (
	baseDailySpend = 1000.0
	horizonDays    = 30
	// average cost of one bot click, used only for the projected attack count
	costPerAttack = 2.5
)

var attackRates = map[model.AttackIntensity]float64{
	model.IntensityLow:        0.05,
	model.IntensityOrganized:  0.15,
	model.IntensityAggressive: 0.35,
}

var blockRates = map[model.ProtectionLevel]float64{
	model.ProtectionStandard:  0.60,
	model.ProtectionProactive: 0.88,
	model.ProtectionMaximum:   0.98,
}

// VarianceSource yields the daily loss multiplier for a given day
type VarianceSource func(day int) float64

// FixedVariance pins every day to v
func FixedVariance(v float64) VarianceSource {
	return func(int) float64 { return v }
}

// RandomVariance draws uniformly from [0.8, 1.2)
func RandomVariance(rng Source) VarianceSource {
	return func(int) float64 { return 0.8 + rng.Float64()*0.4 }
}

// ValidateScenario checks every control against its allowed values
func ValidateScenario(in model.ScenarioInput) error {
	if math.IsNaN(in.BudgetScale) || in.BudgetScale < 1 || in.BudgetScale > 5 {
		return fmt.Errorf("%w: budget_scale %.2f outside [1,5]", ErrInvalidScenario, in.BudgetScale)
	}
	if _, ok := attackRates[in.AttackIntensity]; !ok {
		return fmt.Errorf("%w: attack_intensity %q", ErrInvalidScenario, in.AttackIntensity)
	}
	if _, ok := blockRates[in.ProtectionLevel]; !ok {
		return fmt.Errorf("%w: protection_level %q", ErrInvalidScenario, in.ProtectionLevel)
	}
	if in.PlatformMix != model.PlatformMetaOnly && in.PlatformMix != model.PlatformCrossPlatform {
		return fmt.Errorf("%w: platform_mix %q", ErrInvalidScenario, in.PlatformMix)
	}
	return nil
}

// AttackRate returns the share of spend lost to fraud for an intensity and platform mix
func AttackRate(intensity model.AttackIntensity, mix model.PlatformMix) float64 {
	rate := attackRates[intensity]
	if mix == model.PlatformCrossPlatform {
		rate *= 1.1
	}
	return rate
}

// BlockRate returns the share of fraud a protection level stops
func BlockRate(level model.ProtectionLevel) float64 {
	return blockRates[level]
}

// Simulate projects unprotected and optimized losses over a 30 day horizon plus day 0.
// It is pure for a pinned variance source.
func Simulate(in model.ScenarioInput, variance VarianceSource) (model.SimulationResult, error) {
	if err := ValidateScenario(in); err != nil {
		return model.SimulationResult{}, err
	}

	dailySpend := baseDailySpend * in.BudgetScale
	attackRate := AttackRate(in.AttackIntensity, in.PlatformMix)
	blockRate := BlockRate(in.ProtectionLevel)

	points := make([]model.SimulationPoint, 0, horizonDays+1)
	var cumUnprotected, cumOptimized float64

	for day := 0; day <= horizonDays; day++ {
		potential := dailySpend * attackRate * variance(day)
		cumUnprotected += potential
		cumOptimized += potential * (1 - blockRate)

		points = append(points, model.SimulationPoint{
			Day:         day,
			Unprotected: cumUnprotected,
			Optimized:   cumOptimized,
			Saved:       cumUnprotected - cumOptimized,
		})
	}

	totalSaved := points[horizonDays].Saved
	return model.SimulationResult{
		Points:               points,
		TotalSaved:           totalSaved,
		ROIBoostPercent:      math.Round(totalSaved/(dailySpend*horizonDays)*1000) / 10,
		ProjectedAttackCount: int(math.Floor(dailySpend * horizonDays * attackRate / costPerAttack)),
		AttackRate:           attackRate,
		BlockRate:            blockRate,
	}, nil
}

// ScenarioSummary is the context line handed to the simulation brief narrative
func ScenarioSummary(in model.ScenarioInput) string {
	return fmt.Sprintf("Bütçe Ölçeği: %.1fx. Saldırı Yoğunluğu: %s. AI Koruma Seviyesi: %s. Platform: %s.",
		in.BudgetScale, in.AttackIntensity, in.ProtectionLevel, in.PlatformMix)
}
