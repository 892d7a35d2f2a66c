package dashboard

import (
	"context"
	"fmt"

	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
)

// ResolveOverview returns the KPI cards, optionally switching the range first
func ResolveOverview(d *services.Dashboard, timeRange string) (interface{}, error) {
	if timeRange == "" {
		return d.Overview(), nil
	}
	r, err := model.ParseTimeRange(timeRange)
	if err != nil {
		return nil, err
	}
	if r == d.Store().State().TimeRange {
		return d.Overview(), nil
	}
	return d.SetTimeRange(r)
}

// ResolvePulse returns the pulse chart of a range
func ResolvePulse(d *services.Dashboard, timeRange string) (interface{}, error) {
	r := d.Store().State().TimeRange
	if timeRange != "" {
		var err error
		if r, err = model.ParseTimeRange(timeRange); err != nil {
			return nil, err
		}
	}
	return d.Pulse(r), nil
}

// ResolveScenario returns the simulator panel
func ResolveScenario(d *services.Dashboard) (interface{}, error) {
	return d.Scenario()
}

// ResolveComparison computes a comparison and schedules its insight
func ResolveComparison(d *services.Dashboard, period, metric string) (interface{}, error) {
	return d.Compare(model.ComparisonPeriod(period), model.ComparisonMetric(metric))
}

// ResolveEngine returns the autonomous engine snapshot
func ResolveEngine(d *services.Dashboard) (interface{}, error) {
	return d.Engine().Snapshot(), nil
}

// ResolveReputationRadar returns the radar axes of the selected range
func ResolveReputationRadar(d *services.Dashboard) (interface{}, error) {
	return d.Reputation().Radar, nil
}

// ResolveSetTimeRange switches the dashboard window
func ResolveSetTimeRange(d *services.Dashboard, timeRange string) (interface{}, error) {
	r, err := model.ParseTimeRange(timeRange)
	if err != nil {
		return nil, err
	}
	return d.SetTimeRange(r)
}

// ResolveSetScenario stores new simulator parameters
func ResolveSetScenario(d *services.Dashboard, args map[string]interface{}) (interface{}, error) {
	scale, ok := args["budget_scale"].(float64)
	if !ok {
		return nil, fmt.Errorf("budget_scale is required")
	}
	in := model.ScenarioInput{
		BudgetScale:     scale,
		AttackIntensity: model.AttackIntensity(fmt.Sprint(args["attack_intensity"])),
		ProtectionLevel: model.ProtectionLevel(fmt.Sprint(args["protection_level"])),
		PlatformMix:     model.PlatformMix(fmt.Sprint(args["platform_mix"])),
	}
	return d.SetScenario(in)
}

// ResolveRefreshSummary produces a summary synchronously
func ResolveRefreshSummary(ctx context.Context, d *services.Dashboard) (interface{}, error) {
	return d.RefreshSummary(ctx), nil
}
