package narrative

import (
	"context"
	"fmt"

	"github.com/aishield/shield-backend/model"
)

// Input carries the arguments of any text or JSON call site
type Input struct {
	Context     string              `json:"context"`
	ContextName string              `json:"context_name"`
	TimeRange   model.TimeRange     `json:"time_range"`
	KPIs        []model.KPI         `json:"kpis"`
	Comparison  model.Comparison    `json:"comparison"`
	Scenario    model.ScenarioInput `json:"scenario"`
	Trigger     model.TriggerType   `json:"trigger"`
}

// Invoke dispatches a call site by kind. Chat and image call sites have their own methods.
func (a *Adapter) Invoke(ctx context.Context, kind model.NarrativeKind, in Input) (model.NarrativeArtifact, error) {
	switch kind {
	case model.KindSummary:
		r := in.TimeRange
		if r == "" {
			r = model.TimeRangeLive
		}
		return a.Summary(ctx, r, in.KPIs), nil
	case model.KindTrustAnalysis:
		return a.TrustAnalysis(ctx, in.Context), nil
	case model.KindActionPlan:
		art, _ := a.ActionPlan(ctx, in.ContextName, in.Context)
		return art, nil
	case model.KindComparisonInsight:
		art, _ := a.ComparisonInsight(ctx, in.Comparison)
		return art, nil
	case model.KindSimulationBrief:
		art, _ := a.SimulationBrief(ctx, in.Scenario)
		return art, nil
	case model.KindIntervention:
		trigger := in.Trigger
		if trigger == "" {
			trigger = model.TriggerBotAttack
		}
		art, _, err := a.Intervention(ctx, trigger)
		return art, err
	case model.KindTrendAction:
		return a.TrendAction(ctx, in.Context), nil
	case model.KindBudgetStrategy:
		return a.BudgetStrategy(ctx, in.Context), nil
	case model.KindTrafficAnalysis:
		return a.TrafficAnalysis(ctx, in.Context), nil
	case model.KindTrafficStrategy:
		art, _ := a.TrafficStrategy(ctx, in.Context)
		return art, nil
	case model.KindIncidentForensics:
		art, _ := a.IncidentForensics(ctx, in.Context)
		return art, nil
	case model.KindReputationAnalysis:
		art, _ := a.ReputationAnalysis(ctx, in.Context)
		return art, nil
	case model.KindRecoveryStrategy:
		art, _ := a.RecoveryStrategy(ctx, in.Context)
		return art, nil
	}
	return model.NarrativeArtifact{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
