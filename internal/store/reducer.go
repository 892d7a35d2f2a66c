package store

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
)

// State is the reduced dashboard state
type State struct {
	Version   uint64                   `json:"version"`
	TimeRange model.TimeRange          `json:"time_range"`
	RangeKPIs []model.KPI              `json:"-"`
	Scenario  model.ScenarioInput      `json:"scenario"`
	Summary   *model.NarrativeArtifact `json:"summary,omitempty"`

	AutonomousSaved float64 `json:"autonomous_saved"`
	AutonomousSaves int     `json:"autonomous_saves"`
	LastSaveAmount  float64 `json:"last_save_amount,omitempty"`
}

// Initial is the first load state
func Initial() State {
	return State{
		TimeRange: model.TimeRangeLive,
		RangeKPIs: simulation.BaselineKPIs(),
		Scenario:  model.DefaultScenario(),
	}
}

// Reduce applies e to s and returns the next state. It never mutates s.
func Reduce(s State, e Event) (State, error) {
	next := s
	next.RangeKPIs = cloneKPIs(s.RangeKPIs)

	switch e.Type {
	case EventTimeRangeChanged:
		if e.TimeRange == "" || len(e.KPIs) == 0 {
			return s, fmt.Errorf("%w: time range change without range or kpis", ErrInvalidEvent)
		}
		next.TimeRange = e.TimeRange
		next.RangeKPIs = cloneKPIs(e.KPIs)
		// the old summary described another window
		next.Summary = nil

	case EventAutonomousSave:
		if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			return s, fmt.Errorf("%w: autonomous save amount %v", ErrInvalidEvent, e.Amount)
		}
		next.AutonomousSaved += e.Amount
		next.AutonomousSaves++
		next.LastSaveAmount = e.Amount

	case EventScenarioChanged:
		if e.Scenario == nil {
			return s, fmt.Errorf("%w: scenario change without scenario", ErrInvalidEvent)
		}
		if err := simulation.ValidateScenario(*e.Scenario); err != nil {
			return s, err
		}
		next.Scenario = *e.Scenario

	case EventSummaryUpdated:
		if e.Summary == nil {
			return s, fmt.Errorf("%w: summary update without artifact", ErrInvalidEvent)
		}
		if e.TimeRange != "" && e.TimeRange != s.TimeRange {
			// late summary for a range the user already left
			return s, nil
		}
		summary := *e.Summary
		next.Summary = &summary

	default:
		return s, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}

	next.Version = s.Version + 1
	return next, nil
}

// KPIs merges the range cards with the autonomous savings
func (s State) KPIs() []model.KPI {
	out := cloneKPIs(s.RangeKPIs)
	if s.AutonomousSaves == 0 {
		return out
	}
	for i := range out {
		switch out[i].ID {
		case model.KPIFraud:
			out[i].Value += s.AutonomousSaved
			out[i].Trend = "up"
			out[i].Insight = "Otonom motor " + strconv.FormatFloat(s.LastSaveAmount, 'f', -1, 64) + "$ değerinde sızıntıyı anlık engelledi."
		case model.KPIScore:
			out[i].Value = math.Min(100, out[i].Value+float64(s.AutonomousSaves))
		}
	}
	return out
}

func cloneKPIs(in []model.KPI) []model.KPI {
	if in == nil {
		return nil
	}
	out := make([]model.KPI, len(in))
	copy(out, in)
	return out
}
