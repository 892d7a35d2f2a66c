// Package model - Shared data structures for the AI SHIELD dashboard: telemetry, scenarios, catalogs and narratives
package model

import (
	"fmt"
	"strings"
)

// TimeRange selects the window the dashboard panels render
type TimeRange string

// Supported time ranges
const (
	TimeRangeLive    TimeRange = "LIVE"
	TimeRangeLast24H TimeRange = "LAST_24H"
	TimeRangeLast30D TimeRange = "LAST_30D"
	TimeRangeCustom  TimeRange = "CUSTOM"
)

// ParseTimeRange normalizes a user supplied range, defaulting to LIVE when empty
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(strings.ToUpper(strings.TrimSpace(s))) {
	case "", TimeRangeLive:
		return TimeRangeLive, nil
	case TimeRangeLast24H:
		return TimeRangeLast24H, nil
	case TimeRangeLast30D:
		return TimeRangeLast30D, nil
	case TimeRangeCustom:
		return TimeRangeCustom, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// PointCount returns how many pulse samples a range renders
func (r TimeRange) PointCount() int {
	switch r {
	case TimeRangeLive:
		return 60
	case TimeRangeLast24H:
		return 24
	default:
		return 30
	}
}

// ThreatLevel is the step classification of an attack count
type ThreatLevel string

// Threat levels, lowest first
const (
	ThreatLow      ThreatLevel = "Low"
	ThreatMedium   ThreatLevel = "Medium"
	ThreatHigh     ThreatLevel = "High"
	ThreatCritical ThreatLevel = "Critical"
)

// ClassifyThreat maps an attack count onto its threat level
func ClassifyThreat(attacks int) ThreatLevel {
	switch {
	case attacks > 80:
		return ThreatCritical
	case attacks > 60:
		return ThreatHigh
	case attacks > 40:
		return ThreatMedium
	default:
		return ThreatLow
	}
}

// MetricPoint is a single sample on the defense pulse chart
type MetricPoint struct {
	Timestamp   string      `json:"timestamp"`
	AttackCount int         `json:"attack_count"`
	BudgetSaved int         `json:"budget_saved"`
	ThreatLevel ThreatLevel `json:"threat_level"`
	Note        string      `json:"note"`
}

// PulseStory is the digest of a pulse series used for storytelling prompts
type PulseStory struct {
	Trend         string      `json:"trend"`
	PeakLabel     string      `json:"peak_label"`
	PeakAttacks   int         `json:"peak_attacks"`
	TotalSaved    int         `json:"total_saved"`
	CurrentThreat ThreatLevel `json:"current_threat"`
}

// KPI is one of the headline dashboard cards
type KPI struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Value      float64 `json:"value"`
	Prefix     string  `json:"prefix,omitempty"`
	Suffix     string  `json:"suffix,omitempty"`
	Trend      string  `json:"trend"`
	TrendValue string  `json:"trend_value"`
	Status     string  `json:"status"`
	Insight    string  `json:"insight"`
}

// KPI identifiers referenced outside the baseline table
const (
	KPIScore      = "score"
	KPIFraud      = "fraud"
	KPICampaigns  = "campaigns"
	KPIReputation = "reputation"
	KPILogin      = "login"
	KPIROI        = "roi"
)

// FindKPI returns the KPI with the given id
func FindKPI(kpis []KPI, id string) (KPI, bool) {
	for _, k := range kpis {
		if k.ID == id {
			return k, true
		}
	}
	return KPI{}, false
}
