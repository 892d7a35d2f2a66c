package model

// AttackIntensity is the hypothetical threat environment of a scenario
type AttackIntensity string

// Attack intensities
const (
	IntensityLow        AttackIntensity = "LOW"
	IntensityOrganized  AttackIntensity = "ORGANIZED"
	IntensityAggressive AttackIntensity = "AGGRESSIVE"
)

// ProtectionLevel is the AI SHIELD tier applied in a scenario
type ProtectionLevel string

// Protection levels, weakest first
const (
	ProtectionStandard  ProtectionLevel = "STANDARD"
	ProtectionProactive ProtectionLevel = "PROACTIVE"
	ProtectionMaximum   ProtectionLevel = "MAXIMUM"
)

// PlatformMix describes where the ad budget is spent
type PlatformMix string

// Platform mixes
const (
	PlatformMetaOnly      PlatformMix = "META_ONLY"
	PlatformCrossPlatform PlatformMix = "CROSS_PLATFORM"
)

// ScenarioInput holds the four user adjustable simulation controls
type ScenarioInput struct {
	BudgetScale     float64         `json:"budget_scale" yaml:"budget_scale"`
	AttackIntensity AttackIntensity `json:"attack_intensity" yaml:"attack_intensity"`
	ProtectionLevel ProtectionLevel `json:"protection_level" yaml:"protection_level"`
	PlatformMix     PlatformMix     `json:"platform_mix" yaml:"platform_mix"`
}

// DefaultScenario mirrors the initial slider positions of the simulation panel
func DefaultScenario() ScenarioInput {
	return ScenarioInput{
		BudgetScale:     1.5,
		AttackIntensity: IntensityOrganized,
		ProtectionLevel: ProtectionProactive,
		PlatformMix:     PlatformCrossPlatform,
	}
}

// SimulationPoint is the cumulative state at the end of one simulated day
type SimulationPoint struct {
	Day         int     `json:"day"`
	Unprotected float64 `json:"unprotected"`
	Optimized   float64 `json:"optimized"`
	Saved       float64 `json:"saved"`
}

// SimulationResult is derived from a ScenarioInput and never stored
type SimulationResult struct {
	Points               []SimulationPoint `json:"points"`
	TotalSaved           float64           `json:"total_saved"`
	ROIBoostPercent      float64           `json:"roi_boost_percent"`
	ProjectedAttackCount int               `json:"projected_attack_count"`
	AttackRate           float64           `json:"attack_rate"`
	BlockRate            float64           `json:"block_rate"`
}

// ComparisonPeriod is the window of the comparative panel
type ComparisonPeriod string

// Comparison periods
const (
	PeriodWeek  ComparisonPeriod = "WEEK"
	PeriodMonth ComparisonPeriod = "MONTH"
	PeriodYear  ComparisonPeriod = "YEAR"
)

// ComparisonMetric is the measure compared across periods
type ComparisonMetric string

// Comparison metrics
const (
	MetricBudget  ComparisonMetric = "BUDGET"
	MetricAttacks ComparisonMetric = "ATTACKS"
	MetricRisk    ComparisonMetric = "RISK"
)

// Comparison is a previous/current pair for one metric
type Comparison struct {
	Period       ComparisonPeriod `json:"period"`
	Metric       ComparisonMetric `json:"metric"`
	MetricLabel  string           `json:"metric_label"`
	Previous     int              `json:"previous"`
	Current      int              `json:"current"`
	DeltaPercent float64          `json:"delta_percent"`
	Improved     bool             `json:"improved"`
}

// RadarAxis is one axis of the reputation defense radar
type RadarAxis struct {
	Axis  string `json:"axis"`
	Value int    `json:"value"`
}

// CPCEfficiency compares cost per click of clean and risky traffic
type CPCEfficiency struct {
	Safe       float64 `json:"safe"`
	Risky      float64 `json:"risky"`
	Efficiency int     `json:"efficiency"`
}
