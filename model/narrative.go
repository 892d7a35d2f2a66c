package model

import "time"

// NarrativeKind identifies the call site that produced a narrative artifact
type NarrativeKind string

// Narrative call sites
const (
	KindSummary            NarrativeKind = "summary"
	KindTrustAnalysis      NarrativeKind = "trust_analysis"
	KindActionPlan         NarrativeKind = "action_plan"
	KindComparisonInsight  NarrativeKind = "comparison_insight"
	KindSimulationBrief    NarrativeKind = "simulation_brief"
	KindIntervention       NarrativeKind = "intervention"
	KindTrendAction        NarrativeKind = "trend_action"
	KindBudgetStrategy     NarrativeKind = "budget_strategy"
	KindTrafficAnalysis    NarrativeKind = "traffic_analysis"
	KindTrafficStrategy    NarrativeKind = "traffic_strategy"
	KindIncidentForensics  NarrativeKind = "incident_forensics"
	KindReputationAnalysis NarrativeKind = "reputation_analysis"
	KindRecoveryStrategy   NarrativeKind = "recovery_strategy"
	KindChat               NarrativeKind = "chat"
	KindImageAnalysis      NarrativeKind = "image_analysis"
	KindImageGeneration    NarrativeKind = "image_generation"
)

// ArtifactSource tells whether an artifact came from the model or a local fallback
type ArtifactSource string

// Artifact sources
const (
	SourceModel    ArtifactSource = "model"
	SourceFallback ArtifactSource = "fallback"
)

// NarrativeArtifact is the text or JSON payload shown verbatim in a panel
type NarrativeArtifact struct {
	ID             string         `json:"id"`
	Kind           NarrativeKind  `json:"kind"`
	RawText        string         `json:"raw_text"`
	Parsed         any            `json:"parsed,omitempty"`
	Source         ArtifactSource `json:"source"`
	DegradedReason string         `json:"degraded_reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Degraded reports whether the artifact is a fallback
func (a NarrativeArtifact) Degraded() bool {
	return a.Source == SourceFallback
}

// ActionPlan is the contextual decision support plan
type ActionPlan struct {
	RiskLevel string   `json:"riskLevel"`
	Situation string   `json:"situation"`
	RootCause string   `json:"rootCause"`
	Actions   []string `json:"actions"`
}

// ComparisonInsight explains a period over period delta
type ComparisonInsight struct {
	Narrative      string `json:"narrative"`
	Recommendation string `json:"recommendation"`
}

// SimulationBrief is the command center briefing for a scenario
type SimulationBrief struct {
	RiskCommentary   string `json:"riskCommentary"`
	ROIOpportunity   string `json:"roiOpportunity"`
	StrategicWarning string `json:"strategicWarning"`
}

// TriggerType is the anomaly class that starts an autonomous cycle
type TriggerType string

// Trigger types
const (
	TriggerBotAttack    TriggerType = "BOT_ATTACK"
	TriggerBudgetLeak   TriggerType = "BUDGET_LEAK"
	TriggerChannelShift TriggerType = "CHANNEL_SHIFT"
)

// TriggerTypes lists every trigger type in selection order
var TriggerTypes = []TriggerType{TriggerBotAttack, TriggerBudgetLeak, TriggerChannelShift}

// Intervention is the autonomous engine proposal
type Intervention struct {
	AlertTitle   string  `json:"alertTitle"`
	Description  string  `json:"description"`
	ActionLabel  string  `json:"actionLabel"`
	SavedAmount  float64 `json:"savedAmount"`
	SuccessStory string  `json:"successStory"`
}

// TrafficStrategy is a targeting, blacklist or content proposal
type TrafficStrategy struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IncidentForensics is the structured forensic read of a blocked incident
type IncidentForensics struct {
	Recipe     string `json:"recipe"`
	Risk       string `json:"risk"`
	Prediction string `json:"prediction"`
}

// ReputationAnalysis explains a sentiment drop
type ReputationAnalysis struct {
	RootCause string `json:"rootCause"`
	Action    string `json:"action"`
	Crisis    string `json:"crisis"`
}

// RecoveryStrategy is the rapid response card for a brand safety incident
type RecoveryStrategy struct {
	Title  string `json:"title"`
	Impact string `json:"impact"`
	Action string `json:"action"`
	AINote string `json:"aiNote"`
}

// ChatRole tags a chat turn
type ChatRole string

// Chat roles
const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the Guardian conversation
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ChatReply is the model answer plus any search grounding sources
type ChatReply struct {
	Text          string   `json:"text"`
	GroundingURLs []string `json:"grounding_urls,omitempty"`
}

// ImageSize is the resolution tier for generated visuals
type ImageSize string

// Image sizes
const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// Valid reports whether the size is one of the supported tiers
func (s ImageSize) Valid() bool {
	return s == ImageSize1K || s == ImageSize2K || s == ImageSize4K
}

// InterventionOutcome is what happened to a proposed intervention
type InterventionOutcome string

// Intervention outcomes
const (
	OutcomeProposed InterventionOutcome = "proposed"
	OutcomeIgnored  InterventionOutcome = "ignored"
	OutcomeApplied  InterventionOutcome = "applied"
	OutcomeFailed   InterventionOutcome = "failed"
)

// InterventionRecord is the journal entry of one autonomous cycle step
type InterventionRecord struct {
	ID           string              `json:"id"`
	Cycle        uint64              `json:"cycle"`
	Trigger      TriggerType         `json:"trigger"`
	Outcome      InterventionOutcome `json:"outcome"`
	Intervention *Intervention       `json:"intervention,omitempty"`
	ArtifactID   string              `json:"artifact_id,omitempty"`
	At           time.Time           `json:"at"`
}
