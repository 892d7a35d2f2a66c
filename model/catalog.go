package model

// Incident is a row of the live incident feed
type Incident struct {
	ID        string `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Message   string `json:"message" yaml:"message"`
	Severity  string `json:"severity" yaml:"severity"` // low, medium, high
	Type      string `json:"type" yaml:"type"`         // fraud, login, bot, injection
}

// DefenseIncident is a row of the incident universe kanban and timeline
type DefenseIncident struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Channel     string `json:"channel" yaml:"channel"`
	Status      string `json:"status" yaml:"status"`
	ThreatScore int    `json:"threat_score" yaml:"threat_score"`
	StartTime   string `json:"start_time" yaml:"start_time"` // HH:MM
	Duration    int    `json:"duration" yaml:"duration"`     // minutes
	Description string `json:"description" yaml:"description"`
	AIAction    string `json:"ai_action" yaml:"ai_action"`
}

// TrafficActor is a persona in the traffic identity universe
type TrafficActor struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type" yaml:"type"` // BOT, COMPETITOR, GENUINE
	DamagePotential int    `json:"damage_potential" yaml:"damage_potential"`
	Method          string `json:"method" yaml:"method"`
	Volume          string `json:"volume" yaml:"volume"`
	Description     string `json:"description" yaml:"description"`
}

// BudgetMatrixPoint places a traffic source on the cost/quality matrix
type BudgetMatrixPoint struct {
	ID      string  `json:"id" yaml:"id"`
	CPC     float64 `json:"cpc" yaml:"cpc"`
	Quality int     `json:"quality" yaml:"quality"`
	Source  string  `json:"source" yaml:"source"`
	Status  string  `json:"status" yaml:"status"` // DRAINER, GEM, NEUTRAL
}

// SentimentItem is a social post tracked by the reputation radar
type SentimentItem struct {
	ID        string `json:"id" yaml:"id"`
	Platform  string `json:"platform" yaml:"platform"`
	User      string `json:"user" yaml:"user"`
	Text      string `json:"text" yaml:"text"`
	Sentiment string `json:"sentiment" yaml:"sentiment"` // POSITIVE, NEUTRAL, NEGATIVE, THREAT
	RiskScore int    `json:"risk_score" yaml:"risk_score"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	AIFlag    string `json:"ai_flag,omitempty" yaml:"ai_flag,omitempty"`
}

// SuccessStory is a customer reference on the wall of trust
type SuccessStory struct {
	ID             string `json:"id" yaml:"id"`
	BrandName      string `json:"brand_name" yaml:"brand_name"`
	Representative string `json:"representative" yaml:"representative"`
	Title          string `json:"title" yaml:"title"`
	Comment        string `json:"comment" yaml:"comment"`
	CriticalMetric string `json:"critical_metric" yaml:"critical_metric"`
	ThreatType     string `json:"threat_type" yaml:"threat_type"`
}

// PlatformSpend is the per-platform budget baseline before range scaling
type PlatformSpend struct {
	Name         string  `json:"name" yaml:"name"`
	Spend        float64 `json:"spend" yaml:"spend"`
	Saved        float64 `json:"saved" yaml:"saved"`
	Risk         int     `json:"risk" yaml:"risk"`
	CleanTraffic int     `json:"clean_traffic" yaml:"clean_traffic"`
	Insight      string  `json:"insight" yaml:"insight"`
}

// WorldRegion is an anchor on the threat map
type WorldRegion struct {
	Name string `json:"name" yaml:"name"`
	CX   int    `json:"cx" yaml:"cx"`
	CY   int    `json:"cy" yaml:"cy"`
}
