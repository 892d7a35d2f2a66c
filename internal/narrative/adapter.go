package narrative

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aishield/shield-backend/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Degraded reasons attached to fallback artifacts
const (
	ReasonTimeout      = "timeout"
	ReasonUnavailable  = "unavailable"
	ReasonServiceError = "service_error"
	ReasonEmpty        = "empty_response"
	ReasonInvalidShape = "invalid_shape"
	ReasonCancelled    = "cancelled"
)

// Outcomes reported to the observer
const (
	outcomeModel    = "model"
	outcomeFallback = "fallback"
	outcomeError    = "error"
)

// Observer receives one call per narrative request
type Observer interface {
	RecordNarrative(kind, outcome string, duration time.Duration)
}

// Journal persists produced artifacts
type Journal interface {
	SaveNarrative(ctx context.Context, a model.NarrativeArtifact) error
}

// Adapter exposes one method per narrative call site. Every method issues at most
// one request bounded by the configured timeout and never retries.
type Adapter struct {
	service  Service
	models   Models
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer
	journal  Journal
	now      func() time.Time
}

// NewAdapter builds an adapter over service
func NewAdapter(service Service, models Models, timeout time.Duration, logger *zap.Logger) *Adapter {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Adapter{
		service: service,
		models:  models,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// SetObserver attaches a metrics observer
func (a *Adapter) SetObserver(o Observer) { a.observer = o }

// SetJournal attaches an artifact journal
func (a *Adapter) SetJournal(j Journal) { a.journal = j }

// Summary is the two sentence executive summary for a time range
func (a *Adapter) Summary(ctx context.Context, r model.TimeRange, kpis []model.KPI) model.NarrativeArtifact {
	p := Prompt{Model: a.models.Fast, Text: summaryPrompt(r, kpis)}
	return a.text(ctx, model.KindSummary, p, fallbackSummary(r))
}

// TrustAnalysis condenses the success stories into one sentence
func (a *Adapter) TrustAnalysis(ctx context.Context, references string) model.NarrativeArtifact {
	p := Prompt{Model: a.models.Fast, Text: trustPrompt(references)}
	return a.text(ctx, model.KindTrustAnalysis, p, fallbackTrust)
}

// ActionPlan is the contextual decision support plan for a view
func (a *Adapter) ActionPlan(ctx context.Context, contextName, snapshot string) (model.NarrativeArtifact, model.ActionPlan) {
	p := Prompt{Model: a.models.Pro, Text: actionPlanPrompt(contextName, snapshot), JSON: true, ThinkingBudget: 1024}
	return structured(ctx, a, model.KindActionPlan, p, fallbackActionPlan, func(v model.ActionPlan) bool {
		return v.Situation != "" && len(v.Actions) > 0
	})
}

// ComparisonInsight explains a period over period change
func (a *Adapter) ComparisonInsight(ctx context.Context, c model.Comparison) (model.NarrativeArtifact, model.ComparisonInsight) {
	p := Prompt{Model: a.models.Pro, Text: comparisonPrompt(c), JSON: true}
	return structured(ctx, a, model.KindComparisonInsight, p, fallbackComparison(c.DeltaPercent), func(v model.ComparisonInsight) bool {
		return v.Narrative != ""
	})
}

// SimulationBrief comments a what-if scenario
func (a *Adapter) SimulationBrief(ctx context.Context, in model.ScenarioInput) (model.NarrativeArtifact, model.SimulationBrief) {
	p := Prompt{Model: a.models.Pro, Text: simulationPrompt(in), JSON: true}
	return structured(ctx, a, model.KindSimulationBrief, p, fallbackSimulationBrief, func(v model.SimulationBrief) bool {
		return v.RiskCommentary != ""
	})
}

// Intervention proposes an autonomous action for trigger. The error is non-nil
// only when ctx itself ended; service failures yield the fallback proposal.
func (a *Adapter) Intervention(ctx context.Context, trigger model.TriggerType) (model.NarrativeArtifact, model.Intervention, error) {
	p := Prompt{Model: a.models.Pro, Text: interventionPrompt(trigger), JSON: true}
	art, v := structured(ctx, a, model.KindIntervention, p, fallbackIntervention, func(v model.Intervention) bool {
		return v.AlertTitle != ""
	})
	if err := ctx.Err(); err != nil {
		return art, model.Intervention{}, err
	}
	return art, v, nil
}

// TrendAction proposes a yes/no question for the pulse trend
func (a *Adapter) TrendAction(ctx context.Context, trendSummary string) model.NarrativeArtifact {
	p := Prompt{Model: a.models.Fast, Text: trendActionPrompt(trendSummary)}
	return a.text(ctx, model.KindTrendAction, p, fallbackTrendAction)
}

// BudgetStrategy proposes a budget reallocation across platforms
func (a *Adapter) BudgetStrategy(ctx context.Context, platformData string) model.NarrativeArtifact {
	p := Prompt{Model: a.models.Fast, Text: budgetStrategyPrompt(platformData)}
	return a.text(ctx, model.KindBudgetStrategy, p, fallbackBudgetStrategy)
}

// TrafficAnalysis gives a one sentence read of a traffic segment
func (a *Adapter) TrafficAnalysis(ctx context.Context, dataContext string) model.NarrativeArtifact {
	p := Prompt{Model: a.models.Fast, Text: trafficAnalysisPrompt(dataContext)}
	return a.text(ctx, model.KindTrafficAnalysis, p, fallbackTrafficAnalysis)
}

// TrafficStrategy proposes a targeting, blacklist or content action
func (a *Adapter) TrafficStrategy(ctx context.Context, summary string) (model.NarrativeArtifact, model.TrafficStrategy) {
	p := Prompt{Model: a.models.Pro, Text: trafficStrategyPrompt(summary), JSON: true}
	return structured(ctx, a, model.KindTrafficStrategy, p, fallbackTrafficStrategy, func(v model.TrafficStrategy) bool {
		return v.Title != ""
	})
}

// IncidentForensics analyses a blocked incident
func (a *Adapter) IncidentForensics(ctx context.Context, incident string) (model.NarrativeArtifact, model.IncidentForensics) {
	p := Prompt{Model: a.models.Pro, Text: forensicsPrompt(incident), JSON: true}
	return structured(ctx, a, model.KindIncidentForensics, p, fallbackForensics, func(v model.IncidentForensics) bool {
		return v.Recipe != ""
	})
}

// ReputationAnalysis explains a sentiment drop
func (a *Adapter) ReputationAnalysis(ctx context.Context, dataContext string) (model.NarrativeArtifact, model.ReputationAnalysis) {
	p := Prompt{Model: a.models.Pro, Text: reputationPrompt(dataContext), JSON: true}
	return structured(ctx, a, model.KindReputationAnalysis, p, fallbackReputation, func(v model.ReputationAnalysis) bool {
		return v.RootCause != ""
	})
}

// RecoveryStrategy builds the rapid response card for a brand incident
func (a *Adapter) RecoveryStrategy(ctx context.Context, incidentType string) (model.NarrativeArtifact, model.RecoveryStrategy) {
	p := Prompt{Model: a.models.Pro, Text: recoveryPrompt(incidentType), JSON: true}
	return structured(ctx, a, model.KindRecoveryStrategy, p, fallbackRecovery, func(v model.RecoveryStrategy) bool {
		return v.Title != ""
	})
}

// AnalyzeImage describes an uploaded image. An empty prompt uses the default security review instruction.
func (a *Adapter) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (model.NarrativeArtifact, error) {
	if len(data) == 0 {
		return model.NarrativeArtifact{}, ErrMissingImage
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultImagePrompt
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.service.AnalyzeImage(cctx, a.models.Pro, data, mimeType, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyResponse
	}
	if err != nil {
		return a.degrade(ctx, model.KindImageAnalysis, fallbackImageAnalysis, nil, err, start), nil
	}
	return a.emit(ctx, model.KindImageAnalysis, text, nil, start), nil
}

// GeneratedImage is a rendered visual
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// GenerateImage renders a visual. There is no fallback: failures are returned.
func (a *Adapter) GenerateImage(ctx context.Context, prompt string, size model.ImageSize) (GeneratedImage, error) {
	if size == "" {
		size = model.ImageSize1K
	}
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	data, mime, err := a.service.GenerateImage(cctx, a.models.Image, prompt, size)
	if err != nil {
		a.observe(model.KindImageGeneration, outcomeError, start)
		a.logger.Error("Image generation failed", zap.String("size", string(size)), zap.Error(err))
		return GeneratedImage{}, err
	}
	a.observe(model.KindImageGeneration, outcomeModel, start)
	return GeneratedImage{Data: data, MIMEType: mime}, nil
}

// Chat sends message within session. Errors are returned, never replaced by a canned answer.
func (a *Adapter) Chat(ctx context.Context, session *ChatSession, message string) (model.ChatReply, error) {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.service.Chat(cctx, a.models.Pro, guardianSystem, session.History(), message)
	if err != nil {
		a.observe(model.KindChat, outcomeError, start)
		a.logger.Warn("Guardian chat failed", zap.String("session", session.ID), zap.Error(err))
		return model.ChatReply{}, err
	}
	session.append(message, reply.Text)
	a.observe(model.KindChat, outcomeModel, start)
	return reply, nil
}

func (a *Adapter) text(ctx context.Context, kind model.NarrativeKind, p Prompt, fallback string) model.NarrativeArtifact {
	start := time.Now()
	raw, err := a.generate(ctx, p)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errEmptyResponse
	}
	if err != nil {
		return a.degrade(ctx, kind, fallback, nil, err, start)
	}
	return a.emit(ctx, kind, strings.TrimSpace(raw), nil, start)
}

// structured decodes a JSON call site into T, falling back on failure or when valid rejects the shape
func structured[T any](ctx context.Context, a *Adapter, kind model.NarrativeKind, p Prompt, fallback T, valid func(T) bool) (model.NarrativeArtifact, T) {
	start := time.Now()
	raw, err := a.generate(ctx, p)
	if err != nil {
		return a.degrade(ctx, kind, encodeJSON(fallback), fallback, err, start), fallback
	}

	var v T
	if err := decodeJSON(raw, &v); err != nil {
		return a.degrade(ctx, kind, encodeJSON(fallback), fallback, shapeError{err}, start), fallback
	}
	if !valid(v) {
		return a.degrade(ctx, kind, encodeJSON(fallback), fallback, shapeError{errors.New("missing required field")}, start), fallback
	}
	return a.emit(ctx, kind, StripCodeFences(raw), v, start), v
}

func (a *Adapter) generate(ctx context.Context, p Prompt) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.service.Generate(cctx, p)
}

var errEmptyResponse = errors.New("empty response")

type shapeError struct{ err error }

func (e shapeError) Error() string { return e.err.Error() }
func (e shapeError) Unwrap() error { return e.err }

// degradedReason classifies a failure for the degraded_reason field
func degradedReason(parent context.Context, err error) string {
	var se shapeError
	switch {
	case errors.As(err, &se):
		return ReasonInvalidShape
	case parent.Err() != nil:
		return ReasonCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrServiceUnavailable):
		return ReasonUnavailable
	case errors.Is(err, errEmptyResponse):
		return ReasonEmpty
	}
	return ReasonServiceError
}

func (a *Adapter) degrade(ctx context.Context, kind model.NarrativeKind, raw string, parsed any, cause error, start time.Time) model.NarrativeArtifact {
	reason := degradedReason(ctx, cause)
	a.logger.Warn("Narrative fallback served",
		zap.String("kind", string(kind)),
		zap.String("reason", reason),
		zap.Error(cause),
	)
	art := a.artifact(kind, raw, parsed)
	art.Source = model.SourceFallback
	art.DegradedReason = reason
	a.observe(kind, outcomeFallback, start)
	a.record(ctx, art)
	return art
}

func (a *Adapter) emit(ctx context.Context, kind model.NarrativeKind, raw string, parsed any, start time.Time) model.NarrativeArtifact {
	art := a.artifact(kind, raw, parsed)
	art.Source = model.SourceModel
	a.observe(kind, outcomeModel, start)
	a.record(ctx, art)
	return art
}

func (a *Adapter) artifact(kind model.NarrativeKind, raw string, parsed any) model.NarrativeArtifact {
	return model.NarrativeArtifact{
		ID:        uuid.NewString(),
		Kind:      kind,
		RawText:   raw,
		Parsed:    parsed,
		CreatedAt: a.now().UTC(),
	}
}

func (a *Adapter) observe(kind model.NarrativeKind, outcome string, start time.Time) {
	if a.observer != nil {
		a.observer.RecordNarrative(string(kind), outcome, time.Since(start))
	}
}

func (a *Adapter) record(ctx context.Context, art model.NarrativeArtifact) {
	if a.journal == nil {
		return
	}
	if err := a.journal.SaveNarrative(context.WithoutCancel(ctx), art); err != nil {
		a.logger.Warn("Failed to journal narrative", zap.String("kind", string(art.Kind)), zap.Error(err))
	}
}
