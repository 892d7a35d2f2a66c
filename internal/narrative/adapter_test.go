package narrative

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aishield/shield-backend/model"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	mu      sync.Mutex
	text    string
	err     error
	block   bool
	prompts []Prompt

	reply   model.ChatReply
	chatErr error
	seen    [][]model.ChatMessage
}

func (s *stubService) Generate(ctx context.Context, p Prompt) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, p)
	block := s.block
	s.mu.Unlock()
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func (s *stubService) Chat(_ context.Context, _, _ string, history []model.ChatMessage, _ string) (model.ChatReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, history)
	return s.reply, s.chatErr
}

func (s *stubService) AnalyzeImage(context.Context, string, []byte, string, string) (string, error) {
	return s.text, s.err
}

func (s *stubService) GenerateImage(context.Context, string, string, model.ImageSize) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte{0x89, 'P', 'N', 'G'}, "image/png", nil
}

type countingObserver struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (o *countingObserver) RecordNarrative(kind, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = map[string]int{}
	}
	o.outcomes[kind+"/"+outcome]++
}

type memJournal struct {
	mu    sync.Mutex
	saved []model.NarrativeArtifact
}

func (j *memJournal) SaveNarrative(_ context.Context, a model.NarrativeArtifact) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.saved = append(j.saved, a)
	return nil
}

func newTestAdapter(svc Service) *Adapter {
	return NewAdapter(svc, DefaultModels(), time.Second, zap.NewNop())
}

func allCallSites(ctx context.Context, a *Adapter) map[model.NarrativeKind]model.NarrativeArtifact {
	out := map[model.NarrativeKind]model.NarrativeArtifact{}
	out[model.KindSummary] = a.Summary(ctx, model.TimeRangeLast24H, nil)
	out[model.KindTrustAnalysis] = a.TrustAnalysis(ctx, "LCW, Arçelik")
	out[model.KindActionPlan], _ = a.ActionPlan(ctx, "Genel Bakış", "{}")
	out[model.KindComparisonInsight], _ = a.ComparisonInsight(ctx, model.Comparison{Period: model.PeriodWeek, Metric: model.MetricBudget, DeltaPercent: 12.5})
	out[model.KindSimulationBrief], _ = a.SimulationBrief(ctx, model.DefaultScenario())
	out[model.KindIntervention], _, _ = a.Intervention(ctx, model.TriggerBotAttack)
	out[model.KindTrendAction] = a.TrendAction(ctx, "trend")
	out[model.KindBudgetStrategy] = a.BudgetStrategy(ctx, "platforms")
	out[model.KindTrafficAnalysis] = a.TrafficAnalysis(ctx, "segment")
	out[model.KindTrafficStrategy], _ = a.TrafficStrategy(ctx, "summary")
	out[model.KindIncidentForensics], _ = a.IncidentForensics(ctx, "incident")
	out[model.KindReputationAnalysis], _ = a.ReputationAnalysis(ctx, "reputation")
	out[model.KindRecoveryStrategy], _ = a.RecoveryStrategy(ctx, "phishing")
	out[model.KindImageAnalysis], _ = a.AnalyzeImage(ctx, []byte{1}, "image/png", "")
	return out
}

func TestAdapter_FallbackPerCallSite(t *testing.T) {
	obs := &countingObserver{}
	journal := &memJournal{}
	a := newTestAdapter(Offline{})
	a.SetObserver(obs)
	a.SetJournal(journal)

	results := allCallSites(context.Background(), a)
	require.Len(t, results, 14)

	kinds := make([]string, 0, len(results))
	for k, art := range results {
		kinds = append(kinds, string(k))
		assert.Equal(t, model.SourceFallback, art.Source, k)
		assert.Equal(t, ReasonUnavailable, art.DegradedReason, k)
		assert.True(t, art.Degraded())
		assert.NotEmpty(t, art.ID)
	}
	sort.Strings(kinds)

	var b strings.Builder
	for _, k := range kinds {
		fmt.Fprintf(&b, "%s: %s\n", k, results[model.NarrativeKind(k)].RawText)
	}
	snaps.MatchSnapshot(t, b.String())

	assert.Equal(t, "Analiz (LAST_24H) tamamlandı. Sistemler optimum seviyede çalışıyor.", results[model.KindSummary].RawText)
	assert.Equal(t, "Referanslarımız genelinde reklam bütçesi israfı %25 oranında azaltıldı ve itibar riskleri minimize edildi.", results[model.KindTrustAnalysis].RawText)
	assert.Equal(t, "Mevcut trafik modeli için güvenlik duvarı kurallarını optimize edelim mi?", results[model.KindTrendAction].RawText)
	assert.Equal(t, "Bütçeyi mevcut risk profiline göre yeniden tahsis edelim mi?", results[model.KindBudgetStrategy].RawText)
	assert.Equal(t, "Bu segmentte trafik anomalileri tespit edildi; daha fazla inceleme önerilir.", results[model.KindTrafficAnalysis].RawText)
	assert.Equal(t, "Görüntü analizi başarısız oldu.", results[model.KindImageAnalysis].RawText)
	assert.Equal(t,
		`{"narrative":"Veri karşılaştırması tamamlandı. Dalgalı ağ trafiği modelleri nedeniyle %12.5 oranında bir değişim tespit edildi.","recommendation":"Bütünlüğü doğrulamak için derin tarama yapılsın mı?"}`,
		results[model.KindComparisonInsight].RawText)

	iv, ok := results[model.KindIntervention].Parsed.(model.Intervention)
	require.True(t, ok)
	assert.Equal(t, 120.0, iv.SavedAmount)
	assert.Equal(t, "FİLTREYİ OPTİMİZE ET", iv.ActionLabel)
	assert.Contains(t, results[model.KindIntervention].RawText, `"savedAmount":120`)

	rec, ok := results[model.KindRecoveryStrategy].Parsed.(model.RecoveryStrategy)
	require.True(t, ok)
	assert.Equal(t, "Siz incelerken AI trafileyecek.", rec.AINote)

	assert.Equal(t, 1, obs.outcomes["summary/fallback"])
	assert.Len(t, journal.saved, 14)
}

func TestAdapter_ModelAnswerWithCodeFence(t *testing.T) {
	svc := &stubService{text: "```json\n{\"riskLevel\":\"Yüksek\",\"situation\":\"Bot dalgası\",\"rootCause\":\"Rakip\",\"actions\":[\"Engelle\"]}\n```"}
	a := newTestAdapter(svc)

	art, plan := a.ActionPlan(context.Background(), "Genel Bakış", "snapshot")
	assert.Equal(t, model.SourceModel, art.Source)
	assert.Empty(t, art.DegradedReason)
	assert.Equal(t, "Yüksek", plan.RiskLevel)
	assert.Equal(t, []string{"Engelle"}, plan.Actions)
	assert.True(t, strings.HasPrefix(art.RawText, "{"))

	require.Len(t, svc.prompts, 1)
	assert.True(t, svc.prompts[0].JSON)
	assert.Equal(t, int32(1024), svc.prompts[0].ThinkingBudget)
	assert.Equal(t, "gemini-3-pro-preview", svc.prompts[0].Model)
	assert.Contains(t, svc.prompts[0].Text, "Genel Bakış")
}

func TestAdapter_ShapeMismatchFallsBack(t *testing.T) {
	for name, text := range map[string]string{
		"not json":      "Üzgünüm, yardımcı olamam.",
		"missing field": `{"riskCommentary":""}`,
		"empty":         "   ",
	} {
		t.Run(name, func(t *testing.T) {
			a := newTestAdapter(&stubService{text: text})
			art, brief := a.SimulationBrief(context.Background(), model.DefaultScenario())
			assert.Equal(t, model.SourceFallback, art.Source)
			assert.Equal(t, ReasonInvalidShape, art.DegradedReason)
			assert.Equal(t, fallbackSimulationBrief, brief)
		})
	}
}

func TestAdapter_TextEmptyAnswerFallsBack(t *testing.T) {
	a := newTestAdapter(&stubService{text: "\n"})
	art := a.TrendAction(context.Background(), "trend")
	assert.Equal(t, fallbackTrendAction, art.RawText)
	assert.Equal(t, ReasonEmpty, art.DegradedReason)
}

func TestAdapter_TimeoutBoundsEveryCall(t *testing.T) {
	a := NewAdapter(&stubService{block: true}, DefaultModels(), 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	art := a.Summary(context.Background(), model.TimeRangeLive, nil)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, ReasonTimeout, art.DegradedReason)
	assert.Equal(t, "Analiz (LIVE) tamamlandı. Sistemler optimum seviyede çalışıyor.", art.RawText)
}

func TestAdapter_InterventionCancelled(t *testing.T) {
	a := newTestAdapter(&stubService{block: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, iv, err := a.Intervention(ctx, model.TriggerBudgetLeak)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, iv)
}

func TestAdapter_InterventionFromModel(t *testing.T) {
	svc := &stubService{text: `{"alertTitle":"Bot Sürüsü Tespit Edildi","description":"d","actionLabel":"BÖLGEYİ ENGELLE","savedAmount":450,"successStory":"s"}`}
	a := newTestAdapter(svc)

	art, iv, err := a.Intervention(context.Background(), model.TriggerChannelShift)
	require.NoError(t, err)
	assert.Equal(t, model.SourceModel, art.Source)
	assert.Equal(t, 450.0, iv.SavedAmount)
	assert.Contains(t, svc.prompts[0].Text, "CHANNEL_SHIFT")
}

func TestAdapter_Chat(t *testing.T) {
	svc := &stubService{reply: model.ChatReply{Text: "Merhaba", GroundingURLs: []string{"https://example.com/a"}}}
	a := newTestAdapter(svc)
	session := NewChatSession()

	reply, err := a.Chat(context.Background(), session, "Selam")
	require.NoError(t, err)
	assert.Equal(t, "Merhaba\n\nKaynaklar:\n- https://example.com/a", DisplayText(reply))
	assert.Equal(t, []model.ChatMessage{
		{Role: model.RoleUser, Text: "Selam"},
		{Role: model.RoleModel, Text: "Merhaba"},
	}, session.History())

	svc.chatErr = errors.New("quota")
	_, err = a.Chat(context.Background(), session, "Tekrar")
	assert.Error(t, err)
	assert.Len(t, session.History(), 2, "failed turns are not recorded")
	assert.Len(t, svc.seen[1], 2, "history is replayed")
}

func TestAdapter_Images(t *testing.T) {
	a := newTestAdapter(&stubService{err: errors.New("boom")})

	_, err := a.AnalyzeImage(context.Background(), nil, "", "")
	assert.ErrorIs(t, err, ErrMissingImage)

	_, err = a.GenerateImage(context.Background(), "kalkan", model.ImageSize2K)
	assert.Error(t, err)

	ok := newTestAdapter(&stubService{text: "Temiz"})
	img, err := ok.GenerateImage(context.Background(), "kalkan", "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)

	art, err := ok.AnalyzeImage(context.Background(), []byte{1, 2}, "image/jpeg", "")
	require.NoError(t, err)
	assert.Equal(t, "Temiz", art.RawText)
}

func TestAdapter_Invoke(t *testing.T) {
	a := newTestAdapter(Offline{})

	art, err := a.Invoke(context.Background(), model.KindRecoveryStrategy, Input{Context: "phishing"})
	require.NoError(t, err)
	assert.Equal(t, model.KindRecoveryStrategy, art.Kind)

	art, err = a.Invoke(context.Background(), model.KindSummary, Input{})
	require.NoError(t, err)
	assert.Contains(t, art.RawText, "(LIVE)")

	_, err = a.Invoke(context.Background(), model.KindChat, Input{})
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = a.Invoke(context.Background(), "nope", Input{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":               "{\"a\":1}",
		"```json\n{\"a\":1}\n```": "{\"a\":1}",
		"```\n{\"a\":1}\n```":     "{\"a\":1}",
		"  ```JSON\n[1,2]\n```  ": "[1,2]",
		"```{\"a\":1}```":         "{\"a\":1}",
		"düz metin":               "düz metin",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFences(in), in)
	}
}

func TestSessions_EvictsOldest(t *testing.T) {
	s := NewSessions(2)
	first := s.Get("")
	assert.Same(t, first, s.Get(first.ID))
	s.Get("")
	s.Get("")
	assert.Equal(t, 2, s.Len())
	assert.NotSame(t, first, s.Get(first.ID))
}
