package tui

import (
	"context"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newModel(t *testing.T) (Model, *services.Dashboard) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	d := services.New(context.Background(), services.Deps{
		Config:  config.Default(),
		Catalog: cat,
		Clock:   clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		Source:  fixedSource(0.5),
		Logger:  zap.NewNop(),
	})
	t.Cleanup(d.Stop)
	return New(d), d
}

func press(m tea.Model, k string) tea.Model {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestModel_CyclesRanges(t *testing.T) {
	m, d := newModel(t)

	var tm tea.Model = m
	tm = press(tm, "tab")
	assert.Equal(t, model.TimeRangeLast24H, d.Store().State().TimeRange)
	tm = press(tm, "tab")
	tm = press(tm, "tab")
	assert.Equal(t, model.TimeRangeLive, d.Store().State().TimeRange)
	tm = press(tm, "shift+tab")
	assert.Equal(t, model.TimeRangeLast30D, d.Store().State().TimeRange)
	assert.Len(t, tm.(Model).snap.pulse.Points, 30)
}

func TestModel_ActivateWithoutAlert(t *testing.T) {
	m, _ := newModel(t)

	got := press(m, "a").(Model)
	assert.True(t, got.statusErr)
	assert.Equal(t, "no pending intervention", got.status)
	assert.Contains(t, got.View(), "no pending intervention")
}

func TestModel_QuitAndView(t *testing.T) {
	m, _ := newModel(t)

	view := m.View()
	assert.Contains(t, view, "AI SHIELD")
	assert.Contains(t, view, "Siber Sağlık Skoru")
	assert.Contains(t, view, "Live incidents")
	assert.Contains(t, view, "Monitoring traffic")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", sparkline(nil))
	assert.Equal(t, "▁▁▁", sparkline([]int{5, 5, 5}))
	assert.Equal(t, "▁▄█", sparkline([]int{0, 50, 100}))
}
