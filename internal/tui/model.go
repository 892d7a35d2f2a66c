// Package tui renders a live terminal view of a running dashboard: KPI cards,
// the defense pulse, the incident feed and the autonomous engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aishield/shield-backend/internal/autonomous"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	"github.com/aishield/shield-backend/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ranges = []model.TimeRange{model.TimeRangeLive, model.TimeRangeLast24H, model.TimeRangeLast30D}

type tickMsg time.Time

// storeMsg signals a KPI store change between ticks
type storeMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type snapshot struct {
	overview services.Overview
	pulse    services.PulseView
	feed     []model.Incident
	engine   autonomous.Snapshot
}

func capture(d *services.Dashboard) snapshot {
	ov := d.Overview()
	return snapshot{
		overview: ov,
		pulse:    d.Pulse(ov.TimeRange),
		feed:     d.Feed().Snapshot(),
		engine:   d.Engine().Snapshot(),
	}
}

// Model is the bubbletea model of the terminal dashboard
type Model struct {
	d         *services.Dashboard
	idx       int
	snap      snapshot
	help      help.Model
	width     int
	status    string
	statusErr bool
}

// New builds a model positioned on the dashboard's current range
func New(d *services.Dashboard) Model {
	m := Model{d: d, help: help.New(), width: 120}
	m.snap = capture(d)
	for i, r := range ranges {
		if r == m.snap.overview.TimeRange {
			m.idx = i
		}
	}
	return m
}

// Init starts the refresh ticker
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles key presses and refresh ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.snap = capture(m.d)
		return m, tickCmd()

	case storeMsg:
		m.snap = capture(m.d)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextRange):
			m.switchRange((m.idx + 1) % len(ranges))
		case key.Matches(msg, keys.PrevRange):
			m.switchRange((m.idx + len(ranges) - 1) % len(ranges))
		case key.Matches(msg, keys.Activate):
			m.engineAction("Intervention deployed", m.d.Activate)
		case key.Matches(msg, keys.Ignore):
			m.engineAction("Intervention dismissed", m.d.Ignore)
		case key.Matches(msg, keys.Summary):
			m.d.RefreshSummaryAsync()
			m.setStatus("Summary requested", nil)
		}
		m.snap = capture(m.d)
	}
	return m, nil
}

func (m *Model) switchRange(idx int) {
	if _, err := m.d.SetTimeRange(ranges[idx]); err != nil {
		m.setStatus("", err)
		return
	}
	m.idx = idx
	m.setStatus("Range "+string(ranges[idx]), nil)
}

func (m *Model) engineAction(done string, action func() (autonomous.Snapshot, error)) {
	_, err := action()
	if errors.Is(err, autonomous.ErrInvalidTransition) {
		m.setStatus("", errors.New("no pending intervention"))
		return
	}
	m.setStatus(done, err)
}

func (m *Model) setStatus(text string, err error) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.status, m.statusErr = text, false
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AI SHIELD // COMMAND CENTER"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderKPIs())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.renderPulse(), m.renderEngine())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.renderFeed()))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(" " + m.status))
		} else {
			b.WriteString(mutedStyle.Render(" " + m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(ranges))
	for i, r := range ranges {
		if i == m.idx {
			tabs = append(tabs, activeTabStyle.Render(string(r)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(string(r)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func formatKPI(k model.KPI) string {
	if k.Prefix == "$" {
		return util.FormatUSD(k.Value)
	}
	return fmt.Sprintf("%s%s%s", k.Prefix, formatNumber(k.Value), k.Suffix)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func (m Model) renderKPIs() string {
	cards := make([]string, 0, len(m.snap.overview.KPIs))
	for _, k := range m.snap.overview.KPIs {
		value := lipgloss.NewStyle().Bold(true).Foreground(statusColors[k.Status]).Render(formatKPI(k))
		trend := mutedStyle.Render(fmt.Sprintf("%s %s", k.Trend, k.TrendValue))
		cards = append(cards, cardStyle.Render(k.Title+"\n"+value+"  "+trend))
	}
	if len(cards) <= 3 {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
	)
}

func (m Model) renderSummary() string {
	sum := m.snap.overview.Summary
	switch {
	case sum.Loading:
		return mutedStyle.Render(" Executive summary: generating...")
	case sum.Artifact == nil:
		return mutedStyle.Render(" Executive summary: press s to generate")
	}
	text := sum.Artifact.RawText
	if sum.Artifact.Degraded() {
		text += mutedStyle.Render(" (offline)")
	}
	return boxStyle.Width(m.width - 4).Render(text)
}

// sparkline scales values onto eight block characters
func sparkline(values []int) string {
	const blocks = "▁▂▃▄▅▆▇█"
	levels := []rune(blocks)
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = (v - lo) * (len(levels) - 1) / (hi - lo)
		}
		b.WriteRune(levels[idx])
	}
	return b.String()
}

func (m Model) renderPulse() string {
	attacks := make([]int, len(m.snap.pulse.Points))
	for i, p := range m.snap.pulse.Points {
		attacks[i] = p.AttackCount
	}
	story := m.snap.pulse.Story
	body := fmt.Sprintf("Defense pulse  %s\n%s\npeak %d at %s  saved %s  threat %s",
		story.Trend, sparkline(attacks), story.PeakAttacks, story.PeakLabel,
		util.FormatUSD(float64(story.TotalSaved)), story.CurrentThreat)
	return boxStyle.Render(body)
}

func (m Model) renderEngine() string {
	e := m.snap.engine
	style := boxStyle
	var body string
	switch e.State {
	case autonomous.Alert:
		style = alertBoxStyle
		if e.Intervention != nil {
			body = fmt.Sprintf("%s\n%s\n[a] %s   [i] ignore  (%s)",
				e.Intervention.AlertTitle, e.Intervention.Description,
				e.Intervention.ActionLabel, util.FormatUSD(e.Intervention.SavedAmount))
		}
	case autonomous.Deploying:
		body = "Deploying countermeasures..."
	case autonomous.Secured:
		style = securedBoxStyle
		if e.Intervention != nil {
			body = e.Intervention.SuccessStory
		}
	case autonomous.Detecting:
		body = "Analyzing anomaly..."
	default:
		body = "Monitoring traffic"
	}
	header := fmt.Sprintf("Autonomous engine  %s  cycle %d  applied %d  saved %s",
		e.State, e.Cycle, e.Applied, util.FormatUSD(m.snap.overview.Saved))
	return style.Render(header + "\n" + body)
}

func (m Model) renderFeed() string {
	lines := []string{"Live incidents"}
	for _, inc := range m.snap.feed {
		sev := lipgloss.NewStyle().Foreground(severityColors[inc.Severity]).Render(strings.ToUpper(inc.Severity))
		lines = append(lines, fmt.Sprintf("%s %s %s", mutedStyle.Render(inc.Timestamp), sev, inc.Message))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Run drives the terminal dashboard until the user quits or ctx ends
func Run(ctx context.Context, d *services.Dashboard) error {
	p := tea.NewProgram(New(d), tea.WithAltScreen(), tea.WithContext(ctx))

	updates, unsubscribe := d.Store().Subscribe()
	defer unsubscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-updates:
				if !ok {
					return
				}
				p.Send(storeMsg{})
			}
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
