package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
	"github.com/aishield/shield-backend/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var simulateFlags struct {
	budgetScale float64
	intensity   string
	protection  string
	mix         string
	timeRange   string
	asJSON      bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Project a 30 day what-if scenario and print it with its briefing",
	RunE:  runSimulate,
}

func init() {
	def := model.DefaultScenario()
	f := simulateCmd.Flags()
	f.Float64Var(&simulateFlags.budgetScale, "budget-scale", def.BudgetScale, "Budget multiplier in [1,5]")
	f.StringVar(&simulateFlags.intensity, "intensity", string(def.AttackIntensity), "Attack intensity: LOW, ORGANIZED or AGGRESSIVE")
	f.StringVar(&simulateFlags.protection, "protection", string(def.ProtectionLevel), "Protection level: STANDARD, PROACTIVE or MAXIMUM")
	f.StringVar(&simulateFlags.mix, "mix", string(def.PlatformMix), "Platform mix: META_ONLY or CROSS_PLATFORM")
	f.StringVar(&simulateFlags.timeRange, "range", string(model.TimeRangeLive), "Pulse time range")
	f.BoolVar(&simulateFlags.asJSON, "json", false, "Print JSON instead of a table")
}

type simulateReport struct {
	Scenario services.ScenarioView   `json:"scenario"`
	Pulse    services.PulseView      `json:"pulse"`
	Brief    model.NarrativeArtifact `json:"brief"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	r, err := model.ParseTimeRange(simulateFlags.timeRange)
	if err != nil {
		return err
	}
	in := model.ScenarioInput{
		BudgetScale:     simulateFlags.budgetScale,
		AttackIntensity: model.AttackIntensity(strings.ToUpper(simulateFlags.intensity)),
		ProtectionLevel: model.ProtectionLevel(strings.ToUpper(simulateFlags.protection)),
		PlatformMix:     model.PlatformMix(strings.ToUpper(simulateFlags.mix)),
	}

	ctx := cmd.Context()
	d, err := buildDashboard(ctx, cfg, nil, nil, zap.NewNop())
	if err != nil {
		return err
	}
	defer d.Stop()

	view, err := d.SetScenario(in)
	if err != nil {
		return err
	}
	brief, _ := d.Adapter().SimulationBrief(ctx, in)

	report := simulateReport{Scenario: view, Pulse: d.Pulse(r), Brief: brief}
	out := cmd.OutOrStdout()
	if simulateFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(out, report)
}

func printReport(out io.Writer, rep simulateReport) error {
	res := rep.Scenario.Result
	in := rep.Scenario.Input
	fmt.Fprintf(out, "%s\n\n", simulation.ScenarioSummary(in))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DAY\tUNPROTECTED\tOPTIMIZED\tSAVED\t")
	for _, p := range res.Points {
		if p.Day%5 != 0 {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", p.Day, util.FormatUSD(p.Unprotected), util.FormatUSD(p.Optimized), util.FormatUSD(p.Saved))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal saved %s  ROI boost %.1f%%  projected attacks %d\n",
		util.FormatUSD(res.TotalSaved), res.ROIBoostPercent, res.ProjectedAttackCount)

	story := rep.Pulse.Story
	fmt.Fprintf(out, "Pulse %s  trend %s  peak %d at %s  threat %s\n",
		rep.Pulse.TimeRange, story.Trend, story.PeakAttacks, story.PeakLabel, story.CurrentThreat)

	if b, ok := rep.Brief.Parsed.(model.SimulationBrief); ok {
		fmt.Fprintf(out, "\nRisk      %s\nROI       %s\nWarning   %s\n", b.RiskCommentary, b.ROIOpportunity, b.StrategicWarning)
	} else {
		fmt.Fprintf(out, "\n%s\n", rep.Brief.RawText)
	}
	return nil
}
