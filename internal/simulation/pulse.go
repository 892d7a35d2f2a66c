package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/aishield/shield-backend/model"
	"github.com/aishield/shield-backend/util"
)

const (
	spikeNote   = "Bot imzasında anomali tespit edildi."
	routineNote = "Rutin trafik filtrasyonu aktif."
)

var turkishMonths = [...]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}

// attackWalk and budgetWalk carry the chart's fixed ranges
func attackWalk(n int) Walk {
	return Walk{Count: n, Start: 50, Step: 30, Min: 10, Max: 100,
		SpikeProbability: DefaultSpikeProbability, SpikeFactor: DefaultSpikeFactor}
}

func budgetWalk(n int) Walk {
	return Walk{Count: n, Start: 200, Step: 50, Min: 100, Max: 500}
}

// GeneratePulse builds the defense pulse series for a time range, ending at now
func GeneratePulse(rng Source, r model.TimeRange, now time.Time) []model.MetricPoint {
	count := r.PointCount()
	attacks := attackWalk(count).Generate(rng)
	budget := budgetWalk(count).Generate(rng)

	points := make([]model.MetricPoint, 0, count)
	for i := 0; i < count; i++ {
		attack := attacks[i].Value
		note := routineNote
		if attacks[i].Spike {
			note = spikeNote
		}
		points = append(points, model.MetricPoint{
			Timestamp:   pulseLabel(r, now, count-i),
			AttackCount: int(math.Floor(attack)),
			BudgetSaved: int(math.Floor(budget[i].Value + attack*1.2)),
			ThreatLevel: model.ClassifyThreat(int(math.Floor(attack))),
			Note:        note,
		})
	}
	return points
}

func pulseLabel(r model.TimeRange, now time.Time, back int) string {
	switch r {
	case model.TimeRangeLive:
		return now.Add(-time.Duration(back) * time.Minute).Format("15:04")
	case model.TimeRangeLast24H:
		return now.Add(-time.Duration(back)*time.Hour).Format("15") + ":00"
	default:
		d := now.AddDate(0, 0, -back)
		return fmt.Sprintf("%d %s", d.Day(), turkishMonths[d.Month()-1])
	}
}

// SummarizePulse condenses a series into the story shown beside the chart
func SummarizePulse(points []model.MetricPoint) model.PulseStory {
	if len(points) == 0 {
		return model.PulseStory{Trend: "stabil", CurrentThreat: model.ThreatLow}
	}

	var totalAttacks, totalSaved int
	peak := -1
	story := model.PulseStory{}
	for _, p := range points {
		totalAttacks += p.AttackCount
		totalSaved += p.BudgetSaved
		if p.AttackCount > peak {
			peak = p.AttackCount
			story.PeakLabel = p.Timestamp
		}
	}

	story.PeakAttacks = peak
	story.TotalSaved = totalSaved
	story.CurrentThreat = points[len(points)-1].ThreatLevel
	story.Trend = "stabil ve güvenli"
	if float64(totalAttacks)/float64(len(points)) > 60 {
		story.Trend = "yüksek ve dalgalı"
	}
	return story
}

// TrendSummary renders the chart context handed to the trend action narrative
func TrendSummary(r model.TimeRange, story model.PulseStory) string {
	return fmt.Sprintf("Zaman Aralığı: %s. Zirve Saldırı: %s. Trend: %s. Toplam Kurtarılan: %s. Mevcut Tehdit Seviyesi: %s.",
		r, story.PeakLabel, story.Trend, util.FormatUSD(float64(story.TotalSaved)), story.CurrentThreat)
}
