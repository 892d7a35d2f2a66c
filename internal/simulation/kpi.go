package simulation

import (
	"math"

	"github.com/aishield/shield-backend/model"
)

// BaselineKPIs returns the headline cards as shown on first load
func BaselineKPIs() []model.KPI {
	return []model.KPI{
		{ID: model.KPIScore, Title: "Siber Sağlık Skoru", Value: 94, Trend: "up", TrendValue: "2.4%", Status: "safe", Insight: "Sistem optimizasyonu %12 artırıldı."},
		{ID: model.KPIFraud, Title: "Engellenen Reklam Sahtekarlığı", Value: 12450, Prefix: "$", Trend: "up", TrendValue: "15%", Status: "safe", Insight: "Bütçe koruma kalkanı aktif."},
		{ID: model.KPICampaigns, Title: "Aktif Korunan Kampanyalar", Value: 28, Trend: "neutral", TrendValue: "0%", Status: "safe", Insight: "Kampanyalar izleniyor."},
		{ID: model.KPIReputation, Title: "Risk Altındaki Marka İtibarı", Value: 3, Suffix: " Hesap", Trend: "down", TrendValue: "5", Status: "warning", Insight: "Sahte hesaplar inceleniyor."},
		{ID: model.KPILogin, Title: "Engellenen Giriş Girişimleri", Value: 142, Trend: "up", TrendValue: "32%", Status: "danger", Insight: "Kaba kuvvet (Brute-force) saldırıları engellendi."},
		{ID: model.KPIROI, Title: "Yatırım Getirisi (ROI)", Value: 315, Suffix: "%", Trend: "up", TrendValue: "12%", Status: "safe", Insight: "Yüksek verimlilik sağlandı."},
	}
}

func kpiMultiplier(r model.TimeRange) float64 {
	switch r {
	case model.TimeRangeLast24H:
		return 24
	case model.TimeRangeLast30D:
		return 720
	case model.TimeRangeCustom:
		return 100
	default:
		return 1
	}
}

func rangeScore(r model.TimeRange) float64 {
	switch r {
	case model.TimeRangeLive:
		return 94
	case model.TimeRangeLast24H:
		return 91
	default:
		return 88
	}
}

func rangeInsight(r model.TimeRange) string {
	switch r {
	case model.TimeRangeLive:
		return "Gerçek zamanlı paket denetimi aktif."
	case model.TimeRangeLast24H:
		return "Günlük özet: 03:00'te bot aktivitesinde artış görüldü."
	case model.TimeRangeLast30D:
		return "Aylık trend: Reklam bütçesi verimliliğinde %12 iyileşme."
	}
	return ""
}

// KPIsForRange rescales the baseline cards to a time range. The health score
// follows a fixed table, ROI stays stable and every other card is scaled by the
// range multiplier with ±20% variance.
func KPIsForRange(r model.TimeRange, rng Source) []model.KPI {
	base := BaselineKPIs()
	m := kpiMultiplier(r)
	insight := rangeInsight(r)

	for i := range base {
		switch base[i].ID {
		case model.KPIScore:
			base[i].Value = rangeScore(r)
		case model.KPIROI:
		default:
			base[i].Value = math.Floor(base[i].Value * m * (0.8 + rng.Float64()*0.4))
		}
		if insight != "" {
			base[i].Insight = insight
		}
	}
	return base
}
