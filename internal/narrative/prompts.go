package narrative

import (
	"fmt"
	"strconv"

	"github.com/aishield/shield-backend/model"
)

const guardianSystem = "Sen 'Guardian'sın, AI SHIELD'in arkasındaki yapay zeka istihbaratısın. " +
	"Siber güvenlik konularında yardımsever, kesin ve otoriter bir uzmansın. Türkçe konuşuyorsun. " +
	"En son tehditler için Google Araması'na erişimin var."

const defaultImagePrompt = "Bu görüntüyü potansiyel güvenlik riskleri, veri sızıntıları veya anomaliler açısından analiz et. Yanıtı Türkçe ver."

func kpiValue(kpis []model.KPI, id string) string {
	if k, ok := model.FindKPI(kpis, id); ok {
		return strconv.FormatFloat(k.Value, 'f', -1, 64)
	}
	return "-"
}

func summaryPrompt(r model.TimeRange, kpis []model.KPI) string {
	return fmt.Sprintf(`Rol: 'AI SHIELD' için Siber Güvenlik Analisti.
Görev: %s aralığı için yönetim paneline 2 cümlelik, otoriter ve güven verici bir Türkçe özet yaz.
Siber Sağlık Skoru: %s/100
Kurtarılan Bütçe: %s
Engellenen Tehditler: %s
Markdown kullanma. Sadece metni döndür.`,
		r, kpiValue(kpis, model.KPIScore), kpiValue(kpis, model.KPIFraud), kpiValue(kpis, model.KPILogin))
}

func trustPrompt(references string) string {
	return fmt.Sprintf(`Rol: AI SHIELD Kurumsal İletişim Stratejisti.
Görev: Referans başarı hikayelerini analiz et ve tek cümlelik, vurucu bir "Küresel Güven Özeti" oluştur.
Referanslar: %s
Yanıt tamamen Türkçe ve otoriter olmalı.`, references)
}

func actionPlanPrompt(contextName, snapshot string) string {
	return fmt.Sprintf(`Rol: AI SHIELD 'Guardian' - Stratejik Siber Güvenlik Danışmanı.
Hedef Kitle: Teknik olmayan KOBİ yöneticisi.
Görev: "%s" görünümünün veri anlık görüntüsünü analiz et; durumu, kök nedeni ve somut aksiyonları Türkçe sun.
Veri Anlık Görüntüsü:
%s
Çıktı (JSON): {"riskLevel": "Düşük" | "Orta" | "Yüksek" | "Kritik", "situation": "...", "rootCause": "...", "actions": ["...", "..."]}
Teknik jargondan kaçın, işletme dili (bütçe, itibar) kullan.`, contextName, snapshot)
}

func comparisonPrompt(c model.Comparison) string {
	return fmt.Sprintf(`Rol: AI SHIELD için Veri Bilimcisi ve Siber Stratejist. Dil: Türkçe.
Senaryo: "%s" verisinin [%s (Önceki): %d] ve [%s (Şu Anki): %d] karşılaştırması.
Değişim: %s%%.
Görev: Değişimin nedenini anlatan 1 cümlelik hikaye ve bu trende dayalı Evet/Hayır stratejik öneri yaz.
Çıktı (JSON): {"narrative": "...", "recommendation": "..."}`,
		c.MetricLabel, c.Period, c.Previous, c.Period, c.Current, signedDelta(c.DeltaPercent))
}

func simulationPrompt(in model.ScenarioInput) string {
	return fmt.Sprintf(`Rol: Siber Risk Modelleyicisi ve ROI Stratejisti. Dil: Türkçe.
Görev: Simülasyon senaryosu için "Komuta Merkezi" brifingi hazırla.
Bütçe Ölçeği: %sx, Saldırı Yoğunluğu: %s, AI Koruma Seviyesi: %s, Platform: %s.
Çıktı (JSON): {"riskCommentary": "...", "roiOpportunity": "...", "strategicWarning": "..."}`,
		strconv.FormatFloat(in.BudgetScale, 'f', -1, 64), in.AttackIntensity, in.ProtectionLevel, in.PlatformMix)
}

func interventionPrompt(trigger model.TriggerType) string {
	return fmt.Sprintf(`Rol: Otonom Siber Savunma Motoru.
Tetikleyici Olay: %s. Dil: Türkçe.
Görev: Bir KOBİ paneli için kritik bir müdahale senaryosu oluştur. savedAmount yalnızca sayı olmalı.
Çıktı (JSON): {"alertTitle": "...", "description": "...", "actionLabel": "...", "savedAmount": 0, "successStory": "..."}`, trigger)
}

func trendActionPrompt(trendSummary string) string {
	return fmt.Sprintf(`Rol: AI Shield Stratejik Danışmanı. Dil: Türkçe.
Grafik Veri Özeti: %s
Görev: Savunmayı optimize etmek için bir CISO'nun soracağı tek bir Evet/Hayır aksiyon sorusu öner.
Çıktı: Sadece soru metni.`, trendSummary)
}

func budgetStrategyPrompt(platformData string) string {
	return fmt.Sprintf(`Rol: Dijital Pazarlama Güvenlik Stratejisti. Dil: Türkçe.
Veri: %s
Görev: Platformlar arası stratejik bir bütçe yeniden tahsisi veya güvenlik eşiği ayarlaması öner.
Çıktı: Tek bir kısa soru/öneri cümlesi.`, platformData)
}

func trafficAnalysisPrompt(dataContext string) string {
	return fmt.Sprintf(`Rol: Siber Antropoloji Uzmanı ve Veri Segmentasyon Stratejisti.
Görev: Bu trafik segmenti için 1 cümlelik Türkçe "Röntgen Analizi" sağla.
Bağlam: %s
Çıktı: Tek bir anlamlı cümle.`, dataContext)
}

func trafficStrategyPrompt(summary string) string {
	return fmt.Sprintf(`Rol: AI Shield Büyüme ve Güvenlik Uzmanı. Dil: Türkçe.
Veri Özeti: %s
Görev: Hedefleme, Kara Liste veya İçerik stratejisi öner.
Çıktı (JSON): {"type": "Hedefleme" | "Kara Liste" | "İçerik", "title": "...", "description": "..."}`, summary)
}

func forensicsPrompt(incident string) string {
	return fmt.Sprintf(`Rol: Dijital Adli Tıp Uzmanı ve UX Yazarı. Dil: Türkçe.
Olay Verisi: %s
Görev: Reçete (savunma yapılandırması), Risk (politika önerisi) ve Tahmin (öngörü) üret.
Çıktı (JSON): {"recipe": "...", "risk": "...", "prediction": "..."}`, incident)
}

func reputationPrompt(dataContext string) string {
	return fmt.Sprintf(`Rol: Dijital İtibar Analisti ve PR Kriz Stratejisti. Dil: Türkçe.
Bağlam Verisi:
%s
Görev: Duygu düşüşünün kök nedenini (gerçek müşteri mi bot mu), taktiksel aksiyonu ve Kırmızı Alarm uyarısını ver.
Çıktı (JSON): {"rootCause": "...", "action": "...", "crisis": "..."}`, dataContext)
}

func recoveryPrompt(incidentType string) string {
	return fmt.Sprintf(`Rol: Elit Siber Olay Müdahale Komutanı. Dil: Türkçe.
Senaryo: Kritik bir marka güvenliği olayı tespit edildi: "%s".
Görev: Yönetim paneli için bir "Hızlı Müdahale" strateji kartı oluştur.
Çıktı (JSON): {"title": "...", "impact": "...", "action": "...", "aiNote": "..."}`, incidentType)
}

// signedDelta renders a percentage change with an explicit plus sign for growth
func signedDelta(delta float64) string {
	s := strconv.FormatFloat(delta, 'f', -1, 64)
	if delta > 0 {
		return "+" + s
	}
	return s
}
