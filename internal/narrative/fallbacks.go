package narrative

import (
	"fmt"
	"strconv"

	"github.com/aishield/shield-backend/model"
)

// Canned answers served when the generative service fails. These texts are
// shown to users verbatim and must not change.
const (
	fallbackTrust           = "Referanslarımız genelinde reklam bütçesi israfı %25 oranında azaltıldı ve itibar riskleri minimize edildi."
	fallbackTrendAction     = "Mevcut trafik modeli için güvenlik duvarı kurallarını optimize edelim mi?"
	fallbackBudgetStrategy  = "Bütçeyi mevcut risk profiline göre yeniden tahsis edelim mi?"
	fallbackTrafficAnalysis = "Bu segmentte trafik anomalileri tespit edildi; daha fazla inceleme önerilir."
	fallbackImageAnalysis   = "Görüntü analizi başarısız oldu."
)

func fallbackSummary(r model.TimeRange) string {
	return fmt.Sprintf("Analiz (%s) tamamlandı. Sistemler optimum seviyede çalışıyor.", r)
}

var fallbackActionPlan = model.ActionPlan{
	RiskLevel: "Orta",
	Situation: "Guardian Sinir Ağına bağlanılamadı.",
	RootCause: "Ağ gecikmesi veya API zaman aşımı.",
	Actions:   []string{"Analizi Tekrarla", "Bağlantıyı Kontrol Et"},
}

func fallbackComparison(delta float64) model.ComparisonInsight {
	return model.ComparisonInsight{
		Narrative:      "Veri karşılaştırması tamamlandı. Dalgalı ağ trafiği modelleri nedeniyle %" + strconv.FormatFloat(delta, 'f', -1, 64) + " oranında bir değişim tespit edildi.",
		Recommendation: "Bütünlüğü doğrulamak için derin tarama yapılsın mı?",
	}
}

var fallbackSimulationBrief = model.SimulationBrief{
	RiskCommentary:   "Bütçeyi ölçeklendirmek genellikle bot ilgisinin artmasıyla ilişkilidir.",
	ROIOpportunity:   "Yüksek koruma seviyeleri, reklam harcamasının yalnızca gerçek insanları hedeflemesini sağlar.",
	StrategicWarning: "Yoğun trafik aralıklarında sistem gecikmesini izleyin.",
}

var fallbackIntervention = model.Intervention{
	AlertTitle:   "Anomali Tespit Edildi",
	Description:  "Birincil reklam kampanyasında olağandışı trafik modelleri gözlendi.",
	ActionLabel:  "FİLTREYİ OPTİMİZE ET",
	SavedAmount:  120,
	SuccessStory: "Trafik filtresi optimize edildi. Öngörülen tasarruf: 120$/gün.",
}

var fallbackTrafficStrategy = model.TrafficStrategy{
	Type:        "Kara Liste",
	Title:       "Şüpheli IP'leri Engelle",
	Description: "192.168.x alt ağından tekrarlayan bot modelleri tespit edildi. Kalıcı olarak engellensin mi?",
}

var fallbackForensics = model.IncidentForensics{
	Recipe:     "Güvenlik duvarı erişim listelerini derhal inceleyin.",
	Risk:       "İzole edilmezse potansiyel yanal hareket tespit edildi.",
	Prediction: "24 saat içinde tekrarlanması muhtemel.",
}

var fallbackReputation = model.ReputationAnalysis{
	RootCause: "Müşteri olmayan IP aralıklarından negatif duygu artışı tespit edildi.",
	Action:    "Meta ve Twitter'da 'Sıkı' yorum filtrelemesini derhal etkinleştirin.",
	Crisis:    "Destek sayfanızı hedef alan potansiyel alan adı taklidi saldırısı.",
}

var fallbackRecovery = model.RecoveryStrategy{
	Title:  "Güvenlik Uyarısı",
	Impact: "Potansiyel itibar hasarı tespit edildi.",
	Action: "Karantinayı Başlat",
	AINote: "Siz incelerken AI trafileyecek.",
}
