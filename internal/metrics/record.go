package metrics

import "time"

// Engine states reported on the state gauge
var engineStates = []string{"IDLE", "DETECTING", "ALERT", "DEPLOYING", "SECURED"}

// RecordNarrative records one narrative call
func (r *Registry) RecordNarrative(kind, outcome string, duration time.Duration) {
	r.NarrativeRequestsTotal.WithLabelValues(kind, outcome).Inc()
	r.NarrativeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordTransition records an engine transition and moves the state gauge
func (r *Registry) RecordTransition(from, to string) {
	r.EngineTransitionsTotal.WithLabelValues(from, to).Inc()
	for _, s := range engineStates {
		r.EngineState.WithLabelValues(s).Set(0)
	}
	r.EngineState.WithLabelValues(to).Set(1)
}

// RecordSaving adds an applied intervention amount
func (r *Registry) RecordSaving(amount float64) {
	if amount > 0 {
		r.BudgetSavedTotal.Add(amount)
	}
}

// RecordStoreEvent records an applied store event
func (r *Registry) RecordStoreEvent(eventType, origin string, version uint64) {
	r.StoreEventsTotal.WithLabelValues(eventType, origin).Inc()
	r.StoreVersion.Set(float64(version))
}

// RecordKafka records a produced or consumed message
func (r *Registry) RecordKafka(direction, status string) {
	r.KafkaMessagesTotal.WithLabelValues(direction, status).Inc()
}

// RecordJournal records a journal write
func (r *Registry) RecordJournal(collection string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.JournalWritesTotal.WithLabelValues(collection, status).Inc()
}
