package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StoreSaves = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_store_saves_total", Help: "Total whole-document store rewrites"},
	)
	StoreRecoveries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_store_recoveries_total", Help: "Total corrupt-store fallbacks to the empty document"},
	)
	MessagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_messages_sent_total", Help: "Total messages appended to the store"},
	)
	ParticipantUpserts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_participant_upserts_total", Help: "Total participant create/update operations"},
	)
	Backups = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_store_backups_total", Help: "Total store snapshot files written"},
	)
)

func Register() {
	prometheus.MustRegister(StoreSaves, StoreRecoveries, MessagesSent, ParticipantUpserts, Backups)
}
