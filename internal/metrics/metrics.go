// Package metrics содержит prometheus-метрики контроля доступа и подписок.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — набор счётчиков сервиса.
type Metrics struct {
	GateDecisions       *prometheus.CounterVec
	QuotaRejections     prometheus.Counter
	ExpiredCleared      prometheus.Counter
	SubscriptionsActive prometheus.Counter
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "gate_decisions_total",
			Help:      "Access-control decisions by kind and reason.",
		}, []string{"decision", "reason"}),
		QuotaRejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "quota_rejections_total",
			Help:      "Item creations rejected because the free tier quota is used up.",
		}),
		ExpiredCleared: f.NewCounter(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "subscriptions_expired_total",
			Help:      "Past-due subscriptions cleared on read.",
		}),
		SubscriptionsActive: f.NewCounter(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "subscriptions_activated_total",
			Help:      "Subscription activations and extensions.",
		}),
	}
}

// Noop возвращает метрики, не зарегистрированные ни в одном реестре.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
