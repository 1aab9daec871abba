package metrics

import (
	"material_market_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Logistics mode label values for PurchasesCompletedTotal.
const (
	ModeSelfManaged = "self_managed"
	ModeDelegated   = "delegated"
)

// Metrics holds the marketplace's custom Prometheus collectors.
type Metrics struct {
	Registry                *prometheus.Registry
	ListingsCreatedTotal    prometheus.Counter
	FavoriteTogglesTotal    *prometheus.CounterVec
	PurchasesStartedTotal   prometheus.Counter
	PurchasesCompletedTotal *prometheus.CounterVec
	LogisticsRequestsTotal  prometheus.Counter
	ActivePurchaseSessions  prometheus.Gauge
	ImagesUploadedTotal     *prometheus.CounterVec
}

// New registers all collectors on a private registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Total number of listings created.",
		}),
		FavoriteTogglesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "Favorite toggles by resulting membership.",
		}, []string{"result"}),
		PurchasesStartedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_started_total",
			Help:      "Total number of purchase sessions started.",
		}),
		PurchasesCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_completed_total",
			Help:      "Completed purchases by logistics mode.",
		}, []string{"mode"}),
		LogisticsRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logistics_requests_created_total",
			Help:      "Total number of logistics requests created.",
		}),
		ActivePurchaseSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "purchase_sessions_active",
			Help:      "Purchase sessions currently held in memory.",
		}),
		ImagesUploadedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_uploaded_total",
			Help:      "Image uploads by store.",
		}, []string{"store"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.FavoriteTogglesTotal,
		m.PurchasesStartedTotal,
		m.PurchasesCompletedTotal,
		m.LogisticsRequestsTotal,
		m.ActivePurchaseSessions,
		m.ImagesUploadedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Provide builds Metrics from METRICS_NAMESPACE.
func Provide(cfg *config.Config) *Metrics {
	return New(cfg.MetricsNamespace)
}

// NewNop returns collectors on a throwaway registry, for tests.
func NewNop() *Metrics {
	return New("test")
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
