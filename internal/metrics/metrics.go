package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "api_http_requests_total", Help: "HTTP requests"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	CampaignTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "campaign_transitions_total", Help: "Campaign state transitions"},
		[]string{"action"},
	)
	ApprovalResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "approval_resolutions_total", Help: "Approval requests resolved"},
		[]string{"result"},
	)
	EventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "workflow_events_published_total", Help: "Workflow events published"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration,
		CampaignTransitionsTotal, ApprovalResolutionsTotal, EventsPublishedTotal,
	)
}

func Handler() http.Handler { return promhttp.Handler() }
