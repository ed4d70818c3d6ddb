package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total daily health reports generated, by narrative source",
		},
		[]string{"source"},
	)

	HighRiskReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "high_risk_reports_total",
			Help: "Total reports whose risk percentage crossed the alert threshold",
		},
	)

	ChatResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_responses_total",
			Help: "Total chat responses served, by response source",
		},
		[]string{"source"},
	)

	OTPEmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "otp_emails_sent_total",
			Help: "Total account-deletion OTP emails sent",
		},
	)
)

// Middleware records per-request duration labeled by method, chi route
// pattern, and status code.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		HTTPRequestDuration.WithLabelValues(
			r.Method, route, strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}
