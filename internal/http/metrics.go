package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// serverMetrics tracks request counters with atomics; no external metrics
// stack, just plain-text counters on /metrics.
type serverMetrics struct {
	requestsTotal int64
	responses2xx  int64
	responses4xx  int64
	responses5xx  int64
	rateLimitHits int64
}

func (m *serverMetrics) record(statusCode int) {
	atomic.AddInt64(&m.requestsTotal, 1)
	switch {
	case statusCode >= 500:
		atomic.AddInt64(&m.responses5xx, 1)
	case statusCode >= 400:
		atomic.AddInt64(&m.responses4xx, 1)
	default:
		atomic.AddInt64(&m.responses2xx, 1)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "http_requests_total %d\n", atomic.LoadInt64(&s.metrics.requestsTotal))
	fmt.Fprintf(w, "http_responses_2xx %d\n", atomic.LoadInt64(&s.metrics.responses2xx))
	fmt.Fprintf(w, "http_responses_4xx %d\n", atomic.LoadInt64(&s.metrics.responses4xx))
	fmt.Fprintf(w, "http_responses_5xx %d\n", atomic.LoadInt64(&s.metrics.responses5xx))
	fmt.Fprintf(w, "http_rate_limit_hits %d\n", atomic.LoadInt64(&s.metrics.rateLimitHits))
	fmt.Fprintf(w, "cache_dashboard_entries %d\n", int64(s.dashboardCache.Size()))
	fmt.Fprintf(w, "cache_report_entries %d\n", int64(s.reportCache.Size()))
}
