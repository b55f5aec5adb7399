package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	ratingsTotal      *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rating",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the rating API.",
		}, []string{"method", "path", "status"})

		ratingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rating",
			Name:      "ratings_total",
			Help:      "Total accepted votes, by vote type.",
		}, []string{"type"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncRating counts one accepted vote of the given type.
func IncRating(voteType string) {
	if ratingsTotal == nil {
		return
	}
	ratingsTotal.WithLabelValues(voteType).Inc()
}
