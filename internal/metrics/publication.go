// Package metrics provides Prometheus metrics for publications and the
// transcoding engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "relaycoder"

var (
	serviceSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "publication",
		Name:      "service_selections_total",
		Help:      "Number of times a service was selected for a publication",
	}, []string{"service"})

	egressCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "publication",
		Name:      "egress_created_total",
		Help:      "Number of egress processes created",
	}, []string{"service"})

	egressFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "publication",
		Name:      "egress_failures_total",
		Help:      "Number of failed egress creations by stage",
	}, []string{"service", "stage"})

	// Local cache for the API summary.
	serviceCache   = make(map[string]*ServiceCounts)
	serviceCacheMu sync.RWMutex
)

// ServiceCounts holds the publication counters of one service.
type ServiceCounts struct {
	Selected float64 `json:"selected"`
	Created  float64 `json:"created"`
	Failed   float64 `json:"failed"`
}

// RecordServiceSelected counts a service selection.
func RecordServiceSelected(service string) {
	serviceSelections.WithLabelValues(service).Inc()
	updateCache(service, func(c *ServiceCounts) { c.Selected++ })
}

// RecordEgressCreated counts a created egress.
func RecordEgressCreated(service string) {
	egressCreated.WithLabelValues(service).Inc()
	updateCache(service, func(c *ServiceCounts) { c.Created++ })
}

// RecordEgressFailed counts a failed egress creation at the given stage.
func RecordEgressFailed(service, stage string) {
	egressFailures.WithLabelValues(service, stage).Inc()
	updateCache(service, func(c *ServiceCounts) { c.Failed++ })
}

// GetServiceCounts returns the counters of a service, nil if it was never
// used.
func GetServiceCounts(service string) *ServiceCounts {
	serviceCacheMu.RLock()
	defer serviceCacheMu.RUnlock()
	if c, ok := serviceCache[service]; ok {
		dup := *c
		return &dup
	}
	return nil
}

// GetAllServiceCounts returns the counters of every used service.
func GetAllServiceCounts() map[string]*ServiceCounts {
	serviceCacheMu.RLock()
	defer serviceCacheMu.RUnlock()
	result := make(map[string]*ServiceCounts, len(serviceCache))
	for id, c := range serviceCache {
		dup := *c
		result[id] = &dup
	}
	return result
}

func updateCache(service string, update func(*ServiceCounts)) {
	serviceCacheMu.Lock()
	defer serviceCacheMu.Unlock()
	c, ok := serviceCache[service]
	if !ok {
		c = &ServiceCounts{}
		serviceCache[service] = c
	}
	update(c)
}
