// Package health tracks per-component health for the readiness and
// liveness endpoints. Components report healthy, degraded or unhealthy
// and the monitor aggregates them into one service-level status.
package health

import (
	"sync"
	"time"
)

// Status levels.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Status is the health state of one component or of the aggregated
// service.
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
}

// IsHealthy reports whether the status is fully healthy.
func (s Status) IsHealthy() bool { return s.Status == StatusHealthy }

// IsDegraded reports whether the component runs with reduced function.
func (s Status) IsDegraded() bool { return s.Status == StatusDegraded }

// IsUnhealthy reports whether the component is down.
func (s Status) IsUnhealthy() bool { return s.Status == StatusUnhealthy }

// NewHealthy builds a healthy status.
func NewHealthy(component, message string) Status {
	return Status{
		Component: component,
		Healthy:   true,
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewDegraded builds a degraded status.
func NewDegraded(component, message string) Status {
	return Status{
		Component: component,
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewUnhealthy builds an unhealthy status.
func NewUnhealthy(component, message string) Status {
	return Status{
		Component: component,
		Status:    StatusUnhealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Monitor tracks the health of named components. Safe for concurrent
// use.
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

// NewMonitor builds an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{statuses: make(map[string]Status)}
}

// Update records a component's status under its name.
func (m *Monitor) Update(name string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}
	m.statuses[name] = status
}

// UpdateHealthy marks a component healthy.
func (m *Monitor) UpdateHealthy(name, message string) {
	m.Update(name, NewHealthy(name, message))
}

// UpdateDegraded marks a component degraded.
func (m *Monitor) UpdateDegraded(name, message string) {
	m.Update(name, NewDegraded(name, message))
}

// UpdateUnhealthy marks a component unhealthy.
func (m *Monitor) UpdateUnhealthy(name, message string) {
	m.Update(name, NewUnhealthy(name, message))
}

// Get retrieves one component's status.
func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, ok := m.statuses[name]
	return status, ok
}

// Aggregate folds all component statuses into one service-level
// status: any unhealthy component makes the service unhealthy, any
// degraded one (with none unhealthy) makes it degraded.
func (m *Monitor) Aggregate(serviceName string) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agg := NewHealthy(serviceName, "all components healthy")
	for _, s := range m.statuses {
		agg.SubStatuses = append(agg.SubStatuses, s)
		switch {
		case s.IsUnhealthy():
			agg.Healthy = false
			agg.Status = StatusUnhealthy
			agg.Message = s.Component + ": " + s.Message
		case s.IsDegraded() && !agg.IsUnhealthy():
			agg.Healthy = false
			agg.Status = StatusDegraded
			agg.Message = s.Component + ": " + s.Message
		}
	}
	return agg
}

// Ready reports whether the service should answer readiness probes
// positively: no component may be unhealthy. Degraded still counts as
// ready so a stale-but-serving dataset keeps traffic flowing.
func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.statuses {
		if s.IsUnhealthy() {
			return false
		}
	}
	return true
}
