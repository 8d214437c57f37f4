package metrics

import "github.com/prometheus/client_golang/prometheus"

type ApplicationMetrics struct {
	Created       prometheus.Counter
	StatusChanges *prometheus.CounterVec
	Deleted       prometheus.Counter
	AuthAttempts  *prometheus.CounterVec
}

func NewApplicationMetrics(reg prometheus.Registerer) *ApplicationMetrics {
	m := &ApplicationMetrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_created_total",
			Help:      "Total number of job applications created.",
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "application_status_changes_total",
			Help:      "Total number of recorded status changes, by new status.",
		}, []string{"status"}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_deleted_total",
			Help:      "Total number of job applications deleted.",
		}),
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of register and login attempts, by action and result.",
		}, []string{"action", "result"}),
	}

	reg.MustRegister(m.Created, m.StatusChanges, m.Deleted, m.AuthAttempts)
	return m
}

func (m *ApplicationMetrics) ApplicationCreated() { m.Created.Inc() }

func (m *ApplicationMetrics) StatusChanged(status string) {
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *ApplicationMetrics) ApplicationDeleted() { m.Deleted.Inc() }

func (m *ApplicationMetrics) AuthAttempt(action string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.AuthAttempts.WithLabelValues(action, result).Inc()
}
