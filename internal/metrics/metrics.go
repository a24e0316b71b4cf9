package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsTotal counts messages accepted by a provider,
	// labeled by notification type and channel.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Total notifications sent",
	}, []string{"type", "channel"})

	// NotificationDuration observes wall time per bulk dispatch job run.
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "notification_duration_seconds",
		Help: "Time spent processing notifications",
	})

	// JobRetriesTotal counts job-level requeues per channel.
	JobRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_job_retries_total",
		Help: "Total bulk dispatch job retries",
	}, []string{"channel"})

	// JobFailuresTotal counts jobs that exhausted their attempts.
	JobFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_job_failures_total",
		Help: "Total bulk dispatch jobs dead-lettered after exhausting retries",
	}, []string{"channel"})
)
