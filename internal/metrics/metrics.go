// Package metrics counts processed commands by action and outcome.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the command counters on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	commands := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyrobot_commands_total",
			Help: "Input lines processed, by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(commands)

	return &Recorder{registry: reg, commands: commands}
}

// Observe counts one processed line. Lines that failed to parse have no
// action and are recorded as "unknown".
func (r *Recorder) Observe(action, outcome string) {
	if action == "" {
		action = "unknown"
	}
	r.commands.WithLabelValues(action, outcome).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current counters in Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
