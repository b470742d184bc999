package telemetry

import "github.com/prometheus/client_golang/prometheus"

const livelookNamespace string = "livelook"

var ControlOperationCounter *prometheus.CounterVec

func init() {
	ControlOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: livelookNamespace,
			Subsystem: "webinar",
			Name:      "control_operation",
		},
		[]string{"operation", "status"},
	)

	prometheus.MustRegister(ControlOperationCounter)
}

func ControlOperationSucceeded(operation string) {
	ControlOperationCounter.WithLabelValues(operation, "success").Inc()
}

func ControlOperationFailed(operation string) {
	ControlOperationCounter.WithLabelValues(operation, "failure").Inc()
}
