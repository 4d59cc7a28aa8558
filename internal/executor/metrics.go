package executor

import "github.com/prometheus/client_golang/prometheus"

var (
	executeTxDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "txkernel",
		Subsystem: "executor",
		Name:      "execute_transaction_duration_seconds",
		Help:      "The total latency of transaction execute",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	})
	vmCycles = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "txkernel",
		Subsystem: "executor",
		Name:      "vm_cycles",
		Help:      "The number of VM cycles spent per transaction",
		Buckets:   prometheus.ExponentialBuckets(1024, 2, 16),
	})
	outputNotesCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "txkernel",
		Subsystem: "executor",
		Name:      "output_notes",
		Help:      "The number of notes created per transaction",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 13),
	})
	executeTxCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txkernel",
		Subsystem: "executor",
		Name:      "execute_transaction_total",
		Help:      "The number of transactions executed, by result",
	}, []string{"result"})
	kernelEventCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txkernel",
		Subsystem: "executor",
		Name:      "kernel_event_total",
		Help:      "The number of events emitted by the transaction kernel, by event",
	}, []string{"event"})
)

func init() {
	prometheus.MustRegister(executeTxDuration)
	prometheus.MustRegister(vmCycles)
	prometheus.MustRegister(outputNotesCount)
	prometheus.MustRegister(executeTxCounter)
	prometheus.MustRegister(kernelEventCounter)
}
