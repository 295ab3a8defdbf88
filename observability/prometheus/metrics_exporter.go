package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Swind/go-frame-scheduler/core"
)

const defaultNamespace = "framescheduler"

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	// DurationBuckets for frame_duration_seconds. Defaults to buckets sized
	// around a 60 fps budget.
	DurationBuckets []float64

	// PassBuckets for frame_passes. Defaults to 1, 2, 3, 5, 8, 13.
	PassBuckets []float64
}

var (
	defaultDurationBuckets = []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25}
	defaultPassBuckets     = []float64{1, 2, 3, 5, 8, 13}
)

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	frameDurationSeconds *prom.HistogramVec
	framePasses          *prom.HistogramVec
	tasksExecutedTotal   *prom.CounterVec
	lockViolationsTotal  *prom.CounterVec
	frameRequestsTotal   *prom.CounterVec
	taskPanicTotal       *prom.CounterVec
	taskRejectedTotal    *prom.CounterVec
	queueDepth           *prom.GaugeVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	durationBuckets := opts.DurationBuckets
	if len(durationBuckets) == 0 {
		durationBuckets = defaultDurationBuckets
	}
	passBuckets := opts.PassBuckets
	if len(passBuckets) == 0 {
		passBuckets = defaultPassBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_duration_seconds",
		Help:      "Frame execution duration in seconds.",
		Buckets:   durationBuckets,
	}, []string{"scheduler"})
	passesVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_passes",
		Help:      "Read/write passes needed for a frame to settle.",
		Buckets:   passBuckets,
	}, []string{"scheduler"})
	executedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_executed_total",
		Help:      "Total number of frame tasks executed.",
	}, []string{"scheduler", "kind"})
	violationsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "lock_violations_total",
		Help:      "Total number of tasks added to a frame after its DOM phase.",
	}, []string{"scheduler", "kind"})
	requestsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "frame_requests_total",
		Help:      "Total number of frame requests issued to the host.",
	}, []string{"scheduler"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of host task panics.",
	}, []string{"host"})
	rejectedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_rejected_total",
		Help:      "Total number of rejected host tasks.",
	}, []string{"host", "reason"})
	queueDepthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current host queue depth.",
	}, []string{"host"})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if passesVec, err = registerCollector(reg, passesVec); err != nil {
		return nil, err
	}
	if executedVec, err = registerCollector(reg, executedVec); err != nil {
		return nil, err
	}
	if violationsVec, err = registerCollector(reg, violationsVec); err != nil {
		return nil, err
	}
	if requestsVec, err = registerCollector(reg, requestsVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if rejectedVec, err = registerCollector(reg, rejectedVec); err != nil {
		return nil, err
	}
	if queueDepthVec, err = registerCollector(reg, queueDepthVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		frameDurationSeconds: durationVec,
		framePasses:          passesVec,
		tasksExecutedTotal:   executedVec,
		lockViolationsTotal:  violationsVec,
		frameRequestsTotal:   requestsVec,
		taskPanicTotal:       panicVec,
		taskRejectedTotal:    rejectedVec,
		queueDepth:           queueDepthVec,
	}, nil
}

// RecordFrameDuration records how long a frame took.
func (m *MetricsExporter) RecordFrameDuration(schedulerName string, duration time.Duration) {
	if m == nil {
		return
	}
	m.frameDurationSeconds.WithLabelValues(normalizeLabel(schedulerName, "unknown")).Observe(duration.Seconds())
}

// RecordFramePasses records the number of read/write passes of a frame.
func (m *MetricsExporter) RecordFramePasses(schedulerName string, passes int) {
	if m == nil {
		return
	}
	m.framePasses.WithLabelValues(normalizeLabel(schedulerName, "unknown")).Observe(float64(passes))
}

// RecordTasksExecuted adds count tasks of kind. Zero counts are skipped so
// idle kinds do not create series.
func (m *MetricsExporter) RecordTasksExecuted(schedulerName string, kind core.TaskFlags, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.tasksExecutedTotal.WithLabelValues(normalizeLabel(schedulerName, "unknown"), kindLabel(kind)).Add(float64(count))
}

// RecordLockViolation records a task added to a locked frame.
func (m *MetricsExporter) RecordLockViolation(schedulerName string, kind core.TaskFlags) {
	if m == nil {
		return
	}
	m.lockViolationsTotal.WithLabelValues(normalizeLabel(schedulerName, "unknown"), kindLabel(kind)).Inc()
}

// RecordFrameRequest records a frame request reaching the host.
func (m *MetricsExporter) RecordFrameRequest(schedulerName string) {
	if m == nil {
		return
	}
	m.frameRequestsTotal.WithLabelValues(normalizeLabel(schedulerName, "unknown")).Inc()
}

// RecordTaskPanic records task panic events.
func (m *MetricsExporter) RecordTaskPanic(hostName string, panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanicTotal.WithLabelValues(normalizeLabel(hostName, "unknown")).Inc()
}

// RecordQueueDepth records queue depth.
func (m *MetricsExporter) RecordQueueDepth(hostName string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(hostName, "unknown")).Set(float64(depth))
}

// RecordTaskRejected records task rejection events.
func (m *MetricsExporter) RecordTaskRejected(hostName string, reason string) {
	if m == nil {
		return
	}
	m.taskRejectedTotal.WithLabelValues(normalizeLabel(hostName, "unknown"), normalizeLabel(reason, "unknown")).Inc()
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func kindLabel(kind core.TaskFlags) string {
	switch kind {
	case core.TaskRead:
		return "read"
	case core.TaskWrite:
		return "write"
	case core.TaskComponent:
		return "component"
	case core.TaskAfter:
		return "after"
	default:
		return "unknown"
	}
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
