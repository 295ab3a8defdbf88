package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Swind/go-frame-scheduler/core"
)

// SchedulerSnapshotProvider provides current frame scheduler stats snapshots.
type SchedulerSnapshotProvider interface {
	Stats() core.FrameStats
}

// HostSnapshotProvider provides current host stats snapshots.
type HostSnapshotProvider interface {
	Stats() core.HostStats
}

// SnapshotPoller periodically exports scheduler/host Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	schedulersMu sync.RWMutex
	schedulers   map[string]SchedulerSnapshotProvider

	hostsMu sync.RWMutex
	hosts   map[string]HostSnapshotProvider

	schedulerFrames         *prom.GaugeVec
	schedulerPending        *prom.GaugeVec
	schedulerLockViolations *prom.GaugeVec
	schedulerLastDuration   *prom.GaugeVec
	schedulerFrameStartTime *prom.GaugeVec

	hostPending         *prom.GaugeVec
	hostMicrotasks      *prom.GaugeVec
	hostFramesRequested *prom.GaugeVec
	hostRejected        *prom.GaugeVec
	hostClosed          *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	schedulerFrames := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "scheduler_frames",
		Help:      "Frame clock value per scheduler.",
	}, []string{"scheduler"})
	schedulerPending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "scheduler_frame_pending",
		Help:      "Whether a frame request is pending (1=pending, 0=idle).",
	}, []string{"scheduler"})
	schedulerLockViolations := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "scheduler_lock_violations",
		Help:      "Scheduler lock violation count snapshot.",
	}, []string{"scheduler"})
	schedulerLastDuration := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "scheduler_last_frame_duration_seconds",
		Help:      "Duration of the most recent frame.",
	}, []string{"scheduler"})
	schedulerFrameStartTime := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "scheduler_frame_start_time_seconds",
		Help:      "Host timestamp of the most recent frame.",
	}, []string{"scheduler"})

	hostPending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "host_pending",
		Help:      "Pending tasks or frame callbacks per host.",
	}, []string{"host", "type"})
	hostMicrotasks := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "host_microtasks",
		Help:      "Queued microtasks per host.",
	}, []string{"host", "type"})
	hostFramesRequested := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "host_frames_requested",
		Help:      "Host frame request count snapshot.",
	}, []string{"host", "type"})
	hostRejected := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "host_rejected",
		Help:      "Host rejected work count snapshot.",
	}, []string{"host", "type"})
	hostClosed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: defaultNamespace,
		Name:      "host_closed",
		Help:      "Host closed state (1=closed, 0=open).",
	}, []string{"host", "type"})

	var err error
	if schedulerFrames, err = registerCollector(reg, schedulerFrames); err != nil {
		return nil, err
	}
	if schedulerPending, err = registerCollector(reg, schedulerPending); err != nil {
		return nil, err
	}
	if schedulerLockViolations, err = registerCollector(reg, schedulerLockViolations); err != nil {
		return nil, err
	}
	if schedulerLastDuration, err = registerCollector(reg, schedulerLastDuration); err != nil {
		return nil, err
	}
	if schedulerFrameStartTime, err = registerCollector(reg, schedulerFrameStartTime); err != nil {
		return nil, err
	}
	if hostPending, err = registerCollector(reg, hostPending); err != nil {
		return nil, err
	}
	if hostMicrotasks, err = registerCollector(reg, hostMicrotasks); err != nil {
		return nil, err
	}
	if hostFramesRequested, err = registerCollector(reg, hostFramesRequested); err != nil {
		return nil, err
	}
	if hostRejected, err = registerCollector(reg, hostRejected); err != nil {
		return nil, err
	}
	if hostClosed, err = registerCollector(reg, hostClosed); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:                interval,
		schedulers:              make(map[string]SchedulerSnapshotProvider),
		hosts:                   make(map[string]HostSnapshotProvider),
		schedulerFrames:         schedulerFrames,
		schedulerPending:        schedulerPending,
		schedulerLockViolations: schedulerLockViolations,
		schedulerLastDuration:   schedulerLastDuration,
		schedulerFrameStartTime: schedulerFrameStartTime,
		hostPending:             hostPending,
		hostMicrotasks:          hostMicrotasks,
		hostFramesRequested:     hostFramesRequested,
		hostRejected:            hostRejected,
		hostClosed:              hostClosed,
	}, nil
}

// AddScheduler adds or replaces a scheduler snapshot provider by name.
func (p *SnapshotPoller) AddScheduler(name string, provider SchedulerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "scheduler")
	p.schedulersMu.Lock()
	p.schedulers[name] = provider
	p.schedulersMu.Unlock()
}

// AddHost adds or replaces a host snapshot provider by name.
func (p *SnapshotPoller) AddHost(name string, provider HostSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "host")
	p.hostsMu.Lock()
	p.hosts[name] = provider
	p.hostsMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx, p.done)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.schedulersMu.RLock()
	for name, provider := range p.schedulers {
		stats := provider.Stats()
		p.schedulerFrames.WithLabelValues(name).Set(float64(stats.Frames))
		p.schedulerPending.WithLabelValues(name).Set(boolGauge(stats.Pending))
		p.schedulerLockViolations.WithLabelValues(name).Set(float64(stats.LockViolations))
		p.schedulerLastDuration.WithLabelValues(name).Set(stats.LastDuration.Seconds())
		p.schedulerFrameStartTime.WithLabelValues(name).Set(stats.FrameStartTime)
	}
	p.schedulersMu.RUnlock()

	p.hostsMu.RLock()
	for name, provider := range p.hosts {
		stats := provider.Stats()
		typeLabel := normalizeLabel(stats.Type, "unknown")
		p.hostPending.WithLabelValues(name, typeLabel).Set(float64(stats.Pending))
		p.hostMicrotasks.WithLabelValues(name, typeLabel).Set(float64(stats.Microtasks))
		p.hostFramesRequested.WithLabelValues(name, typeLabel).Set(float64(stats.FramesRequested))
		p.hostRejected.WithLabelValues(name, typeLabel).Set(float64(stats.Rejected))
		p.hostClosed.WithLabelValues(name, typeLabel).Set(boolGauge(stats.Closed))
	}
	p.hostsMu.RUnlock()
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
