// Package metrics records render-loop statistics with Prometheus collectors.
//
// Nothing is served over the network. The registry is gathered once at exit
// so the totals end up in the log.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "purfectclock"
	subsystem = "render"
)

// frameBuckets covers typical full-frame render times in milliseconds.
var frameBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50}

// Manager owns the render-loop collectors.
type Manager struct {
	registry *prometheus.Registry

	framesRendered   prometheus.Counter
	framesDegenerate prometheus.Counter
	keyEvents        *prometheus.CounterVec
	frameDuration    prometheus.Histogram
	terminalCells    prometheus.Gauge
}

// Summary is a point-in-time digest of the collectors.
type Summary struct {
	FramesRendered   uint64
	FramesDegenerate uint64
	KeyEvents        uint64
	MeanFrameMillis  float64
	TerminalCells    float64
}

// NewManager creates a Manager with its collectors registered.
func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "frames_total",
		Help:      "Frames written to the terminal",
	})

	m.framesDegenerate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "frames_degenerate_total",
		Help:      "Frames drawn blank because the terminal was too small",
	})

	m.keyEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "key_events_total",
		Help:      "Key presses read from the terminal, by outcome",
	}, []string{"action"})

	m.frameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "frame_duration_milliseconds",
		Help:      "Time to compute and write one frame",
		Buckets:   frameBuckets,
	})

	m.terminalCells = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "terminal_cells",
		Help:      "Cells in the most recent frame",
	})
}

// ObserveFrame records one written frame.
func (m *Manager) ObserveFrame(d time.Duration, cols, rows int) {
	m.framesRendered.Inc()
	m.frameDuration.Observe(float64(d) / float64(time.Millisecond))
	m.terminalCells.Set(float64(cols * rows))
}

// ObserveDegenerateFrame records a frame that could not hold a clock face.
func (m *Manager) ObserveDegenerateFrame() {
	m.framesDegenerate.Inc()
}

// ObserveKey records a key press; action is "quit" or "ignored".
func (m *Manager) ObserveKey(action string) {
	m.keyEvents.WithLabelValues(action).Inc()
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Summary gathers the registry into a Summary.
func (m *Manager) Summary() (Summary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}

	var s Summary
	prefix := namespace + "_" + subsystem + "_"
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch mf.GetName() {
			case prefix + "frames_total":
				s.FramesRendered += uint64(metric.GetCounter().GetValue())
			case prefix + "frames_degenerate_total":
				s.FramesDegenerate += uint64(metric.GetCounter().GetValue())
			case prefix + "key_events_total":
				s.KeyEvents += uint64(metric.GetCounter().GetValue())
			case prefix + "terminal_cells":
				s.TerminalCells = metric.GetGauge().GetValue()
			case prefix + "frame_duration_milliseconds":
				h := metric.GetHistogram()
				if h.GetSampleCount() > 0 {
					s.MeanFrameMillis = h.GetSampleSum() / float64(h.GetSampleCount())
				}
			}
		}
	}
	return s, nil
}
