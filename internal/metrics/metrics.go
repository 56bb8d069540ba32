package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Versifine/beaver/internal/event"
)

const namespace = "beaver"

var modes = []string{"Ground", "SurfaceSwim", "Submerged"}

// Recorder exports simulation counters. Bus-driven collectors are updated by
// the handlers installed with Attach; the tick loop calls ObserveTick.
type Recorder struct {
	ticks       prometheus.Counter
	transitions *prometheus.CounterVec
	mode        *prometheus.GaugeVec
	depth       prometheus.Gauge
	water       *prometheus.CounterVec
	splashes    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "ticks_total",
			Help:      "Fixed physics ticks executed.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locomotion",
			Name:      "transitions_total",
			Help:      "Locomotion mode transitions.",
		}, []string{"from", "to"}),
		mode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "locomotion",
			Name:      "mode",
			Help:      "1 for the active locomotion mode, 0 otherwise.",
		}, []string{"mode"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "locomotion",
			Name:      "depth",
			Help:      "Distance below the water surface in world units.",
		}),
		water: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locomotion",
			Name:      "water_crossings_total",
			Help:      "Water volume entries and exits.",
		}, []string{"direction"}),
		splashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "effects",
			Name:      "splashes_total",
			Help:      "Splash requests emitted.",
		}, []string{"forced"}),
	}

	for _, c := range []prometheus.Collector{r.ticks, r.transitions, r.mode, r.depth, r.water, r.splashes} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	r.setMode("Ground")
	return r, nil
}

// Attach subscribes the recorder to simulation events.
func (r *Recorder) Attach(bus *event.Bus) {
	bus.Subscribe(event.ModeChangedEvent, func(raw any) {
		evt, ok := raw.(*event.ModeChanged)
		if !ok {
			return
		}
		r.transitions.WithLabelValues(evt.From, evt.To).Inc()
		r.setMode(evt.To)
	})
	bus.Subscribe(event.WaterEnteredEvent, func(any) {
		r.water.WithLabelValues("enter").Inc()
	})
	bus.Subscribe(event.WaterExitedEvent, func(any) {
		r.water.WithLabelValues("exit").Inc()
	})
	bus.Subscribe(event.SplashEvent, func(raw any) {
		evt, ok := raw.(*event.Splash)
		if !ok {
			return
		}
		forced := "false"
		if evt.Forced {
			forced = "true"
		}
		r.splashes.WithLabelValues(forced).Inc()
	})
}

func (r *Recorder) ObserveTick(depth float64) {
	if r == nil {
		return
	}
	r.ticks.Inc()
	r.depth.Set(depth)
}

func (r *Recorder) setMode(active string) {
	for _, m := range modes {
		v := 0.0
		if m == active {
			v = 1
		}
		r.mode.WithLabelValues(m).Set(v)
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen metrics %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	slog.Info("Metrics endpoint listening", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	}
}
