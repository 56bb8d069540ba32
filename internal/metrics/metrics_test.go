package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Versifine/beaver/internal/event"
)

func newRecorder(t *testing.T) (*Recorder, *prometheus.Registry, *event.Bus) {
	t.Helper()
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)
	bus := event.NewBus()
	r.Attach(bus)
	return r, reg, bus
}

func TestRecorderCountsEvents(t *testing.T) {
	r, _, bus := newRecorder(t)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.mode.WithLabelValues("Ground")))

	bus.Publish(event.ModeChangedEvent, &event.ModeChanged{From: "Ground", To: "SurfaceSwim"})
	bus.Publish(event.ModeChangedEvent, &event.ModeChanged{From: "SurfaceSwim", To: "Submerged"})
	bus.Publish(event.WaterEnteredEvent, &event.WaterEntered{Tag: "Water"})
	bus.Publish(event.SplashEvent, &event.Splash{Forced: true})
	bus.Publish(event.SplashEvent, &event.Splash{})
	bus.Publish(event.SplashEvent, &event.Splash{})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("SurfaceSwim", "Submerged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.mode.WithLabelValues("Submerged")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.mode.WithLabelValues("Ground")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.water.WithLabelValues("enter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.splashes.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.splashes.WithLabelValues("false")))
}

func TestRecorderObserveTick(t *testing.T) {
	r, _, _ := newRecorder(t)

	r.ObserveTick(0.5)
	r.ObserveTick(1.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ticks))
	assert.Equal(t, 1.25, testutil.ToFloat64(r.depth))

	var nilRecorder *Recorder
	assert.NotPanics(t, func() { nilRecorder.ObserveTick(1) })
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestHandlerExposesCollectors(t *testing.T) {
	r, reg, _ := newRecorder(t)
	r.ObserveTick(0)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "beaver_sim_ticks_total 1"))
}

func TestServeStopsOnCancel(t *testing.T) {
	reg := prometheus.NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", reg) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReportsListenError(t *testing.T) {
	err := Serve(context.Background(), "256.0.0.1:bad", prometheus.NewRegistry())
	assert.Error(t, err)
}
