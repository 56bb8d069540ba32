package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

func Init(cfg Config) {
	once.Do(func() {
		lg = slog.New(newHandler(cfg))
		slog.SetDefault(lg)
	})
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "debug", Format: "console"})
	}
	return lg
}

// With returns a logger tagged with the owning component.
func With(component string) *slog.Logger {
	return L().With("component", component)
}

func newHandler(cfg Config) slog.Handler {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	level := parseLevel(cfg.Level)
	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		return slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		return &consoleHandler{w: cfg.Output, mu: &sync.Mutex{}, level: level}
	}
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 INFO  Locomotion mode changed  from=Ground to=SurfaceSwim position=(0.00, 0.40, 6.12)
//
// Lines start with a carriage return so they overwrite the debug console's
// status line instead of trailing it.
type consoleHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format(time.TimeOnly)
	lvl := levelTag(r.Level)

	line := fmt.Sprintf("\r%s %s %s", ts, lvl, r.Message)

	for _, a := range h.attrs {
		line += formatAttr(h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += formatAttr(h.group, a)
		return true
	})

	line += "\n"
	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}
	_, err := fmt.Fprint(h.w, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:     h.w,
		mu:    h.mu,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &consoleHandler{
		w:     h.w,
		mu:    h.mu,
		level: h.level,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: prefix,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%s", key, formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', 3, 64)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case mgl64.Vec3:
			return fmt.Sprintf("(%.2f, %.2f, %.2f)", x[0], x[1], x[2])
		case mgl64.Vec2:
			return fmt.Sprintf("(%.2f, %.2f)", x[0], x[1])
		}
	}
	return v.String()
}
