package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/Versifine/beaver/internal/camera"
	"github.com/Versifine/beaver/internal/input"
	"github.com/Versifine/beaver/internal/sim"
)

const (
	defaultRefreshInterval = 100 * time.Millisecond
	defaultMovePulse       = 180 * time.Millisecond
	orbitStep              = 0.5
	zoomStep               = 120.0
)

// Simulation is the part of sim.Simulation the console drives.
type Simulation interface {
	Status() sim.Status
	Pause()
	Resume()
}

// Console is a raw-terminal driver for the simulation. It is the input
// source for locomotion and the pointer source for the camera: movement keys
// are short pulses, dive and ascend are toggles, arrows orbit the camera.
type Console struct {
	sim             Simulation
	quit            context.CancelFunc
	out             io.Writer
	refreshInterval time.Duration
	movePulse       time.Duration
	now             func() time.Time

	mu            sync.Mutex
	move          mgl64.Vec2
	dive          bool
	ascend        bool
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	orbit         mgl64.Vec2
	scroll        float64
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(s Simulation, quit context.CancelFunc) *Console {
	return &Console{
		sim:             s,
		quit:            quit,
		out:             os.Stdout,
		refreshInterval: defaultRefreshInterval,
		movePulse:       defaultMovePulse,
		now:             time.Now,
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.sim == nil {
		return fmt.Errorf("console simulation is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	fmt.Fprint(c.out, "[debug] console started (W/A/S/D pulse, C dive, Space ascend, arrows orbit, +/- zoom, :help)\r\n")
	c.renderStatusLine()

	go c.refreshLoop(ctx)

	keys := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			b, err := reader.ReadByte()
			if err != nil {
				keys <- err
				return
			}
			c.handleKey(reader, b)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-keys:
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("read console input: %w", err)
	}
}

func (c *Console) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.renderStatusLine()
		}
	}
}

// Sample implements input.Source.
func (c *Console) Sample() input.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyMovementPulseLocked(c.now())
	return input.State{Move: c.move, Dive: c.dive, Ascend: c.ascend}
}

// Reset implements input.Resetter; locomotion calls it on pause and resume.
func (c *Console) Reset() {
	c.clearInput()
}

// SamplePointer hands accumulated arrow and zoom presses to the camera once.
func (c *Console) SamplePointer() camera.PointerInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	in := camera.PointerInput{
		Delta:   c.orbit,
		Scroll:  c.scroll,
		Primary: c.orbit != (mgl64.Vec2{}),
	}
	c.orbit = mgl64.Vec2{}
	c.scroll = 0
	return in
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(1, 1, &c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(1, -1, &c.backwardUntil, &c.forwardUntil)
	case 'd', 'D':
		c.pulse(0, 1, &c.rightUntil, &c.leftUntil)
	case 'a', 'A':
		c.pulse(0, -1, &c.leftUntil, &c.rightUntil)
	case 'c', 'C':
		c.toggle(func() { c.dive = !c.dive })
	case ' ':
		c.toggle(func() { c.ascend = !c.ascend })
	case '+', '=':
		c.zoom(zoomStep)
	case '-', '_':
		c.zoom(-zoomStep)
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.orbitBy(-orbitStep, 0)
		case 'C': // right
			c.orbitBy(orbitStep, 0)
		case 'A': // up
			c.orbitBy(0, orbitStep)
		case 'B': // down
			c.orbitBy(0, -orbitStep)
		}
	}
	c.renderStatusLine()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s ", buf)
		fmt.Fprintf(c.out, "\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		st := c.sim.Status()
		fmt.Fprintf(c.out, "[debug] mode=%s enabled=%t water=%t pos=(%.3f,%.3f,%.3f) yaw=%.1f speed=%.2f surface=%.3f depth=%.3f\r\n",
			st.Mode, st.Enabled, st.InWater,
			st.Position.X(), st.Position.Y(), st.Position.Z(),
			st.Yaw, st.FlatSpeed, st.SurfaceY, st.Depth,
		)
		fmt.Fprintf(c.out, "[debug] camera pos=(%.3f,%.3f,%.3f) yaw=%.1f pitch=%.1f ticks=%d frames=%d t=%.2fs\r\n",
			st.Camera.Position.X(), st.Camera.Position.Y(), st.Camera.Position.Z(),
			st.Camera.Yaw, st.Camera.Pitch, st.Ticks, st.Frames, st.SimSeconds,
		)
	case "pause":
		c.sim.Pause()
		fmt.Fprint(c.out, "[debug] locomotion paused\r\n")
	case "resume":
		c.sim.Resume()
		fmt.Fprint(c.out, "[debug] locomotion resumed\r\n")
	case "quit", "q":
		fmt.Fprint(c.out, "[debug] quitting\r\n")
		if c.quit != nil {
			c.quit()
		}
	default:
		fmt.Fprintf(c.out, "[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[debug] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  C: toggle dive\r\n")
	fmt.Fprint(c.out, "  Space: toggle ascend\r\n")
	fmt.Fprint(c.out, "  Arrows: orbit camera\r\n")
	fmt.Fprint(c.out, "  +/-: zoom in/out\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[debug] commands:\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :pause\r\n")
	fmt.Fprint(c.out, "  :resume\r\n")
	fmt.Fprint(c.out, "  :quit\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	move, dive, ascend := c.move, c.dive, c.ascend
	width := c.statusWidth
	c.mu.Unlock()

	st := c.sim.Status()
	line := fmt.Sprintf(
		"[%s%s | MOV:%+.0f,%+.0f DIV:%s ASC:%s | X:%.2f Y:%.2f Z:%.2f | surf:%.2f depth:%.2f spd:%.2f | cam yaw:%.0f pit:%.0f]",
		st.Mode,
		pausedLabel(st.Enabled),
		move[0], move[1],
		boolLabel(dive),
		boolLabel(ascend),
		st.Position.X(), st.Position.Y(), st.Position.Z(),
		st.SurfaceY, st.Depth, st.FlatSpeed,
		st.Camera.Yaw, st.Camera.Pitch,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) pulse(axis int, sign float64, until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move[axis] = sign
	*until = c.now().Add(c.movePulse)
	*opposite = time.Time{}
}

func (c *Console) toggle(update func()) {
	c.mu.Lock()
	update()
	dive, ascend := c.dive, c.ascend
	c.mu.Unlock()
	slog.Debug("debug modifier toggled", "dive", dive, "ascend", ascend)
}

func (c *Console) orbitBy(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbit = c.orbit.Add(mgl64.Vec2{dx, dy})
}

func (c *Console) zoom(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll += amount
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) applyMovementPulseLocked(now time.Time) {
	expire := func(until *time.Time, axis int, sign float64) {
		if until.IsZero() || now.Before(*until) {
			return
		}
		*until = time.Time{}
		if c.move[axis] == sign {
			c.move[axis] = 0
		}
	}
	expire(&c.forwardUntil, 1, 1)
	expire(&c.backwardUntil, 1, -1)
	expire(&c.rightUntil, 0, 1)
	expire(&c.leftUntil, 0, -1)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.move = mgl64.Vec2{}
	c.dive = false
	c.ascend = false
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.mu.Unlock()
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func pausedLabel(enabled bool) string {
	if enabled {
		return ""
	}
	return " (paused)"
}
