package world

import (
	"log/slog"

	"github.com/Versifine/beaver/internal/physics"
)

// Volume is a tagged trigger region. It never blocks movement.
type Volume struct {
	Tag    string
	Bounds physics.AABB
}

// Containment receives enter and exit notifications by region tag.
type Containment interface {
	EnterWater(tag string)
	ExitWater(tag string)
}

// Tracker turns box overlap into enter/exit notifications. Volumes sharing a
// tag act as one region: enter fires when the first is touched and exit when
// the last is left.
type Tracker struct {
	volumes  []Volume
	inside   []bool
	perTag   map[string]int
	listener Containment
}

func NewTracker(listener Containment, volumes ...Volume) *Tracker {
	return &Tracker{
		volumes:  volumes,
		inside:   make([]bool, len(volumes)),
		perTag:   make(map[string]int),
		listener: listener,
	}
}

// Update compares box against every volume and notifies tags whose
// containment changed. Exits are delivered before enters.
func (t *Tracker) Update(box physics.AABB) {
	counts := make(map[string]int, len(t.perTag))
	for i, v := range t.volumes {
		t.inside[i] = box.Intersects(v.Bounds)
		if t.inside[i] {
			counts[v.Tag]++
		}
	}

	var entered, exited []string
	seen := make(map[string]bool)
	for _, v := range t.volumes {
		if seen[v.Tag] {
			continue
		}
		seen[v.Tag] = true
		was, now := t.perTag[v.Tag] > 0, counts[v.Tag] > 0
		switch {
		case now && !was:
			entered = append(entered, v.Tag)
		case was && !now:
			exited = append(exited, v.Tag)
		}
	}
	t.perTag = counts

	for _, tag := range exited {
		slog.Debug("Left volume", "tag", tag)
		t.listener.ExitWater(tag)
	}
	for _, tag := range entered {
		slog.Debug("Entered volume", "tag", tag)
		t.listener.EnterWater(tag)
	}
}

// Inside reports whether the last update overlapped any volume tagged tag.
func (t *Tracker) Inside(tag string) bool {
	return t.perTag[tag] > 0
}

func (t *Tracker) Volumes() []Volume {
	out := make([]Volume, len(t.volumes))
	copy(out, t.volumes)
	return out
}
