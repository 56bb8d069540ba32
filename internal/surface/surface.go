package surface

// Reference is an external water-surface object whose vertical coordinate is
// authoritative for the current tick.
type Reference interface {
	Height() float64
}

// Oracle resolves the water-surface height used by locomotion and effects.
type Oracle struct {
	ref    Reference
	offset float64
}

func NewOracle(ref Reference, offset float64) *Oracle {
	return &Oracle{ref: ref, offset: offset}
}

// Height returns the surface height plus the configured offset. Without a
// reference it falls back to actorY, which makes surface following and depth
// clamping collapse to a no-op around the actor.
func (o *Oracle) Height(actorY float64) float64 {
	if o == nil || o.ref == nil {
		return actorY
	}
	return o.ref.Height() + o.offset
}

func (o *Oracle) HasReference() bool {
	return o != nil && o.ref != nil
}

func (o *Oracle) SetReference(ref Reference) {
	if o == nil {
		return
	}
	o.ref = ref
}

// Static is a flat surface at a fixed height.
type Static float64

func (s Static) Height() float64 { return float64(s) }
