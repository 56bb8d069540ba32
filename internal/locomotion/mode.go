package locomotion

// Mode is the actor's locomotion regime. Exactly one is active at a time and
// only the controller's transition function changes it.
type Mode int

const (
	Ground Mode = iota
	SurfaceSwim
	Submerged
)

func (m Mode) String() string {
	switch m {
	case Ground:
		return "Ground"
	case SurfaceSwim:
		return "SurfaceSwim"
	case Submerged:
		return "Submerged"
	default:
		return "Unknown"
	}
}

// InWaterMode reports whether m is one of the water regimes.
func (m Mode) InWaterMode() bool {
	return m == SurfaceSwim || m == Submerged
}
