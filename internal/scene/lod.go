package scene

// Detail is the representation picked for an object at a given distance.
type Detail int

const (
	DetailFull Detail = iota
	DetailLow
	DetailHidden
)

func (d Detail) String() string {
	switch d {
	case DetailFull:
		return "full"
	case DetailLow:
		return "low"
	case DetailHidden:
		return "hidden"
	}
	return "unknown"
}

// LOD holds ascending distance thresholds, one per Detail level.
type LOD struct {
	Distances [3]float64
}

// DefaultLOD keeps the whole default field (at most ~100 units from the
// camera) at full detail. Deeper fields fall back to the plain material, and
// anything past 300 is culled.
var DefaultLOD = LOD{Distances: [3]float64{0, 200, 300}}

// Select returns the coarsest level whose threshold the distance has reached.
func (l LOD) Select(distance float64) Detail {
	level := DetailFull
	for i, d := range l.Distances {
		if distance >= d {
			level = Detail(i)
		}
	}
	return level
}
