package gesture

import (
	"math"
	"sort"
)

// MinorIntervals is the natural minor scale in semitones from the tonic.
var MinorIntervals = []int{0, 2, 3, 5, 7, 9, 10}

const octaveSize = 12

// Scale is an ascending list of permitted pitches.
type Scale []uint8

// BuildScale lays intervals out over octaves starting at base.
func BuildScale(base int, intervals []int, octaves int) (Scale, error) {
	if octaves < 1 {
		return nil, configErr("scale.octaves", "must be at least 1, got %d", octaves)
	}
	if len(intervals) == 0 {
		return nil, configErr("scale.intervals", "empty")
	}

	scale := make(Scale, 0, len(intervals)*octaves)
	prev := -1
	for o := 0; o < octaves; o++ {
		for _, d := range intervals {
			p := base + octaveSize*o + d
			if p < 0 || p > 127 {
				return nil, configErr("scale", "pitch %d out of range 0-127", p)
			}
			if p <= prev {
				return nil, configErr("scale.intervals", "pitch %d does not ascend after %d", p, prev)
			}
			scale = append(scale, uint8(p))
			prev = p
		}
	}
	return scale, nil
}

// Nearest returns the member closest to pitch; the lower one wins a tie.
// The scale must not be empty.
func (s Scale) Nearest(pitch int) uint8 {
	nearest := s[0]
	best := math.MaxInt
	for _, p := range s {
		d := pitch - int(p)
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
			nearest = p
		}
	}
	return nearest
}

// Index returns the position of pitch in the scale, or -1.
func (s Scale) Index(pitch uint8) int {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= pitch })
	if i < len(s) && s[i] == pitch {
		return i
	}
	return -1
}

func (s Scale) First() uint8 { return s[0] }
func (s Scale) Last() uint8  { return s[len(s)-1] }

// MapLinear maps value from [srcMin, srcMax] onto [base, base+destRange],
// rounds, and clamps into 0-127. srcMin == srcMax is rejected by NewMapper.
func MapLinear(value, srcMin, srcMax, destRange float64, base int) uint8 {
	scale := destRange / (srcMax - srcMin)
	offset := -srcMin*scale + float64(base)
	v := math.Round(value*scale + offset)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// Range is a tracker axis calibration. Min may be greater than Max to invert.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) degenerate() bool {
	return r.Min == r.Max || !finite(r.Min) || !finite(r.Max)
}

// Mapping is the musical reading of one smoothed position.
type Mapping struct {
	Raw       uint8 // x mapped before quantization
	Root      uint8
	RootIndex int
	Velocity  uint8
	Depth     uint8
}

// Mapper turns positions into notes on a scale.
type Mapper struct {
	scale   Scale
	base    int
	x, y, z Range
}

// NewMapper validates the axis ranges against the scale.
func NewMapper(scale Scale, base int, x, y, z Range) (*Mapper, error) {
	if len(scale) == 0 {
		return nil, configErr("scale", "empty")
	}
	for _, a := range []struct {
		name string
		r    Range
	}{{"tracking.x", x}, {"tracking.y", y}, {"tracking.z", z}} {
		if a.r.degenerate() {
			return nil, configErr(a.name, "zero-width range [%g, %g]", a.r.Min, a.r.Max)
		}
	}
	return &Mapper{scale: scale, base: base, x: x, y: y, z: z}, nil
}

func (m *Mapper) Scale() Scale { return m.scale }

// Map quantizes x to a root in the scale, y to velocity and z to depth.
func (m *Mapper) Map(p Position) Mapping {
	n := float64(len(m.scale))
	raw := MapLinear(float64(p.X), m.x.Min, m.x.Max, n, m.base)
	root := m.scale.Nearest(int(raw))
	return Mapping{
		Raw:       raw,
		Root:      root,
		RootIndex: m.scale.Index(root),
		Velocity:  MapLinear(float64(p.Y), m.y.Min, m.y.Max, 127, m.base),
		Depth:     MapLinear(float64(p.Z), m.z.Min, m.z.Max, n, m.base),
	}
}
