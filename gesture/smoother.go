package gesture

// Position is a smoothed hand position in tracker units.
type Position struct {
	X, Y, Z int
}

// Smoother is a moving average over the last K integer samples.
type Smoother struct {
	window []Position
	size   int
}

// NewSmoother creates a smoother holding at most size samples (minimum 1).
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{
		window: make([]Position, 0, size),
		size:   size,
	}
}

// Add appends a sample, evicting the oldest once the window is full.
func (s *Smoother) Add(x, y, z int) {
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, Position{x, y, z})
}

// Position returns the mean of the held samples, truncated toward zero.
func (s *Smoother) Position() Position {
	n := len(s.window)
	if n == 0 {
		return Position{}
	}
	var sx, sy, sz int
	for _, p := range s.window {
		sx += p.X
		sy += p.Y
		sz += p.Z
	}
	return Position{sx / n, sy / n, sz / n}
}

func (s *Smoother) Len() int  { return len(s.window) }
func (s *Smoother) Size() int { return s.size }

func (s *Smoother) Reset() {
	s.window = s.window[:0]
}
