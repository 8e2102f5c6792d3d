package gesture

import "testing"

func TestSmootherMeanOfLastK(t *testing.T) {
	s := NewSmoother(3)
	inputs := []Position{{3, 30, -3}, {6, 60, -6}, {9, 90, -9}, {12, 120, -12}, {-100, 1, 7}}

	for i, in := range inputs {
		s.Add(in.X, in.Y, in.Z)

		lo := max(0, i-2)
		var sx, sy, sz int
		for _, p := range inputs[lo : i+1] {
			sx += p.X
			sy += p.Y
			sz += p.Z
		}
		n := i + 1 - lo
		want := Position{sx / n, sy / n, sz / n}
		if got := s.Position(); got != want {
			t.Fatalf("after %d samples: expected %+v, got %+v", i+1, want, got)
		}
		if s.Len() != n {
			t.Fatalf("expected window length %d, got %d", n, s.Len())
		}
	}
}

func TestSmootherTruncatesTowardZero(t *testing.T) {
	s := NewSmoother(2)
	s.Add(-1, 1, -3)
	s.Add(-2, 2, 0)
	// -3/2 = -1, 3/2 = 1, -3/2 = -1
	if got, want := s.Position(), (Position{-1, 1, -1}); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSmootherEmptyAndReset(t *testing.T) {
	s := NewSmoother(0)
	if s.Size() != 1 {
		t.Fatalf("expected size clamped to 1, got %d", s.Size())
	}
	if got := s.Position(); got != (Position{}) {
		t.Fatalf("expected zero position when empty, got %+v", got)
	}
	s.Add(5, 5, 5)
	s.Add(7, 7, 7)
	if got := s.Position(); got != (Position{7, 7, 7}) {
		t.Fatalf("expected only the latest sample with size 1, got %+v", got)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("expected empty after Reset")
	}
}
