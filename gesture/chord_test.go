package gesture

import (
	"slices"
	"testing"
)

func TestBuildChordOrder(t *testing.T) {
	s := minorScale(t)
	got := BuildChord(0, s)
	want := []uint8{s[6], s[0], s[2], s[4]}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildChordClampsAtTop(t *testing.T) {
	s := minorScale(t)
	last := len(s) - 1

	got := BuildChord(last-3, s)
	want := []uint8{s[last], s[last-3], s[last-1]}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = BuildChord(last, s)
	if !slices.Equal(got, []uint8{s[last]}) {
		t.Fatalf("expected single clamped pitch, got %v", got)
	}
}

func TestBuildChordEmptyScale(t *testing.T) {
	if got := BuildChord(0, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
