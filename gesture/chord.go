package gesture

// ChordOffsets are the scale steps stacked on the root, in send order.
var ChordOffsets = []int{6, 0, 2, 4}

// BuildChord picks the scale degrees at ChordOffsets from rootIndex. Indexes
// past either end of the scale clamp to it; duplicates that result are dropped.
func BuildChord(rootIndex int, scale Scale) []uint8 {
	if len(scale) == 0 {
		return nil
	}
	chord := make([]uint8, 0, len(ChordOffsets))
	seen := make(map[uint8]bool, len(ChordOffsets))
	for _, off := range ChordOffsets {
		i := rootIndex + off
		if i >= len(scale) {
			i = len(scale) - 1
		}
		if i < 0 {
			i = 0
		}
		p := scale[i]
		if seen[p] {
			continue
		}
		seen[p] = true
		chord = append(chord, p)
	}
	return chord
}
