package wheel

// HoverDelta computes the signed number of section steps the pointer
// indicator travels from prevIndex to newIndex, taking the shorter way
// around the wheel. Three candidates are considered in order:
// forward-wrap, backward-wrap and direct; the first with the smallest
// magnitude wins, so the direct path is only taken when it is strictly
// shorter than both wrapped paths.
func HoverDelta(prevIndex, newIndex, sectionCount int) int {
	forward := sectionCount - prevIndex + newIndex
	backward := -(sectionCount + prevIndex - newIndex)
	direct := newIndex - prevIndex

	best := forward
	for _, candidate := range []int{backward, direct} {
		if abs(candidate) < abs(best) {
			best = candidate
		}
	}
	return best
}

// UpdateRotation accumulates the pointer rotation in degrees for a hover
// move of signedSteps sections. The result is deliberately not
// normalized to [0, 360): letting it grow keeps transition-style
// animation moving along the short arc instead of snapping back
// through zero.
func UpdateRotation(currentRotation float64, signedSteps, sectionCount int) float64 {
	return currentRotation + 360/float64(sectionCount)*float64(signedSteps)
}

// Tracker accumulates pointer indicator state across hover events
type Tracker struct {
	HoverIndex int     // last index the indicator targeted
	Rotation   float64 // accumulated indicator rotation, degrees
}

// Hover processes a newly hovered index against the current model and
// returns true when the indicator moved. Re-hovering the current index
// is a no-op, as is an index beyond the data range that is not the back
// section. The guard therefore skips blank filler slots on a
// fixed-capacity wheel even though clicks treat them as addressable
// targets; this mirrors the long-standing widget behavior and is
// pinned by a test.
func (t *Tracker) Hover(newIndex, dataLen, sectionCount int) bool {
	if newIndex == t.HoverIndex {
		return false
	}
	if newIndex > dataLen-1 && newIndex != sectionCount-1 {
		return false
	}

	steps := HoverDelta(t.HoverIndex, newIndex, sectionCount)
	t.Rotation = UpdateRotation(t.Rotation, steps, sectionCount)
	t.HoverIndex = newIndex
	return true
}

// Reset returns the indicator to its initial state. Called when the
// section count changes and the wheel geometry is rebuilt.
func (t *Tracker) Reset() {
	t.HoverIndex = 0
	t.Rotation = 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
