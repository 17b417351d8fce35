package geometry

import (
	"fmt"
	"math"
)

// Placement radii in wheel space. The arc corners sit just inside the
// unit circle so neighbouring sections keep a visible border gap.
const (
	ArcRadius          = 0.99
	IconRadius         = 0.65
	ContentLabelOffset = 0.18
	BackArrowRadius    = 0.83
	BackArrowHalfSize  = 0.08
)

// Arc describes the angular bounds of one wheel section together with
// the unit-circle corner points of its two radial edges.
type Arc struct {
	StartAngle float64 // radians
	EndAngle   float64 // radians
	Start      Vector2 // corner point at StartAngle, scaled by ArcRadius
	End        Vector2 // corner point at EndAngle, scaled by ArcRadius
}

// Span returns the angular width of the arc in radians
func (a Arc) Span() float64 {
	return a.EndAngle - a.StartAngle
}

// Midpoint describes the bisector of a section: the angle halfway
// between its edges and the unit direction vector pointing along it.
// Consumers scale Dir by their own placement radius.
type Midpoint struct {
	Angle float64
	Dir   Vector2
}

// AngleStep returns the angular width of one section for the given count
func AngleStep(sectionCount int) float64 {
	return 2 * math.Pi / float64(sectionCount)
}

// AngleOffset returns the rotation applied to section 0 so the wheel
// starts at the left edge and the first section points up visually.
func AngleOffset(sectionCount int) float64 {
	return math.Pi + AngleStep(sectionCount)/2
}

// SectionArc computes the angular bounds and edge corner points for the
// section at the given index. Index must be in [0, sectionCount).
func SectionArc(index, sectionCount int) (Arc, error) {
	if index < 0 || index >= sectionCount {
		return Arc{}, fmt.Errorf("section index %d out of range [0, %d)", index, sectionCount)
	}

	step := AngleStep(sectionCount)
	start := float64(index)*step + AngleOffset(sectionCount)
	end := start + step

	return Arc{
		StartAngle: start,
		EndAngle:   end,
		Start:      UnitAt(start).Mul(ArcRadius),
		End:        UnitAt(end).Mul(ArcRadius),
	}, nil
}

// SectionMidpoint computes the bisector angle and unit direction for the
// section at the given index. Index must be in [0, sectionCount).
func SectionMidpoint(index, sectionCount int) (Midpoint, error) {
	arc, err := SectionArc(index, sectionCount)
	if err != nil {
		return Midpoint{}, err
	}

	angle := arc.StartAngle + arc.Span()/2
	return Midpoint{
		Angle: angle,
		Dir:   UnitAt(angle),
	}, nil
}

// BackArrow computes the three corner points of the small triangular
// glyph drawn on the back section. The triangle is centered at
// BackArrowRadius along the section midpoint and points toward the
// wheel center; it depends only on the midpoint direction.
func BackArrow(mid Midpoint) [3]Vector2 {
	center := mid.Dir.Mul(BackArrowRadius)

	// Tip toward the wheel center, base spread perpendicular to the
	// midpoint direction.
	tip := center.Sub(mid.Dir.Mul(BackArrowHalfSize))
	perp := NewVector2(-mid.Dir.Y, mid.Dir.X).Mul(BackArrowHalfSize)
	base := center.Add(mid.Dir.Mul(BackArrowHalfSize))

	return [3]Vector2{
		tip,
		base.Add(perp),
		base.Sub(perp),
	}
}

// SectionIndexAt maps a point in wheel space to the index of the section
// containing it. Returns -1 if the point lies outside the wheel.
func SectionIndexAt(p Vector2, sectionCount int) int {
	if sectionCount <= 0 || p.Length() > 1 {
		return -1
	}

	step := AngleStep(sectionCount)
	rel := p.Angle() - AngleOffset(sectionCount)
	rel = math.Mod(rel, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}

	index := int(rel / step)
	if index >= sectionCount {
		index = sectionCount - 1
	}
	return index
}
