package wheel

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/philipparndt/piewheel/pkg/geometry"
)

// needsFullRebuild decides the reconciliation scope for a section
// update: a changed count invalidates the whole element tree, an equal
// count only needs the per-section content refreshed.
func needsFullRebuild(prevCount, newCount int) bool {
	return prevCount != newCount
}

// sectionElements are the canvas objects bound to one section slot.
// They are created once per geometry rebuild and reused for
// content-only updates.
type sectionElements struct {
	edge  *canvas.Line // radial edge at the section's start angle
	key   *canvas.Text
	label *canvas.Text
	icon  *canvas.Image
}

// wheelRenderer implements fyne.WidgetRenderer
type wheelRenderer struct {
	wheel      *Wheel
	builtCount int // section count the element tree was built for

	rim       *canvas.Circle
	indicator *canvas.Line
	arrow     [3]*canvas.Line
	sections  []*sectionElements
	objects   []fyne.CanvasObject
}

func newWheelRenderer(w *Wheel) *wheelRenderer {
	r := &wheelRenderer{
		wheel: w,
		rim:   &canvas.Circle{StrokeWidth: 2},
	}
	r.rim.FillColor = color.Transparent
	r.indicator = canvas.NewLine(w.style.Indicator)
	r.indicator.StrokeWidth = 3
	r.Refresh()
	return r
}

func (r *wheelRenderer) Layout(size fyne.Size) {
	radius := float64(min(size.Width, size.Height)) / 2
	center := geometry.NewVector2(float64(size.Width)/2, float64(size.Height)/2)

	r.rim.Resize(fyne.NewSize(float32(2*radius), float32(2*radius)))
	r.rim.Move(fyne.NewPos(float32(center.X-radius), float32(center.Y-radius)))

	m := r.wheel.model
	if m == nil {
		r.indicator.Hide()
		return
	}

	for i, elements := range r.sections {
		arc, err := geometry.SectionArc(i, m.Count)
		if err != nil {
			continue
		}
		mid, err := geometry.SectionMidpoint(i, m.Count)
		if err != nil {
			continue
		}

		elements.edge.Position1 = toScreen(geometry.Vector2{}, center, radius)
		elements.edge.Position2 = toScreen(arc.Start, center, radius)

		moveCentered(elements.key, toScreen(mid.Dir.Mul(r.wheel.consts.LabelRadius), center, radius))

		// Icon sits at the icon radius, the content label a fixed
		// vertical bias below it. Without an icon the label takes the
		// icon spot.
		iconSize := float32(radius * 0.22)
		anchor := mid.Dir.Mul(geometry.IconRadius)
		if elements.icon.File != "" {
			iconCenter := toScreen(anchor.Sub(geometry.NewVector2(0, geometry.ContentLabelOffset/2)), center, radius)
			elements.icon.Resize(fyne.NewSize(iconSize, iconSize))
			elements.icon.Move(fyne.NewPos(iconCenter.X-iconSize/2, iconCenter.Y-iconSize/2))
			moveCentered(elements.label, toScreen(anchor.Add(geometry.NewVector2(0, geometry.ContentLabelOffset/2)), center, radius))
		} else {
			moveCentered(elements.label, toScreen(anchor, center, radius))
		}
	}

	// Back arrow glyph on the final section
	if mid, err := geometry.SectionMidpoint(m.BackIndex(), m.Count); err == nil {
		points := geometry.BackArrow(mid)
		for i, line := range r.arrow {
			if line == nil {
				continue
			}
			line.Position1 = toScreen(points[i], center, radius)
			line.Position2 = toScreen(points[(i+1)%3], center, radius)
		}
	}

	r.layoutIndicator(center, radius)
}

// layoutIndicator places the pointer indicator at its accumulated
// rotation, measured from the midpoint of section 0.
func (r *wheelRenderer) layoutIndicator(center geometry.Vector2, radius float64) {
	c := r.wheel.consts
	angle := c.AngleOffset + c.AngleStep/2 + r.wheel.tracker.Rotation*math.Pi/180
	dir := geometry.UnitAt(angle)

	r.indicator.Position1 = toScreen(dir.Mul(0.86), center, radius)
	r.indicator.Position2 = toScreen(dir.Mul(geometry.ArcRadius), center, radius)
	r.indicator.Show()
}

func (r *wheelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *wheelRenderer) Refresh() {
	m := r.wheel.model
	if m == nil {
		r.rim.StrokeColor = r.wheel.style.Disabled
		r.indicator.Hide()
		r.objects = []fyne.CanvasObject{r.rim, r.indicator}
		canvas.Refresh(r.wheel)
		return
	}

	if needsFullRebuild(r.builtCount, m.Count) {
		r.rebuild(m)
	}
	r.updateContent(m)

	r.Layout(r.wheel.Size())
	canvas.Refresh(r.wheel)
}

// rebuild discards the previous element tree and creates fresh objects
// for every section slot of the new geometry.
func (r *wheelRenderer) rebuild(m *Model) {
	style := r.wheel.style

	r.sections = make([]*sectionElements, m.Count)
	for i := range r.sections {
		elements := &sectionElements{
			edge:  canvas.NewLine(style.Rim),
			key:   canvas.NewText("", style.Label),
			label: canvas.NewText("", style.Label),
			icon:  &canvas.Image{FillMode: canvas.ImageFillContain},
		}
		elements.key.TextStyle = fyne.TextStyle{Bold: true}
		elements.key.Alignment = fyne.TextAlignCenter
		elements.label.Alignment = fyne.TextAlignCenter
		r.sections[i] = elements
	}

	for i := range r.arrow {
		r.arrow[i] = canvas.NewLine(style.Label)
		r.arrow[i].StrokeWidth = 2
	}

	r.objects = make([]fyne.CanvasObject, 0, 4*m.Count+6)
	r.objects = append(r.objects, r.rim)
	for _, elements := range r.sections {
		r.objects = append(r.objects, elements.edge, elements.icon, elements.label, elements.key)
	}
	for _, line := range r.arrow {
		r.objects = append(r.objects, line)
	}
	r.objects = append(r.objects, r.indicator)

	r.builtCount = m.Count
}

// updateContent re-evaluates every slot's label, key, icon and blank or
// highlighted state against the current model without touching geometry.
func (r *wheelRenderer) updateContent(m *Model) {
	style := r.wheel.style
	locked := r.wheel.resolver.Locked()

	r.rim.StrokeColor = style.Rim
	if locked {
		r.rim.StrokeColor = style.Disabled
	}

	for i, elements := range r.sections {
		blank := m.IsBlank(i)

		text, key, icon := "", "", ""
		if i < len(m.Sections) {
			text = m.Sections[i].Text
			key = m.Sections[i].Key
			icon = m.Sections[i].Image
		}
		elements.label.Text = text
		elements.key.Text = key
		elements.icon.File = icon
		elements.icon.Hidden = icon == ""

		lineColor := style.Rim
		textColor := style.Label
		if blank || locked {
			lineColor = style.Disabled
		}
		if blank {
			textColor = style.Disabled
		}
		switch {
		case i == r.wheel.pulseIndex:
			lineColor = style.Pulse
			textColor = style.Pulse
		case r.wheel.hovered && i == r.wheel.tracker.HoverIndex && !locked:
			lineColor = style.Indicator
		}

		elements.edge.StrokeColor = lineColor
		elements.label.Color = textColor
		elements.key.Color = textColor
		elements.label.Refresh()
		elements.key.Refresh()
		elements.icon.Refresh()
	}

	arrowColor := style.Label
	if locked {
		arrowColor = style.Disabled
	}
	if m.BackIndex() == r.wheel.pulseIndex {
		arrowColor = style.Pulse
	}
	for _, line := range r.arrow {
		line.StrokeColor = arrowColor
	}

	r.indicator.StrokeColor = style.Indicator
	if locked {
		r.indicator.StrokeColor = style.Disabled
	}
}

func (r *wheelRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy releases the widget's global keyboard handlers. This is the
// guaranteed teardown path, so an attached canvas never keeps handlers
// referencing a destroyed wheel.
func (r *wheelRenderer) Destroy() {
	r.wheel.Detach()
}

// toScreen maps a wheel-space vector to widget coordinates
func toScreen(v geometry.Vector2, center geometry.Vector2, radius float64) fyne.Position {
	return fyne.NewPos(float32(center.X+v.X*radius), float32(center.Y+v.Y*radius))
}

// moveCentered positions a text so its center sits at the given point
func moveCentered(text *canvas.Text, pos fyne.Position) {
	size := text.MinSize()
	text.Move(fyne.NewPos(pos.X-size.Width/2, pos.Y-size.Height/2))
}
