package wheel

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/piewheel/pkg/geometry"
)

// pulseDuration is how long a freshly selected section stays highlighted
const pulseDuration = 100 * time.Millisecond

// Wheel is an interactive radial selection widget. Sections are chosen
// by clicking, by pressing their shortcut key, or by tab-cycling to
// them and pressing enter. The final section is always an implicit
// back/cancel section reporting BackValue.
type Wheel struct {
	widget.BaseWidget

	cfg    Config
	style  Style
	model  *Model
	consts Constants

	tracker  Tracker
	resolver *Resolver

	// generation invalidates pending pulse timers across full rebuilds
	generation uint64
	pulseIndex int

	hovered bool
	focused bool

	keyboardCanvas fyne.Canvas
	prevTypedKey   func(*fyne.KeyEvent)
	prevTypedRune  func(rune)

	// OnSelected is invoked with the selected section's value, or
	// BackValue when the back section was chosen.
	OnSelected func(value any)
}

// NewWheel creates an empty wheel in the locked state. Sections must be
// supplied through SetSections before anything can be selected.
func NewWheel(cfg Config) (*Wheel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Wheel{
		cfg:        cfg,
		style:      DefaultStyle(),
		resolver:   NewResolver(cfg.AutoLock, true),
		pulseIndex: -1,
	}
	w.ExtendBaseWidget(w)
	return w, nil
}

// NewWheelWithSections creates a wheel pre-populated with sections and
// starts it unlocked.
func NewWheelWithSections(cfg Config, data []SectionData) (*Wheel, error) {
	w, err := NewWheel(cfg)
	if err != nil {
		return nil, err
	}
	if err := w.SetSections(data); err != nil {
		return nil, err
	}
	return w, nil
}

// SetSections validates and applies a new section list. The update is
// all-or-nothing: on error the previous list stays in effect. A
// successful update unlocks the wheel. Interaction state is reset only
// when the effective section count changes; a content-only update keeps
// the pointer indicator where it was.
func (w *Wheel) SetSections(data []SectionData) error {
	model, err := Normalize(data, w.cfg)
	if err != nil {
		return err
	}

	prevCount := 0
	if w.model != nil {
		prevCount = w.model.Count
	}

	w.model = model
	w.consts = DeriveConstants(model.Count)

	if needsFullRebuild(prevCount, model.Count) {
		w.tracker.Reset()
		w.resolver.ClearPulses()
		w.pulseIndex = -1
		w.generation++
	}

	w.resolver.SetLocked(false)
	w.Refresh()
	return nil
}

// SetSectionsJSON decodes a JSON section list and applies it via SetSections
func (w *Wheel) SetSectionsJSON(data []byte) error {
	sections, err := ParseSections(data)
	if err != nil {
		return err
	}
	return w.SetSections(sections)
}

// ToggleLock sets the lock state. While locked all selection-triggering
// input is ignored; hover tracking keeps working. Requesting the
// current state is a no-op.
func (w *Wheel) ToggleLock(locked bool) {
	if w.resolver.SetLocked(locked) {
		w.Refresh()
	}
}

// Locked reports the current lock state
func (w *Wheel) Locked() bool {
	return w.resolver.Locked()
}

// Model returns the current normalized section model, or nil before the
// first SetSections.
func (w *Wheel) Model() *Model {
	return w.model
}

// SetStyle replaces the wheel colors and refreshes
func (w *Wheel) SetStyle(style Style) {
	w.style = style
	w.Refresh()
}

// HoverIndex returns the section the pointer indicator currently targets
func (w *Wheel) HoverIndex() int {
	return w.tracker.HoverIndex
}

// PointerRotation returns the accumulated indicator rotation in degrees
func (w *Wheel) PointerRotation() float64 {
	return w.tracker.Rotation
}

// CreateRenderer creates the renderer for the widget
func (w *Wheel) CreateRenderer() fyne.WidgetRenderer {
	return newWheelRenderer(w)
}

// Tapped handles click selection. The clicked section is derived from
// the tap position in O(1); no element search is involved.
func (w *Wheel) Tapped(event *fyne.PointEvent) {
	index := w.indexAt(event.Position)
	if index < 0 {
		return
	}
	w.activate(index)
}

// MouseIn implements desktop.Hoverable
func (w *Wheel) MouseIn(event *desktop.MouseEvent) {
	w.hovered = true
	w.hoverAt(event.Position)
}

// MouseMoved implements desktop.Hoverable
func (w *Wheel) MouseMoved(event *desktop.MouseEvent) {
	w.hoverAt(event.Position)
}

// MouseOut implements desktop.Hoverable
func (w *Wheel) MouseOut() {
	w.hovered = false
	w.Refresh()
}

// FocusGained implements fyne.Focusable
func (w *Wheel) FocusGained() {
	w.focused = true
	w.Refresh()
}

// FocusLost implements fyne.Focusable
func (w *Wheel) FocusLost() {
	w.focused = false
	w.Refresh()
}

// TypedRune resolves shortcut keys typed while the wheel has focus
func (w *Wheel) TypedRune(r rune) {
	w.handleKey(string(r))
}

// TypedKey resolves the non-rune keys: Backspace always addresses the
// back section, Tab cycles the pointer through the selectable sections,
// and Return activates the hovered one.
func (w *Wheel) TypedKey(event *fyne.KeyEvent) {
	if w.model == nil {
		return
	}

	switch event.Name {
	case fyne.KeyBackspace:
		w.activate(w.model.BackIndex())
	case fyne.KeyTab:
		if w.resolver.Locked() {
			return
		}
		if next := w.nextSelectable(w.tracker.HoverIndex); next >= 0 {
			w.hoverIndex(next)
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		w.activate(w.tracker.HoverIndex)
	}
}

// AttachCanvas installs the wheel's global keyboard handlers on the
// given canvas, keeping whatever handlers were there before. Call
// Detach (or destroy the widget) to restore them; attach and release
// always pair up regardless of exit path.
func (w *Wheel) AttachCanvas(c fyne.Canvas) {
	if w.keyboardCanvas != nil {
		w.Detach()
	}

	w.keyboardCanvas = c
	w.prevTypedKey = c.OnTypedKey()
	w.prevTypedRune = c.OnTypedRune()

	c.SetOnTypedKey(func(event *fyne.KeyEvent) {
		w.TypedKey(event)
		if w.prevTypedKey != nil {
			w.prevTypedKey(event)
		}
	})
	c.SetOnTypedRune(func(r rune) {
		w.TypedRune(r)
		if w.prevTypedRune != nil {
			w.prevTypedRune(r)
		}
	})
}

// Detach restores the canvas keyboard handlers saved by AttachCanvas
func (w *Wheel) Detach() {
	if w.keyboardCanvas == nil {
		return
	}
	w.keyboardCanvas.SetOnTypedKey(w.prevTypedKey)
	w.keyboardCanvas.SetOnTypedRune(w.prevTypedRune)
	w.keyboardCanvas = nil
	w.prevTypedKey = nil
	w.prevTypedRune = nil
}

// handleKey resolves a single-character key press to a section
func (w *Wheel) handleKey(key string) {
	index := ResolveKey(w.model, key)
	if index < 0 {
		return
	}
	w.activate(index)
}

// activate runs a section through the resolver and emits the outcome.
// Nothing happens while locked, for blank slots, for keyless sections,
// or while the same section's pulse is still pending. The pulse check
// comes first so a suppressed re-activation commits no resolver side
// effects such as auto-lock.
func (w *Wheel) activate(index int) {
	if w.resolver.Pulsing(index) {
		return
	}
	outcome, ok := w.resolver.Resolve(w.model, index)
	if !ok {
		return
	}
	w.resolver.BeginPulse(index)

	w.pulseIndex = index
	w.Refresh()
	w.schedulePulseClear(index)

	if w.OnSelected != nil {
		w.OnSelected(outcome.Value)
	}
}

// schedulePulseClear clears the selected highlight after pulseDuration.
// The callback re-checks the rebuild generation first: a full rebuild
// in the meantime already dropped the pulsed element, and the stale
// timer must not touch the new tree.
func (w *Wheel) schedulePulseClear(index int) {
	generation := w.generation
	time.AfterFunc(pulseDuration, func() {
		fyne.Do(func() {
			if w.generation != generation {
				return
			}
			w.resolver.EndPulse(index)
			if w.pulseIndex == index {
				w.pulseIndex = -1
			}
			w.Refresh()
		})
	})
}

// hoverAt feeds a pointer position into the hover tracker
func (w *Wheel) hoverAt(pos fyne.Position) {
	index := w.indexAt(pos)
	if index < 0 {
		return
	}
	w.hoverIndex(index)
}

// hoverIndex moves the pointer indicator to the given section
func (w *Wheel) hoverIndex(index int) {
	if w.model == nil {
		return
	}
	if w.tracker.Hover(index, len(w.model.Sections), w.model.Count) {
		w.Refresh()
	}
}

// nextSelectable returns the next selectable index after from, wrapping
// around the wheel, or -1 when nothing is selectable.
func (w *Wheel) nextSelectable(from int) int {
	for step := 1; step <= w.model.Count; step++ {
		index := (from + step) % w.model.Count
		if w.model.IsSelectable(index) {
			return index
		}
	}
	return -1
}

// indexAt maps a widget position to a section index, or -1 when the
// position is outside the wheel or no sections are set. Stray positions
// are normal input noise, not errors.
func (w *Wheel) indexAt(pos fyne.Position) int {
	if w.model == nil {
		return -1
	}

	size := w.Size()
	radius := float64(min(size.Width, size.Height)) / 2
	if radius <= 0 {
		return -1
	}

	center := geometry.NewVector2(float64(size.Width)/2, float64(size.Height)/2)
	p := geometry.NewVector2(float64(pos.X), float64(pos.Y)).Sub(center).Mul(1 / radius)
	return geometry.SectionIndexAt(p, w.model.Count)
}
