package wheel

// KeyBack is the key name that always resolves to the back section
const KeyBack = "Backspace"

// Outcome is the result of a resolved selection
type Outcome struct {
	Value any // BackValue for the back/cancel section
}

// Resolver is the selection state machine. It owns the lock gate and the
// per-section pulse guard and is independent of any rendering surface or
// event source, so the full decision logic is testable on its own.
type Resolver struct {
	locked   bool
	autoLock bool
	pulsing  map[int]bool
}

// NewResolver creates a resolver in the given initial lock state
func NewResolver(autoLock, startLocked bool) *Resolver {
	return &Resolver{
		locked:   startLocked,
		autoLock: autoLock,
		pulsing:  make(map[int]bool),
	}
}

// Locked reports whether selection-triggering input is currently gated off
func (r *Resolver) Locked() bool {
	return r.locked
}

// SetLocked transitions the lock state and reports whether it changed.
// Lock requests are honored in either state.
func (r *Resolver) SetLocked(locked bool) bool {
	if r.locked == locked {
		return false
	}
	r.locked = locked
	return true
}

// Resolve maps a section index to a selection outcome. It returns false
// while locked, for blank filler slots, and for sections whose shortcut
// key is explicitly empty; those are silently ignored rather than
// treated as errors. A successful resolution re-locks the wheel when
// auto-lock is configured.
func (r *Resolver) Resolve(m *Model, index int) (Outcome, bool) {
	if r.locked || m == nil {
		return Outcome{}, false
	}

	var outcome Outcome
	switch {
	case index == m.BackIndex():
		outcome = Outcome{Value: BackValue}
	case !m.IsSelectable(index):
		return Outcome{}, false
	default:
		outcome = Outcome{Value: m.Sections[index].Value}
	}

	if r.autoLock {
		r.locked = true
	}
	return outcome, true
}

// ResolveKey maps a pressed key to a section index, or -1 when the key
// is bound to nothing. Backspace always addresses the back section;
// any other key is matched against the section shortcuts, first match
// winning.
func ResolveKey(m *Model, key string) int {
	if m == nil {
		return -1
	}
	if key == KeyBack {
		return m.BackIndex()
	}
	return m.IndexForKey(key)
}

// Pulsing reports whether a section's selected pulse is still pending
func (r *Resolver) Pulsing(index int) bool {
	return r.pulsing[index]
}

// BeginPulse marks a section's selected pulse as pending. It returns
// false when that section is already pulsing, guarding the selection
// handler against re-entry for the same section; distinct sections
// pulse independently.
func (r *Resolver) BeginPulse(index int) bool {
	if r.pulsing[index] {
		return false
	}
	r.pulsing[index] = true
	return true
}

// EndPulse clears a pending pulse
func (r *Resolver) EndPulse(index int) {
	delete(r.pulsing, index)
}

// ClearPulses drops all pending pulses. Called when the wheel geometry
// is rebuilt and the pulsed elements no longer exist.
func (r *Resolver) ClearPulses() {
	r.pulsing = make(map[int]bool)
}
