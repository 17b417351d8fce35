package wheel

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/philipparndt/piewheel/pkg/geometry"
)

func testWheel(t *testing.T, cfg Config, data []SectionData) (*Wheel, fyne.Window) {
	t.Helper()
	test.NewApp()

	w, err := NewWheelWithSections(cfg, data)
	if err != nil {
		t.Fatalf("NewWheelWithSections failed: %v", err)
	}

	win := test.NewWindow(w)
	win.Resize(fyne.NewSize(240, 240))
	t.Cleanup(win.Close)
	return w, win
}

// sectionPos returns a tap position in the middle of the given section
func sectionPos(t *testing.T, w *Wheel, index int) fyne.Position {
	t.Helper()

	size := w.Size()
	radius := float64(min(size.Width, size.Height)) / 2
	mid, err := geometry.SectionMidpoint(index, w.model.Count)
	if err != nil {
		t.Fatalf("SectionMidpoint failed: %v", err)
	}
	p := mid.Dir.Mul(0.5 * radius)
	return fyne.NewPos(float32(float64(size.Width)/2+p.X), float32(float64(size.Height)/2+p.Y))
}

func waitForPulse() {
	time.Sleep(pulseDuration + 50*time.Millisecond)
}

func TestNewWheelRejectsBadConfig(t *testing.T) {
	if _, err := NewWheel(Config{Mode: Fixed}); err == nil {
		t.Error("NewWheel accepted a fixed mode config without capacity")
	}
}

func TestNewWheelStartsLocked(t *testing.T) {
	test.NewApp()

	w, err := NewWheel(Config{Mode: Dynamic})
	if err != nil {
		t.Fatalf("NewWheel failed: %v", err)
	}
	if !w.Locked() {
		t.Error("empty wheel did not start locked")
	}
}

func TestSetSectionsUnlocks(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))
	if w.Locked() {
		t.Error("wheel stayed locked after sections were supplied")
	}
}

func TestSetSectionsRejectsBadDataWholesale(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	bad := sampleData(3)
	bad[2].Text = ""
	if err := w.SetSections(bad); err == nil {
		t.Fatal("SetSections accepted a malformed list")
	}

	// The previous list must remain fully in effect.
	if len(w.Model().Sections) != 3 || w.Model().Sections[2].Text != "C" {
		t.Error("failed update partially applied")
	}
}

func TestContentOnlyUpdatePreservesPointer(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	w.hoverIndex(2)
	if w.HoverIndex() != 2 {
		t.Fatalf("hover setup failed: got %d", w.HoverIndex())
	}
	rotation := w.PointerRotation()

	// Same count, different labels: geometry is unchanged, so the
	// pointer indicator must stay where it is.
	replacement := sampleData(3)
	replacement[0].Text = "Renamed"
	if err := w.SetSections(replacement); err != nil {
		t.Fatalf("SetSections failed: %v", err)
	}

	if w.HoverIndex() != 2 || w.PointerRotation() != rotation {
		t.Errorf("content-only update reset interaction state: index %d rotation %v",
			w.HoverIndex(), w.PointerRotation())
	}
}

func TestCountChangeResetsPointer(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	w.hoverIndex(2)
	if err := w.SetSections(sampleData(5)); err != nil {
		t.Fatalf("SetSections failed: %v", err)
	}

	if w.HoverIndex() != 0 || w.PointerRotation() != 0 {
		t.Errorf("count change did not reset interaction state: index %d rotation %v",
			w.HoverIndex(), w.PointerRotation())
	}
}

func TestTapSelectsSection(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	test.TapAt(w, sectionPos(t, w, 1))
	waitForPulse()

	if len(selected) != 1 || selected[0] != 1 {
		t.Errorf("tap selection failed: got %v", selected)
	}
}

func TestTapBackSectionEmitsSentinel(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	test.TapAt(w, sectionPos(t, w, w.Model().BackIndex()))
	waitForPulse()

	if len(selected) != 1 || selected[0] != BackValue {
		t.Errorf("back selection failed: got %v", selected)
	}
}

func TestTapIgnoredWhileLocked(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))
	w.ToggleLock(true)

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	test.TapAt(w, sectionPos(t, w, 1))

	if len(selected) != 0 {
		t.Errorf("locked wheel emitted a selection: %v", selected)
	}
}

func TestTapBlankSlotIgnored(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Fixed, Sections: 10}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	test.TapAt(w, sectionPos(t, w, 5))

	if len(selected) != 0 {
		t.Errorf("blank slot emitted a selection: %v", selected)
	}
}

func TestTypedRuneSelectsByKey(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	w.TypedRune('2')
	waitForPulse()

	if len(selected) != 1 || selected[0] != 1 {
		t.Errorf("key selection failed: got %v", selected)
	}
}

func TestTypedRuneEmptyKeyNeverMatches(t *testing.T) {
	data := sampleData(3)
	data[1].Key = strPtr("")
	w, _ := testWheel(t, Config{Mode: Dynamic}, data)

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	for _, r := range "abcxyz 2" {
		w.TypedRune(r)
	}
	waitForPulse()

	for _, value := range selected {
		if value == 1 {
			t.Error("keyless section was selected via keyboard")
		}
	}
}

func TestTypedKeyBackspace(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Fixed, Sections: 10}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	w.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	waitForPulse()

	if len(selected) != 1 || selected[0] != BackValue {
		t.Errorf("Backspace selection failed: got %v", selected)
	}
}

func TestTabSkipsBlankAndKeylessSections(t *testing.T) {
	data := sampleData(3)
	data[1].Key = strPtr("")
	w, _ := testWheel(t, Config{Mode: Fixed, Sections: 5}, data)

	// Selectable indices: 0, 2 and the back section 5.
	expected := []int{2, 5, 0, 2}
	for _, want := range expected {
		w.TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
		if w.HoverIndex() != want {
			t.Fatalf("tab cycle failed: expected %d, got %d", want, w.HoverIndex())
		}
	}
}

func TestEnterActivatesHoveredSection(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	w.hoverIndex(2)
	w.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	waitForPulse()

	if len(selected) != 1 || selected[0] != 2 {
		t.Errorf("enter activation failed: got %v", selected)
	}
}

func TestAutoLockWheel(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic, AutoLock: true}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	test.TapAt(w, sectionPos(t, w, 0))
	test.TapAt(w, sectionPos(t, w, 1))
	waitForPulse()

	if len(selected) != 1 {
		t.Errorf("auto-lock failed: expected 1 selection, got %v", selected)
	}
	if !w.Locked() {
		t.Error("wheel not locked after auto-lock selection")
	}
}

func TestAttachCanvasRoutesKeysAndDetachRestores(t *testing.T) {
	w, win := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	prior := 0
	win.Canvas().SetOnTypedRune(func(r rune) { prior++ })

	w.AttachCanvas(win.Canvas())

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	win.Canvas().OnTypedRune()('1')
	waitForPulse()

	if len(selected) != 1 || selected[0] != 0 {
		t.Errorf("global key routing failed: got %v", selected)
	}
	if prior != 1 {
		t.Errorf("prior handler not chained: called %d times", prior)
	}

	w.Detach()
	win.Canvas().OnTypedRune()('1')
	waitForPulse()

	if len(selected) != 1 {
		t.Errorf("detached wheel still received keys: got %v", selected)
	}
	if prior != 2 {
		t.Errorf("prior handler not restored: called %d times", prior)
	}
}

func TestRebuildInvalidatesPendingPulseTimer(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	// Select, then swap in a list with a different count while the pulse
	// timer is still pending. The rebuild drops the old element tree; the
	// stale timer must not touch the new one.
	w.TypedRune('2')
	if err := w.SetSections(sampleData(5)); err != nil {
		t.Fatalf("SetSections failed: %v", err)
	}

	// Re-select the same index on the new wheel before the stale timer
	// fires, then wait until it has fired but the fresh one has not.
	time.Sleep(pulseDuration / 2)
	w.TypedRune('2')
	time.Sleep(pulseDuration*7/10 + 20*time.Millisecond)

	if w.pulseIndex != 1 {
		t.Errorf("stale timer cleared the new pulse: pulseIndex %d", w.pulseIndex)
	}
	if !w.resolver.Pulsing(1) {
		t.Error("stale timer ended the new pulse")
	}

	waitForPulse()
	if w.pulseIndex != -1 {
		t.Errorf("fresh timer did not clear the pulse: pulseIndex %d", w.pulseIndex)
	}
}

func TestStillPulsingSectionDoesNotRelockWheel(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic, AutoLock: true}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	// First selection auto-locks; the host unlocks again right away. A
	// repeat press inside the pulse window is suppressed entirely and
	// must not re-engage the auto-lock.
	w.TypedRune('1')
	w.ToggleLock(false)
	w.TypedRune('1')

	if w.Locked() {
		t.Error("suppressed re-activation re-locked the wheel")
	}
	if len(selected) != 1 {
		t.Errorf("suppressed re-activation emitted: got %v", selected)
	}
	waitForPulse()
}

func TestPulseGuardSuppressesRapidReselect(t *testing.T) {
	w, _ := testWheel(t, Config{Mode: Dynamic}, sampleData(3))

	var selected []any
	w.OnSelected = func(value any) { selected = append(selected, value) }

	// Two activations of the same section inside the pulse window: the
	// second is suppressed. A different section is independent.
	w.TypedRune('1')
	w.TypedRune('1')
	w.TypedRune('2')
	waitForPulse()

	if len(selected) != 2 {
		t.Errorf("pulse guard failed: expected 2 selections, got %v", selected)
	}
}
