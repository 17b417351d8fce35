package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/piewheel/pkg/wheel"
)

type demoUI struct {
	content       fyne.CanvasObject
	selectedLabel *widget.Label
	lockCheck     *widget.Check
}

// buildUI assembles the demo window: the wheel in the center with a
// selection readout and a lock toggle underneath.
func buildUI(w *wheel.Wheel) *demoUI {
	ui := &demoUI{
		selectedLabel: widget.NewLabel("Selected: -"),
	}
	ui.selectedLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.lockCheck = widget.NewCheck("Locked", func(checked bool) {
		w.ToggleLock(checked)
	})
	ui.lockCheck.SetChecked(w.Locked())

	w.OnSelected = func(value any) {
		if value == wheel.BackValue {
			ui.selectedLabel.SetText("Selected: back")
		} else {
			ui.selectedLabel.SetText(fmt.Sprintf("Selected: %v", value))
		}
		ui.lockCheck.SetChecked(w.Locked())
		fmt.Printf("Selected value: %v\n", value)
	}

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click a section or press its shortcut key\n" +
			"• Tab cycles through sections, Enter selects\n" +
			"• Backspace picks the back section",
	)
	instructions.Wrapping = fyne.TextWrapWord

	controls := container.NewVBox(
		widget.NewSeparator(),
		ui.selectedLabel,
		ui.lockCheck,
		widget.NewSeparator(),
		instructions,
	)

	ui.content = container.NewBorder(
		nil, // top
		controls,
		nil, // left
		nil, // right
		w,
	)
	return ui
}
