package app

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/philipparndt/piewheel/pkg/watcher"
	"github.com/philipparndt/piewheel/pkg/wheel"
)

// Options configures the demo application
type Options struct {
	SectionsFile string // JSON file with the section list
	SectionCount int    // fixed selectable slot count; 0 means dynamic sizing
	AutoLock     bool   // re-lock the wheel after every selection
	StartLocked  bool   // start with the wheel locked
	NoWatch      bool   // disable live reload of the sections file
}

// Run starts the demo application
func Run(opts Options) error {
	cfg := wheel.Config{Mode: wheel.Dynamic, AutoLock: opts.AutoLock}
	if opts.SectionCount > 0 {
		cfg = wheel.Config{Mode: wheel.Fixed, Sections: opts.SectionCount, AutoLock: opts.AutoLock}
	}

	w, err := wheel.NewWheel(cfg)
	if err != nil {
		return err
	}

	if err := loadSections(w, opts.SectionsFile); err != nil {
		return err
	}
	if opts.StartLocked {
		w.ToggleLock(true)
	}

	a := fyneapp.New()
	win := a.NewWindow("Pie Wheel")

	ui := buildUI(w)
	win.SetContent(ui.content)
	win.Resize(fyne.NewSize(520, 560))

	// Route keyboard input to the wheel window-wide; the renderer
	// releases the handlers again when the widget is torn down.
	w.AttachCanvas(win.Canvas())

	if !opts.NoWatch {
		fileWatcher, err := watcher.New(opts.SectionsFile, 200*time.Millisecond)
		if err != nil {
			fmt.Printf("Warning: failed to set up file watching: %v\n", err)
			fmt.Println("Live reload will not be available")
		} else {
			defer fileWatcher.Close()
			fileWatcher.Start(func(path string) {
				fyne.Do(func() {
					if err := loadSections(w, path); err != nil {
						fmt.Printf("Reload failed: %v\n", err)
						return
					}
					fmt.Printf("Reloaded sections from %s\n", path)
				})
			})
		}
	}

	win.ShowAndRun()
	return nil
}

// loadSections reads the JSON section list and applies it to the wheel
func loadSections(w *wheel.Wheel, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sections file: %w", err)
	}
	if err := w.SetSectionsJSON(data); err != nil {
		return fmt.Errorf("failed to apply sections from %s: %w", path, err)
	}
	return nil
}
