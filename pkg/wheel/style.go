package wheel

import "image/color"

// Style holds the wheel colors. The struct is passed by value; runtime
// restyling goes through Wheel.SetStyle rather than field mutation.
type Style struct {
	Rim       color.Color // wheel outline and section edges
	Label     color.Color // section text and shortcut keys
	Disabled  color.Color // blank sections and the locked wheel
	Indicator color.Color // pointer indicator
	Pulse     color.Color // transient selected highlight
}

// DefaultStyle returns the standard wheel colors
func DefaultStyle() Style {
	return Style{
		Rim:       color.RGBA{R: 120, G: 130, B: 145, A: 255},
		Label:     color.RGBA{R: 230, G: 233, B: 238, A: 255},
		Disabled:  color.RGBA{R: 70, G: 75, B: 85, A: 255},
		Indicator: color.RGBA{R: 255, G: 196, B: 0, A: 255},
		Pulse:     color.RGBA{R: 110, G: 200, B: 120, A: 255},
	}
}
