package ui

// The functions below return the escape code of the active theme, or the
// empty string when colors are disabled.

func ColorReset() string { return GetCurrentTheme().Reset }
func ColorBold() string { return GetCurrentTheme().Bold }
func ColorPrimary() string { return GetCurrentTheme().Primary }
func ColorSecondary() string { return GetCurrentTheme().Secondary }
func ColorGreen() string { return GetCurrentTheme().Success }
func ColorYellow() string { return GetCurrentTheme().Warning }
func ColorRed() string { return GetCurrentTheme().Error }
func ColorMagenta() string { return GetCurrentTheme().Info }

// Colorize wraps s in the given color and a reset. It returns s unchanged
// when color is empty.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
