package core

// Color represents a palette entry for a pixel or screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBlack
)

// Theme is the small color set a host forwards to a mounted game.
type Theme struct {
	Name       string
	Background Color
	Foreground Color
	Border     Color
	Muted      Color
}

var themes = map[string]Theme{
	"dark":  {Name: "dark", Background: ColorBlack, Foreground: ColorBrightWhite, Border: ColorGray, Muted: ColorGray},
	"light": {Name: "light", Background: ColorBrightWhite, Foreground: ColorBlack, Border: ColorGray, Muted: ColorBlue},
	"amber": {Name: "amber", Background: ColorBlack, Foreground: ColorOrange, Border: ColorYellow, Muted: ColorGray},
	"green": {Name: "green", Background: ColorBlack, Foreground: ColorBrightGreen, Border: ColorGreen, Muted: ColorGray},
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return themes["dark"]
}

// LookupTheme returns the named theme, or false if it does not exist.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the built-in themes in a stable order.
func ThemeNames() []string {
	return []string{"dark", "light", "amber", "green"}
}

// OrDefault returns t, or the default theme when t is the zero value.
func (t Theme) OrDefault() Theme {
	if t == (Theme{}) {
		return DefaultTheme()
	}
	return t
}
