package theme

import (
	"fmt"
	"strconv"
)

// HSL is a color in hue/saturation/lightness coordinates. Hue is in degrees,
// saturation and lightness are percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String renders the channel triple used by CSS custom properties,
// e.g. "347 77% 50%".
func (c HSL) String() string {
	return fmt.Sprintf("%s %s%% %s%%", num(c.H), num(c.S), num(c.L))
}

// Palette is the derived color triple of a color theme.
type Palette struct {
	Primary   HSL `json:"primary"`
	Secondary HSL `json:"secondary"`
	Accent    HSL `json:"accent"`
}

var palettes = map[string]Palette{
	"default": {Primary: HSL{0, 0, 9}, Secondary: HSL{0, 0, 96.1}, Accent: HSL{0, 0, 96.1}},
	"rose":    {Primary: HSL{347, 77, 50}, Secondary: HSL{355, 100, 97}, Accent: HSL{347, 77, 92}},
	"green":   {Primary: HSL{160, 84, 39}, Secondary: HSL{150, 100, 96}, Accent: HSL{160, 84, 92}},
	"purple":  {Primary: HSL{259, 94, 51}, Secondary: HSL{270, 100, 98}, Accent: HSL{259, 94, 93}},
	"orange":  {Primary: HSL{24, 94, 53}, Secondary: HSL{30, 100, 97}, Accent: HSL{24, 94, 93}},
	"blue":    {Primary: HSL{217, 91, 60}, Secondary: HSL{213, 100, 97}, Accent: HSL{217, 91, 93}},
	"teal":    {Primary: HSL{173, 80, 40}, Secondary: HSL{180, 100, 97}, Accent: HSL{173, 80, 93}},
	"pink":    {Primary: HSL{330, 81, 60}, Secondary: HSL{327, 100, 97}, Accent: HSL{330, 81, 93}},
}

// PaletteFor maps a color theme token to its palette. Unknown tokens get
// the default palette.
func PaletteFor(colorTheme string) Palette {
	if p, ok := palettes[colorTheme]; ok {
		return p
	}
	return palettes["default"]
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
