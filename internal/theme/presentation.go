package theme

import (
	"maps"
	"strconv"
)

// Presentation holds the values a renderer derives from Settings.
type Presentation struct {
	Palette Palette `json:"palette"`
	// Background is a CSS background-image value, empty when the page uses
	// BackgroundClass instead.
	Background      string            `json:"background"`
	BackgroundClass string            `json:"background_class"`
	Variables       map[string]string `json:"variables"`
}

var gradientNames = []string{
	"sunset", "ocean", "forest", "midnight", "aurora", "fire", "purple",
	"pink", "neon", "tropical", "galaxy", "emerald", "crimson", "lavender",
}

var gradients = map[string]string{
	"sunset":   "linear-gradient(135deg, #ff9a9e 0%, #fecfef 50%, #fecfef 100%)",
	"ocean":    "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"forest":   "linear-gradient(135deg, #134e5e 0%, #71b280 100%)",
	"midnight": "linear-gradient(135deg, #2c3e50 0%, #3498db 100%)",
	"aurora":   "linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
	"fire":     "linear-gradient(135deg, #ff9a56 0%, #ff6b6b 100%)",
	"purple":   "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"pink":     "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
	"neon":     "linear-gradient(135deg, #00f5ff 0%, #ff00ff 50%, #ffff00 100%)",
	"tropical": "linear-gradient(135deg, #ff6b35 0%, #f7931e 50%, #ffe66d 100%)",
	"galaxy":   "linear-gradient(135deg, #1a1a2e 0%, #16213e 50%, #0f3460 100%)",
	"emerald":  "linear-gradient(135deg, #50c878 0%, #228b22 100%)",
	"crimson":  "linear-gradient(135deg, #dc143c 0%, #8b0000 100%)",
	"lavender": "linear-gradient(135deg, #e6e6fa 0%, #dda0dd 100%)",
}

// GradientCSS returns the CSS for a gradient token, or "" for "none" and
// unknown tokens.
func GradientCSS(name string) string {
	return gradients[name]
}

// BorderRadiusCSS maps a border radius token to a CSS length.
func BorderRadiusCSS(token string) string {
	switch token {
	case "rounded-none":
		return "0px"
	case "rounded-sm":
		return "0.125rem"
	case "rounded":
		return "0.25rem"
	default:
		return "0.5rem"
	}
}

// Resolve derives the full presentation of s.
func Resolve(s Settings) Presentation {
	p := Presentation{Variables: make(map[string]string, 16)}
	for _, apply := range presentationEffects {
		apply(s, &p)
	}
	return p
}

// Clone returns a copy of p that shares no state with it.
func (p Presentation) Clone() Presentation {
	p.Variables = maps.Clone(p.Variables)
	return p
}

func applyPalette(s Settings, p *Presentation) {
	p.Palette = PaletteFor(s.ColorTheme)
	p.Variables["--primary"] = p.Palette.Primary.String()
	p.Variables["--secondary"] = p.Palette.Secondary.String()
	p.Variables["--accent"] = p.Palette.Accent.String()
}

func applyBackground(s Settings, p *Presentation) {
	p.Background = ""
	p.BackgroundClass = ""
	switch {
	case s.BackgroundImage != "":
		p.Background = "url(" + strconv.Quote(s.BackgroundImage) + ")"
	case s.BackgroundGradient != "none" && GradientCSS(s.BackgroundGradient) != "":
		p.Background = GradientCSS(s.BackgroundGradient)
	case s.Gradient != "none" && GradientCSS(s.Gradient) != "":
		p.Background = GradientCSS(s.Gradient)
	default:
		p.BackgroundClass = s.BackgroundColor
	}
}

func applyPatternColor(s Settings, p *Presentation) {
	p.Variables["--pattern-color"] = s.PatternColor
}

func applyFontColors(s Settings, p *Presentation) {
	p.Variables["--font-color-display-name"] = s.FontColors.DisplayName
	p.Variables["--font-color-bio"] = s.FontColors.Bio
	p.Variables["--font-color-link-title"] = s.FontColors.LinkTitle
	p.Variables["--font-color-link-url"] = s.FontColors.LinkURL
}

func applyBorderRadius(s Settings, p *Presentation) {
	p.Variables["--card-border-radius"] = BorderRadiusCSS(s.BorderRadius)
}

func applyGlassmorphism(s Settings, p *Presentation) {
	p.Variables["--glassmorphism-opacity"] = num(s.Effects.GlassmorphismOpacity)
}

func applyBlur(s Settings, p *Presentation) {
	p.Variables["--blur-intensity"] = strconv.Itoa(s.Effects.BlurIntensity) + "px"
}

func applyAnimationSpeed(s Settings, p *Presentation) {
	p.Variables["--animation-speed"] = strconv.Itoa(s.Effects.AnimationSpeed) + "ms"
}

func applyCardOpacity(s Settings, p *Presentation) {
	p.Variables["--card-opacity"] = num(s.Effects.CardOpacity)
}

// presentationEffects is the full recompute, in a fixed order.
var presentationEffects = []Effect{
	applyPalette,
	applyBackground,
	applyPatternColor,
	applyFontColors,
	applyBorderRadius,
	applyGlassmorphism,
	applyBlur,
	applyAnimationSpeed,
	applyCardOpacity,
}

// fieldEffects lists the presentation values each field feeds.
var fieldEffects = map[Field][]Effect{
	FieldColorTheme:           {applyPalette},
	FieldGradient:             {applyBackground},
	FieldBackgroundColor:      {applyBackground},
	FieldBackgroundGradient:   {applyBackground},
	FieldBackgroundImage:      {applyBackground},
	FieldPatternColor:         {applyPatternColor},
	FieldFontColors:           {applyFontColors},
	FieldBorderRadius:         {applyBorderRadius},
	FieldGlassmorphismOpacity: {applyGlassmorphism},
	FieldBlurIntensity:        {applyBlur},
	FieldAnimationSpeed:       {applyAnimationSpeed},
	FieldCardOpacity:          {applyCardOpacity},
}
