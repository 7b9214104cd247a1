// Package theme holds the visual settings of a public page: the compiled-in
// defaults, the typed merge of partial records against those defaults, the
// derived presentation values and the per-session editing state.
package theme

import "math"

// FontColors are the four named font color slots of a page.
type FontColors struct {
	DisplayName string `json:"display_name" gorm:"size:32"`
	Bio         string `json:"bio" gorm:"size:32"`
	LinkTitle   string `json:"link_title" gorm:"size:32"`
	LinkURL     string `json:"link_url" gorm:"size:32"`
}

// Effects are the card effects of a page.
type Effects struct {
	Shadow               bool    `json:"shadow"`
	Glassmorphism        bool    `json:"glassmorphism"`
	GlassmorphismOpacity float64 `json:"glassmorphism_opacity"`
	CardOpacity          float64 `json:"card_opacity"`
	AnimationSpeed       int     `json:"animation_speed"`
	BlurGlass            bool    `json:"blur_glass"`
	BlurIntensity        int     `json:"blur_intensity"`
}

// Settings is the fully resolved theme of a page. It has value semantics:
// copying a Settings never shares nested state.
type Settings struct {
	ColorTheme         string     `json:"color_theme" gorm:"size:64"`
	Gradient           string     `json:"gradient" gorm:"size:64"`
	Pattern            string     `json:"pattern" gorm:"size:64"`
	PatternColor       string     `json:"pattern_color" gorm:"size:32"`
	Font               string     `json:"font" gorm:"size:64"`
	FontColors         FontColors `json:"font_colors" gorm:"embedded;embeddedPrefix:font_color_"`
	ButtonStyle        string     `json:"button_style" gorm:"size:64"`
	BorderRadius       string     `json:"border_radius" gorm:"size:64"`
	BackgroundColor    string     `json:"background_color" gorm:"size:64"`
	BackgroundGradient string     `json:"background_gradient" gorm:"size:64"`
	BackgroundImage    string     `json:"background_image" gorm:"type:text"`
	Effects            Effects    `json:"effects" gorm:"embedded;embeddedPrefix:effect_"`
}

// floatRange is the domain of a fractional setting.
type floatRange struct {
	def, min, max, step float64
}

func (r floatRange) clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return r.def
	}
	v = math.Max(r.min, math.Min(r.max, v))
	v = r.min + math.Round((v-r.min)/r.step)*r.step
	if v > r.max {
		v = r.max
	}
	// strip float noise left by the step arithmetic
	return math.Round(v*1e6) / 1e6
}

// intRange is the domain of an integral setting.
type intRange struct {
	def, min, max, step int
}

func (r intRange) clamp(v int) int {
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	v = r.min + (v-r.min+r.step/2)/r.step*r.step
	if v > r.max {
		v = r.max
	}
	return v
}

var (
	glassmorphismOpacityRange = floatRange{def: 0.1, min: 0.05, max: 1.0, step: 0.05}
	cardOpacityRange          = floatRange{def: 1, min: 0.1, max: 1.0, step: 0.1}
	animationSpeedRange       = intRange{def: 400, min: 100, max: 1000, step: 50}
	blurIntensityRange        = intRange{def: 10, min: 5, max: 50, step: 5}
)

// Defaults returns a fresh copy of the compiled-in theme.
func Defaults() Settings {
	return Settings{
		ColorTheme:   "default",
		Gradient:     "none",
		Pattern:      "none",
		PatternColor: "#000000",
		Font:         "font-sans",
		FontColors: FontColors{
			DisplayName: "#000000",
			Bio:         "#6b7280",
			LinkTitle:   "#000000",
			LinkURL:     "#6b7280",
		},
		ButtonStyle:        "default",
		BorderRadius:       "rounded-lg",
		BackgroundColor:    "bg-secondary",
		BackgroundGradient: "none",
		BackgroundImage:    "",
		Effects: Effects{
			Shadow:               true,
			Glassmorphism:        false,
			GlassmorphismOpacity: glassmorphismOpacityRange.def,
			CardOpacity:          cardOpacityRange.def,
			AnimationSpeed:       animationSpeedRange.def,
			BlurGlass:            false,
			BlurIntensity:        blurIntensityRange.def,
		},
	}
}

// Options lists the tokens an editor offers for each choice field.
type Options struct {
	ColorThemes  []string `json:"color_themes"`
	Gradients    []string `json:"gradients"`
	Patterns     []string `json:"patterns"`
	Fonts        []string `json:"fonts"`
	ButtonStyles []string `json:"button_styles"`
	BorderRadii  []string `json:"border_radii"`
}

// AvailableOptions returns the choices known to the presentation layer.
func AvailableOptions() Options {
	return Options{
		ColorThemes:  []string{"default", "rose", "green", "purple", "orange", "blue", "teal", "pink"},
		Gradients:    append([]string{"none"}, gradientNames...),
		Patterns:     []string{"none", "pattern-dots", "pattern-grid", "pattern-stripes", "pattern-waves", "pattern-hexagons"},
		Fonts:        []string{"font-sans", "font-serif", "font-mono", "font-display", "font-body", "font-slab", "font-rounded", "font-code"},
		ButtonStyles: []string{"default", "sharp", "rounded", "outlined", "minimal", "gradient", "soft", "glass"},
		BorderRadii:  []string{"rounded-none", "rounded-sm", "rounded", "rounded-lg"},
	}
}
