package theme

// PartialFontColors is FontColors with every slot optional.
type PartialFontColors struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	LinkTitle   *string `json:"link_title,omitempty"`
	LinkURL     *string `json:"link_url,omitempty"`
}

// PartialEffects is Effects with every field optional.
type PartialEffects struct {
	Shadow               *bool    `json:"shadow,omitempty"`
	Glassmorphism        *bool    `json:"glassmorphism,omitempty"`
	GlassmorphismOpacity *float64 `json:"glassmorphism_opacity,omitempty"`
	CardOpacity          *float64 `json:"card_opacity,omitempty"`
	AnimationSpeed       *int     `json:"animation_speed,omitempty"`
	BlurGlass            *bool    `json:"blur_glass,omitempty"`
	BlurIntensity        *int     `json:"blur_intensity,omitempty"`
}

// Partial is a theme record in which any leaf may be missing. It is the
// shape of cached snapshots and of client submitted settings.
type Partial struct {
	ColorTheme         *string            `json:"color_theme,omitempty"`
	Gradient           *string            `json:"gradient,omitempty"`
	Pattern            *string            `json:"pattern,omitempty"`
	PatternColor       *string            `json:"pattern_color,omitempty"`
	Font               *string            `json:"font,omitempty"`
	FontColors         *PartialFontColors `json:"font_colors,omitempty"`
	ButtonStyle        *string            `json:"button_style,omitempty"`
	BorderRadius       *string            `json:"border_radius,omitempty"`
	BackgroundColor    *string            `json:"background_color,omitempty"`
	BackgroundGradient *string            `json:"background_gradient,omitempty"`
	BackgroundImage    *string            `json:"background_image,omitempty"`
	Effects            *PartialEffects    `json:"effects,omitempty"`
}

// Merge resolves p against Defaults leaf by leaf. Missing leaves and empty
// tokens take their default, numeric leaves are clamped to their domain.
// A nil p yields the defaults.
func Merge(p *Partial) Settings {
	s := Defaults()
	if p == nil {
		return s
	}

	token(&s.ColorTheme, p.ColorTheme)
	token(&s.Gradient, p.Gradient)
	token(&s.Pattern, p.Pattern)
	token(&s.PatternColor, p.PatternColor)
	token(&s.Font, p.Font)
	token(&s.ButtonStyle, p.ButtonStyle)
	token(&s.BorderRadius, p.BorderRadius)
	token(&s.BackgroundColor, p.BackgroundColor)
	token(&s.BackgroundGradient, p.BackgroundGradient)
	if p.BackgroundImage != nil {
		s.BackgroundImage = *p.BackgroundImage
	}

	if fc := p.FontColors; fc != nil {
		token(&s.FontColors.DisplayName, fc.DisplayName)
		token(&s.FontColors.Bio, fc.Bio)
		token(&s.FontColors.LinkTitle, fc.LinkTitle)
		token(&s.FontColors.LinkURL, fc.LinkURL)
	}

	if e := p.Effects; e != nil {
		flag(&s.Effects.Shadow, e.Shadow)
		flag(&s.Effects.Glassmorphism, e.Glassmorphism)
		flag(&s.Effects.BlurGlass, e.BlurGlass)
		if e.GlassmorphismOpacity != nil {
			s.Effects.GlassmorphismOpacity = glassmorphismOpacityRange.clamp(*e.GlassmorphismOpacity)
		}
		if e.CardOpacity != nil {
			s.Effects.CardOpacity = cardOpacityRange.clamp(*e.CardOpacity)
		}
		if e.AnimationSpeed != nil {
			s.Effects.AnimationSpeed = animationSpeedRange.clamp(*e.AnimationSpeed)
		}
		if e.BlurIntensity != nil {
			s.Effects.BlurIntensity = blurIntensityRange.clamp(*e.BlurIntensity)
		}
	}
	return s
}

// Complete resolves a stored theme against Defaults. Rows written by older
// or partial saves may carry empty tokens and zero numbers; those count as
// missing and take their default. Everything else is clamped as in Merge.
func Complete(s Settings) Settings {
	p := s.ToPartial()
	e := p.Effects
	if s.Effects.GlassmorphismOpacity == 0 {
		e.GlassmorphismOpacity = nil
	}
	if s.Effects.CardOpacity == 0 {
		e.CardOpacity = nil
	}
	if s.Effects.AnimationSpeed == 0 {
		e.AnimationSpeed = nil
	}
	if s.Effects.BlurIntensity == 0 {
		e.BlurIntensity = nil
	}
	return Merge(p)
}

func token(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func flag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ToPartial converts a resolved theme into a Partial with every leaf set.
func (s Settings) ToPartial() *Partial {
	fc := s.FontColors
	e := s.Effects
	return &Partial{
		ColorTheme:         &s.ColorTheme,
		Gradient:           &s.Gradient,
		Pattern:            &s.Pattern,
		PatternColor:       &s.PatternColor,
		Font:               &s.Font,
		ButtonStyle:        &s.ButtonStyle,
		BorderRadius:       &s.BorderRadius,
		BackgroundColor:    &s.BackgroundColor,
		BackgroundGradient: &s.BackgroundGradient,
		BackgroundImage:    &s.BackgroundImage,
		FontColors: &PartialFontColors{
			DisplayName: &fc.DisplayName,
			Bio:         &fc.Bio,
			LinkTitle:   &fc.LinkTitle,
			LinkURL:     &fc.LinkURL,
		},
		Effects: &PartialEffects{
			Shadow:               &e.Shadow,
			Glassmorphism:        &e.Glassmorphism,
			GlassmorphismOpacity: &e.GlassmorphismOpacity,
			CardOpacity:          &e.CardOpacity,
			AnimationSpeed:       &e.AnimationSpeed,
			BlurGlass:            &e.BlurGlass,
			BlurIntensity:        &e.BlurIntensity,
		},
	}
}
