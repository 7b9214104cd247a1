package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := Defaults()
	b := Defaults()
	a.FontColors.Bio = "#ffffff"
	a.Effects.Shadow = false

	assert.Equal(t, "#6b7280", b.FontColors.Bio)
	assert.True(t, b.Effects.Shadow)
	assert.Equal(t, Defaults(), b)
}

func TestMergeNilIsDefaults(t *testing.T) {
	assert.Equal(t, Defaults(), Merge(nil))
	assert.Equal(t, Defaults(), Merge(&Partial{}))
}

func TestMergeDefaultsEachLeafIndependently(t *testing.T) {
	p := &Partial{
		ColorTheme: ptr("rose"),
		Font:       ptr(""),
		FontColors: &PartialFontColors{Bio: ptr("#123456")},
		Effects: &PartialEffects{
			Glassmorphism: ptr(true),
			CardOpacity:   ptr(0.5),
		},
	}

	got := Merge(p)

	want := Defaults()
	want.ColorTheme = "rose"
	want.FontColors.Bio = "#123456"
	want.Effects.Glassmorphism = true
	want.Effects.CardOpacity = 0.5
	assert.Equal(t, want, got)
}

func TestMergeMissingBlurIntensityKeepsRestOfEffects(t *testing.T) {
	got := Merge(&Partial{Effects: &PartialEffects{
		Shadow:         ptr(false),
		AnimationSpeed: ptr(700),
	}})

	assert.False(t, got.Effects.Shadow)
	assert.Equal(t, 700, got.Effects.AnimationSpeed)
	assert.Equal(t, 10, got.Effects.BlurIntensity)
	assert.Equal(t, 0.1, got.Effects.GlassmorphismOpacity)
}

func TestMergeClampsNumericLeaves(t *testing.T) {
	got := Merge(&Partial{Effects: &PartialEffects{
		GlassmorphismOpacity: ptr(1.5),
		CardOpacity:          ptr(0.0),
		AnimationSpeed:       ptr(5000),
		BlurIntensity:        ptr(1),
	}})

	assert.Equal(t, 1.0, got.Effects.GlassmorphismOpacity)
	assert.Equal(t, 0.1, got.Effects.CardOpacity)
	assert.Equal(t, 1000, got.Effects.AnimationSpeed)
	assert.Equal(t, 5, got.Effects.BlurIntensity)
}

func TestMergeKeepsExplicitEmptyBackgroundImage(t *testing.T) {
	got := Merge(&Partial{BackgroundImage: ptr("")})
	assert.Equal(t, "", got.BackgroundImage)

	got = Merge(&Partial{BackgroundImage: ptr("https://cdn.example.com/bg.png")})
	assert.Equal(t, "https://cdn.example.com/bg.png", got.BackgroundImage)
}

func TestToPartialRoundTripsThroughMerge(t *testing.T) {
	s := Defaults()
	s.ColorTheme = "teal"
	s.Effects.BlurIntensity = 25
	s.FontColors.LinkURL = "#abcdef"

	assert.Equal(t, s, Merge(s.ToPartial()))
}

func TestCompleteFillsSparseRecord(t *testing.T) {
	got := Complete(Settings{ColorTheme: "rose", Effects: Effects{CardOpacity: 7, BlurIntensity: 15}})

	want := Defaults()
	want.ColorTheme = "rose"
	want.Effects.CardOpacity = 1.0
	want.Effects.BlurIntensity = 15
	// booleans are stored as given
	want.Effects.Shadow = false
	assert.Equal(t, want, got)
}

func TestCompleteKeepsFullRecord(t *testing.T) {
	s := Defaults()
	s.Font = "font-mono"
	s.Effects.AnimationSpeed = 900
	assert.Equal(t, s, Complete(s))
}

func TestFloatRangeClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.5, 1.0},
		{0.0, 0.05},
		{-3, 0.05},
		{0.3, 0.3},
		{0.33, 0.35},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, glassmorphismOpacityRange.clamp(tt.in), "clamp(%v)", tt.in)
	}
}

func TestIntRangeClamp(t *testing.T) {
	assert.Equal(t, 100, animationSpeedRange.clamp(0))
	assert.Equal(t, 1000, animationSpeedRange.clamp(1001))
	assert.Equal(t, 450, animationSpeedRange.clamp(430))
	assert.Equal(t, 400, animationSpeedRange.clamp(410))
	assert.Equal(t, 50, blurIntensityRange.clamp(99))
	assert.Equal(t, 5, blurIntensityRange.clamp(-1))
	assert.Equal(t, 20, blurIntensityRange.clamp(20))
}

func TestAvailableOptionsIncludeDefaults(t *testing.T) {
	opts := AvailableOptions()
	d := Defaults()
	assert.Contains(t, opts.ColorThemes, d.ColorTheme)
	assert.Contains(t, opts.Gradients, d.Gradient)
	assert.Contains(t, opts.Patterns, d.Pattern)
	assert.Contains(t, opts.Fonts, d.Font)
	assert.Contains(t, opts.ButtonStyles, d.ButtonStyle)
	assert.Contains(t, opts.BorderRadii, d.BorderRadius)
	for _, g := range opts.Gradients[1:] {
		assert.NotEmpty(t, GradientCSS(g), g)
	}
}
