package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotReady is returned by updates issued before Hydrate
	// completed or after Close.
	ErrSessionNotReady = errors.New("theme session is not ready")
	// ErrAlreadyHydrated is returned by a second Hydrate call.
	ErrAlreadyHydrated = errors.New("theme session already hydrated")
	// ErrUnknownFontSlot is returned for a font color slot outside FontColors.
	ErrUnknownFontSlot = errors.New("unknown font color slot")
)

// State is the lifecycle position of a Session.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Field names a settings field for presentation effects.
type Field string

const (
	FieldColorTheme           Field = "color_theme"
	FieldGradient             Field = "gradient"
	FieldPattern              Field = "pattern"
	FieldPatternColor         Field = "pattern_color"
	FieldFont                 Field = "font"
	FieldFontColors           Field = "font_colors"
	FieldButtonStyle          Field = "button_style"
	FieldBorderRadius         Field = "border_radius"
	FieldBackgroundColor      Field = "background_color"
	FieldBackgroundGradient   Field = "background_gradient"
	FieldBackgroundImage      Field = "background_image"
	FieldShadow               Field = "shadow"
	FieldGlassmorphism        Field = "glassmorphism"
	FieldGlassmorphismOpacity Field = "glassmorphism_opacity"
	FieldCardOpacity          Field = "card_opacity"
	FieldAnimationSpeed       Field = "animation_speed"
	FieldBlurGlass            Field = "blur_glass"
	FieldBlurIntensity        Field = "blur_intensity"
)

// FontSlot names one of the four font color slots.
type FontSlot string

const (
	SlotDisplayName FontSlot = "display_name"
	SlotBio         FontSlot = "bio"
	SlotLinkTitle   FontSlot = "link_title"
	SlotLinkURL     FontSlot = "link_url"
)

// Effect recomputes presentation values after a field changed.
type Effect func(s Settings, p *Presentation)

// SnapshotStore caches the last effective settings of a user between
// sessions. LoadSnapshot returns nil data and a nil error when nothing is
// cached.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, userID string) ([]byte, error)
	SaveSnapshot(ctx context.Context, userID string, data []byte) error
	DeleteSnapshot(ctx context.Context, userID string) error
}

// Seed supplies the persisted theme when no snapshot is cached. A nil
// Settings means nothing is persisted either.
type Seed func(ctx context.Context) (*Settings, error)

// Session is the editing context of one user's theme. It is created when
// editing starts, hydrated once, mutated through typed updates and closed
// when editing ends. A Session is safe for concurrent use.
type Session struct {
	mu           sync.Mutex
	userID       string
	store        SnapshotStore
	logger       *zap.Logger
	state        State
	settings     Settings
	presentation Presentation
	effects      map[Field][]Effect
}

// NewSession returns an uninitialized session for userID. store may be nil,
// in which case nothing is cached.
func NewSession(userID string, store SnapshotStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	effects := make(map[Field][]Effect, len(fieldEffects))
	for f, fns := range fieldEffects {
		effects[f] = append([]Effect(nil), fns...)
	}
	return &Session{
		userID:  userID,
		store:   store,
		logger:  logger.With(zap.String("user_id", userID)),
		state:   StateUninitialized,
		effects: effects,
	}
}

// OnChange registers fn to run after every update of field.
func (s *Session) OnChange(field Field, fn Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects[field] = append(s.effects[field], fn)
}

// State reports the lifecycle position of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns a copy of the effective settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Presentation returns a copy of the derived presentation values.
func (s *Session) Presentation() Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presentation.Clone()
}

// Hydrate loads the cached snapshot, or the seed when nothing usable is
// cached, merges it against the defaults and makes the session Ready.
// Unreadable snapshots and failing seeds degrade to defaults.
func (s *Session) Hydrate(ctx context.Context, seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return ErrAlreadyHydrated
	}
	s.state = StateHydrating

	partial := s.loadSnapshot(ctx)
	if partial == nil && seed != nil {
		persisted, err := seed(ctx)
		if err != nil {
			s.logger.Warn("loading persisted theme failed, using defaults", zap.Error(err))
		} else if persisted != nil {
			partial = persisted.ToPartial()
		}
	}

	s.settings = Merge(partial)
	s.presentation = Resolve(s.settings)
	s.state = StateReady
	return nil
}

func (s *Session) loadSnapshot(ctx context.Context) *Partial {
	if s.store == nil {
		return nil
	}
	data, err := s.store.LoadSnapshot(ctx, s.userID)
	if err != nil {
		s.logger.Warn("reading theme snapshot failed", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var p Partial
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Debug("discarding malformed theme snapshot", zap.Error(err))
		return nil
	}
	return &p
}

// Close ends the session. The cached snapshot is kept for the next one.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}

// ResetToDefaults replaces the effective settings with a fresh copy of the
// defaults and caches it.
func (s *Session) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return ErrSessionNotReady
	}
	s.settings = Defaults()
	s.presentation = Resolve(s.settings)
	return s.snapshot(ctx)
}

// update applies fn, caches the result and runs the effects of field.
func (s *Session) update(ctx context.Context, field Field, fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return ErrSessionNotReady
	}
	fn(&s.settings)
	err := s.snapshot(ctx)
	for _, effect := range s.effects[field] {
		effect(s.settings, &s.presentation)
	}
	return err
}

func (s *Session) snapshot(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	data, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encoding theme snapshot: %w", err)
	}
	if err := s.store.SaveSnapshot(ctx, s.userID, data); err != nil {
		return fmt.Errorf("caching theme snapshot: %w", err)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *Session) setToken(ctx context.Context, field Field, v string, get func(*Settings) *string) error {
	d := Defaults()
	def := *get(&d)
	return s.update(ctx, field, func(st *Settings) {
		*get(st) = orDefault(v, def)
	})
}

func (s *Session) UpdateColorTheme(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldColorTheme, v, func(st *Settings) *string { return &st.ColorTheme })
}

func (s *Session) UpdateGradient(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldGradient, v, func(st *Settings) *string { return &st.Gradient })
}

func (s *Session) UpdatePattern(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldPattern, v, func(st *Settings) *string { return &st.Pattern })
}

func (s *Session) UpdatePatternColor(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldPatternColor, v, func(st *Settings) *string { return &st.PatternColor })
}

func (s *Session) UpdateFont(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldFont, v, func(st *Settings) *string { return &st.Font })
}

func (s *Session) UpdateButtonStyle(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldButtonStyle, v, func(st *Settings) *string { return &st.ButtonStyle })
}

func (s *Session) UpdateBorderRadius(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldBorderRadius, v, func(st *Settings) *string { return &st.BorderRadius })
}

func (s *Session) UpdateBackgroundColor(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldBackgroundColor, v, func(st *Settings) *string { return &st.BackgroundColor })
}

func (s *Session) UpdateBackgroundGradient(ctx context.Context, v string) error {
	return s.setToken(ctx, FieldBackgroundGradient, v, func(st *Settings) *string { return &st.BackgroundGradient })
}

// UpdateBackgroundImage sets the background image URL; "" removes it.
func (s *Session) UpdateBackgroundImage(ctx context.Context, v string) error {
	return s.update(ctx, FieldBackgroundImage, func(st *Settings) { st.BackgroundImage = v })
}

// UpdateFontColor sets one font color slot.
func (s *Session) UpdateFontColor(ctx context.Context, slot FontSlot, v string) error {
	def := Defaults().FontColors
	var pick func(*FontColors) *string
	switch slot {
	case SlotDisplayName:
		pick = func(fc *FontColors) *string { return &fc.DisplayName }
	case SlotBio:
		pick = func(fc *FontColors) *string { return &fc.Bio }
	case SlotLinkTitle:
		pick = func(fc *FontColors) *string { return &fc.LinkTitle }
	case SlotLinkURL:
		pick = func(fc *FontColors) *string { return &fc.LinkURL }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFontSlot, slot)
	}
	return s.update(ctx, FieldFontColors, func(st *Settings) {
		*pick(&st.FontColors) = orDefault(v, *pick(&def))
	})
}

func (s *Session) UpdateGlassmorphismOpacity(ctx context.Context, v float64) error {
	return s.update(ctx, FieldGlassmorphismOpacity, func(st *Settings) {
		st.Effects.GlassmorphismOpacity = glassmorphismOpacityRange.clamp(v)
	})
}

func (s *Session) UpdateCardOpacity(ctx context.Context, v float64) error {
	return s.update(ctx, FieldCardOpacity, func(st *Settings) {
		st.Effects.CardOpacity = cardOpacityRange.clamp(v)
	})
}

func (s *Session) UpdateAnimationSpeed(ctx context.Context, ms int) error {
	return s.update(ctx, FieldAnimationSpeed, func(st *Settings) {
		st.Effects.AnimationSpeed = animationSpeedRange.clamp(ms)
	})
}

func (s *Session) UpdateBlurIntensity(ctx context.Context, px int) error {
	return s.update(ctx, FieldBlurIntensity, func(st *Settings) {
		st.Effects.BlurIntensity = blurIntensityRange.clamp(px)
	})
}

func (s *Session) SetShadow(ctx context.Context, on bool) error {
	return s.update(ctx, FieldShadow, func(st *Settings) { st.Effects.Shadow = on })
}

func (s *Session) SetGlassmorphism(ctx context.Context, on bool) error {
	return s.update(ctx, FieldGlassmorphism, func(st *Settings) { st.Effects.Glassmorphism = on })
}

func (s *Session) SetBlurGlass(ctx context.Context, on bool) error {
	return s.update(ctx, FieldBlurGlass, func(st *Settings) { st.Effects.BlurGlass = on })
}

func (s *Session) ToggleShadow(ctx context.Context) error {
	return s.update(ctx, FieldShadow, func(st *Settings) { st.Effects.Shadow = !st.Effects.Shadow })
}

func (s *Session) ToggleGlassmorphism(ctx context.Context) error {
	return s.update(ctx, FieldGlassmorphism, func(st *Settings) { st.Effects.Glassmorphism = !st.Effects.Glassmorphism })
}

func (s *Session) ToggleBlurGlass(ctx context.Context) error {
	return s.update(ctx, FieldBlurGlass, func(st *Settings) { st.Effects.BlurGlass = !st.Effects.BlurGlass })
}

// Apply runs the typed update of every leaf set in p, in field order.
// Every update is attempted; the returned error joins the failures.
func (s *Session) Apply(ctx context.Context, p *Partial) error {
	if p == nil {
		return nil
	}
	var errs []error
	try := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	str := func(v *string, fn func(context.Context, string) error) {
		if v != nil {
			try(fn(ctx, *v))
		}
	}
	str(p.ColorTheme, s.UpdateColorTheme)
	str(p.Gradient, s.UpdateGradient)
	str(p.Pattern, s.UpdatePattern)
	str(p.PatternColor, s.UpdatePatternColor)
	str(p.Font, s.UpdateFont)
	str(p.ButtonStyle, s.UpdateButtonStyle)
	str(p.BorderRadius, s.UpdateBorderRadius)
	str(p.BackgroundColor, s.UpdateBackgroundColor)
	str(p.BackgroundGradient, s.UpdateBackgroundGradient)
	str(p.BackgroundImage, s.UpdateBackgroundImage)

	if fc := p.FontColors; fc != nil {
		slots := []struct {
			slot FontSlot
			v    *string
		}{
			{SlotDisplayName, fc.DisplayName},
			{SlotBio, fc.Bio},
			{SlotLinkTitle, fc.LinkTitle},
			{SlotLinkURL, fc.LinkURL},
		}
		for _, sl := range slots {
			if sl.v != nil {
				try(s.UpdateFontColor(ctx, sl.slot, *sl.v))
			}
		}
	}

	if e := p.Effects; e != nil {
		if e.Shadow != nil {
			try(s.SetShadow(ctx, *e.Shadow))
		}
		if e.Glassmorphism != nil {
			try(s.SetGlassmorphism(ctx, *e.Glassmorphism))
		}
		if e.GlassmorphismOpacity != nil {
			try(s.UpdateGlassmorphismOpacity(ctx, *e.GlassmorphismOpacity))
		}
		if e.CardOpacity != nil {
			try(s.UpdateCardOpacity(ctx, *e.CardOpacity))
		}
		if e.AnimationSpeed != nil {
			try(s.UpdateAnimationSpeed(ctx, *e.AnimationSpeed))
		}
		if e.BlurGlass != nil {
			try(s.SetBlurGlass(ctx, *e.BlurGlass))
		}
		if e.BlurIntensity != nil {
			try(s.UpdateBlurIntensity(ctx, *e.BlurIntensity))
		}
	}
	return errors.Join(errs...)
}
