package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
	linkBatchSize    = 100

	// parallel reads retried before falling back to one read transaction
	consistentReadAttempts = 3
)

var profileUpdateColumns = []string{
	"name", "bio", "avatar_url", "verified", "secondary_bg", "updated_at",
}

var themeUpdateColumns = []string{
	"color_theme", "gradient", "pattern", "pattern_color", "font",
	"font_color_display_name", "font_color_bio", "font_color_link_title", "font_color_link_url",
	"button_style", "border_radius", "background_color", "background_gradient", "background_image",
	"effect_shadow", "effect_glassmorphism", "effect_glassmorphism_opacity", "effect_card_opacity",
	"effect_animation_speed", "effect_blur_glass", "effect_blur_intensity",
	"updated_at",
}

// ProfileService persists the per-user page aggregate: profile, links and
// theme. All writes to the three records go through a single transaction.
type ProfileService struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		db:     db,
		logger: logger.Named("profile"),
		now:    time.Now,
	}
}

// SaveProfile replaces the whole aggregate of userID in one transaction:
// the profile and theme are upserted, the links are deleted and inserted
// again with Order set to their index. settings must already be merged
// against the defaults. All three records share one UpdatedAt stamp.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, profile models.Profile, links []models.Link, settings theme.Settings) (string, error) {
	if userID == "" {
		return "", newValidationError("user_id", "user id is required")
	}

	// millisecond precision survives every supported column type
	now := s.now().UTC().Truncate(time.Millisecond)

	profile.ID = uuid.New()
	profile.UserID = userID
	profile.CreatedAt = now
	profile.UpdatedAt = now

	rows := make([]models.Link, len(links))
	for i, l := range links {
		clientID := l.ClientID
		if clientID == "" {
			clientID = uuid.NewString()
		}
		rows[i] = models.Link{
			UserID:    userID,
			ClientID:  clientID,
			Title:     l.Title,
			URL:       l.URL,
			Order:     i,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	record := models.Theme{
		UserID:    userID,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(profileUpdateColumns),
		}).Create(&profile).Error; err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Link{}).Error; err != nil {
			return fmt.Errorf("delete links: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(&rows, linkBatchSize).Error; err != nil {
				return fmt.Errorf("insert links: %w", err)
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(themeUpdateColumns),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("upsert theme: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("saving profile failed", zap.String("user_id", userID), zap.Error(err))
		return "", persistenceError("save profile", err)
	}

	s.logger.Debug("profile saved", zap.String("user_id", userID), zap.Int("links", len(rows)))
	return userID, nil
}

// GetProfile returns the aggregate of userID, or nil when no profile
// exists. A missing theme is replaced by the defaults, without persisting.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	for attempt := 0; attempt < consistentReadAttempts; attempt++ {
		snap, err := s.readParallel(ctx, userID)
		if err != nil {
			return nil, persistenceError("fetch profile", err)
		}
		if !snap.profileFound {
			return nil, nil
		}
		if snap.consistent() {
			return snap.aggregate(userID), nil
		}
		s.logger.Debug("profile read raced a save, retrying", zap.String("user_id", userID), zap.Int("attempt", attempt+1))
	}

	snap, err := s.readInTransaction(ctx, userID)
	if err != nil {
		return nil, persistenceError("fetch profile", err)
	}
	if !snap.profileFound {
		return nil, nil
	}
	return snap.aggregate(userID), nil
}

// aggregateSnapshot is the raw result of reading the three records.
type aggregateSnapshot struct {
	profile      models.Profile
	profileFound bool
	links        []models.Link
	theme        models.Theme
	themeFound   bool
}

// consistent reports whether the records come from the same save.
func (a *aggregateSnapshot) consistent() bool {
	stamp := a.profile.UpdatedAt
	for _, l := range a.links {
		if !l.UpdatedAt.Equal(stamp) {
			return false
		}
	}
	return !a.themeFound || a.theme.UpdatedAt.Equal(stamp)
}

func (a *aggregateSnapshot) aggregate(userID string) *models.UserProfile {
	links := a.links
	if links == nil {
		links = []models.Link{}
	}
	th := a.theme
	if !a.themeFound {
		th = models.DefaultTheme(userID)
	} else {
		th.Settings = theme.Complete(th.Settings)
	}
	return &models.UserProfile{Profile: a.profile, Links: links, Theme: th}
}

func (s *ProfileService) readParallel(ctx context.Context, userID string) (*aggregateSnapshot, error) {
	snap := &aggregateSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := takeOne(s.db.WithContext(gctx), userID, &snap.profile)
		snap.profileFound = found
		return err
	})
	g.Go(func() error {
		return findLinks(s.db.WithContext(gctx), userID, &snap.links)
	})
	g.Go(func() error {
		found, err := takeOne(s.db.WithContext(gctx), userID, &snap.theme)
		snap.themeFound = found
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *ProfileService) readInTransaction(ctx context.Context, userID string) (*aggregateSnapshot, error) {
	snap := &aggregateSnapshot{}
	opts := &sql.TxOptions{ReadOnly: true}
	switch s.db.Dialector.Name() {
	case "postgres", "mysql":
		opts.Isolation = sql.LevelRepeatableRead
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.profileFound, err = takeOne(tx, userID, &snap.profile); err != nil || !snap.profileFound {
			return err
		}
		if err = findLinks(tx, userID, &snap.links); err != nil {
			return err
		}
		snap.themeFound, err = takeOne(tx, userID, &snap.theme)
		return err
	}, opts)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// takeOne loads the record of userID into dst and reports whether it exists.
func takeOne(db *gorm.DB, userID string, dst interface{}) (bool, error) {
	res := db.Where("user_id = ?", userID).Limit(1).Find(dst)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func findLinks(db *gorm.DB, userID string, dst *[]models.Link) error {
	return db.Where("user_id = ?", userID).Order("sort_order ASC").Find(dst).Error
}

// GetProfileBySlug resolves slug to a user and returns that user's
// aggregate, or nil when the slug or the profile is unknown.
func (s *ProfileService) GetProfileBySlug(ctx context.Context, slug string) (*models.UserProfile, error) {
	var user models.User
	res := s.db.WithContext(ctx).Where("slug = ?", slug).Limit(1).Find(&user)
	if res.Error != nil {
		return nil, persistenceError("fetch profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetProfile(ctx, user.ID.String())
}

// DeleteProfile removes the profile, links and theme of userID in one
// transaction.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) (bool, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Profile{}, &models.Link{}, &models.Theme{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("deleting profile failed", zap.String("user_id", userID), zap.Error(err))
		return false, persistenceError("delete profile", err)
	}

	s.logger.Info("profile deleted", zap.String("user_id", userID))
	return true, nil
}

// IsUserIDAvailable reports whether no profile is stored under candidate.
func (s *ProfileService) IsUserIDAvailable(ctx context.Context, candidate string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", candidate).Count(&count).Error; err != nil {
		return false, persistenceError("check availability", err)
	}
	return count == 0, nil
}

// ListProfiles returns the most recently updated profiles. limit defaults
// to 50 and is capped at 100.
func (s *ProfileService) ListProfiles(ctx context.Context, limit int) ([]models.Profile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	profiles := []models.Profile{}
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, persistenceError("list profiles", err)
	}
	return profiles, nil
}
