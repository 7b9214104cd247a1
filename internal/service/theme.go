package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/internal/theme"
)

// ThemeService opens theme editing sessions. Sessions live for one request;
// the snapshot cache carries the edits between requests until the page is
// saved.
type ThemeService struct {
	cache    theme.SnapshotStore
	profiles ProfileReader
	logger   *zap.Logger
}

// NewThemeService creates a new ThemeService. cache may be nil, in which
// case sessions start from the persisted theme every time.
func NewThemeService(cache theme.SnapshotStore, profiles ProfileReader, logger *zap.Logger) *ThemeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeService{
		cache:    cache,
		profiles: profiles,
		logger:   logger.Named("theme"),
	}
}

// OpenSession returns a Ready session for userID, hydrated from the cached
// snapshot or, failing that, from the persisted theme.
func (s *ThemeService) OpenSession(ctx context.Context, userID string) (*theme.Session, error) {
	sess := theme.NewSession(userID, s.cache, s.logger)
	err := sess.Hydrate(ctx, func(ctx context.Context) (*theme.Settings, error) {
		agg, err := s.profiles.GetProfile(ctx, userID)
		if err != nil || agg == nil {
			return nil, err
		}
		return &agg.Theme.Settings, nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Discard drops the cached snapshot of userID.
func (s *ThemeService) Discard(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeleteSnapshot(ctx, userID); err != nil {
		return persistenceError("discard theme edits", err)
	}
	return nil
}
