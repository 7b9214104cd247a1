package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/profilsaya/backend/internal/models"
)

// IsIdentifier reports whether segment is an account id: a UUID in its
// canonical 36 character form. Slugs never take that form, registration
// refuses names that would produce one.
func IsIdentifier(segment string) bool {
	if len(segment) != 36 {
		return false
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

// ProfileReader is the read side of the profile store.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	GetProfileBySlug(ctx context.Context, slug string) (*models.UserProfile, error)
}

// ProfileResolver maps a public path segment to a page aggregate.
type ProfileResolver struct {
	profiles ProfileReader
}

func NewProfileResolver(profiles ProfileReader) *ProfileResolver {
	return &ProfileResolver{profiles: profiles}
}

// Resolve looks segment up as an account id when it is one and as a slug
// otherwise. It returns nil for every kind of miss.
func (r *ProfileResolver) Resolve(ctx context.Context, segment string) (*models.UserProfile, error) {
	if segment == "" {
		return nil, nil
	}
	if IsIdentifier(segment) {
		return r.profiles.GetProfile(ctx, uuid.MustParse(segment).String())
	}
	return r.profiles.GetProfileBySlug(ctx, segment)
}
