package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/config"
	"github.com/pageza/profilsaya/backend/internal/database"
	"github.com/pageza/profilsaya/backend/internal/logging"
	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

const testPassword = "testpassword123"

type seedLink struct {
	title, url string
}

type seedUser struct {
	name       string
	email      string
	bio        string
	verified   bool
	colorTheme string
	gradient   string
	links      []seedLink
}

var testUsers = []seedUser{
	{
		name:       "John Doe",
		email:      "john.doe@example.com",
		bio:        "Photographer and occasional writer",
		verified:   true,
		colorTheme: "blue",
		gradient:   "ocean",
		links: []seedLink{
			{"Portfolio", "https://john.example.com"},
			{"Instagram", "https://instagram.com/johndoe"},
		},
	},
	{
		name:       "Jane Smith",
		email:      "jane.smith@example.com",
		bio:        "Product designer",
		verified:   true,
		colorTheme: "rose",
		gradient:   "sunset",
		links: []seedLink{
			{"Dribbble", "https://dribbble.com/janesmith"},
			{"Blog", "https://jane.example.com/blog"},
			{"Newsletter", "https://jane.example.com/newsletter"},
		},
	},
	{
		name:       "Bob Wilson",
		email:      "bob.wilson@example.com",
		bio:        "Just getting started",
		colorTheme: "green",
	},
	{
		// an account without a page
		name:  "Alice Cooper",
		email: "alice.cooper@example.com",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(false, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, logger)
	profiles := service.NewProfileService(db, logger)

	created := 0
	for _, u := range testUsers {
		user, _, err := auth.Register(ctx, u.name, u.email, testPassword)
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			logger.Info("user already exists, skipping", zap.String("email", u.email), zap.String("reason", verr.Message))
			continue
		}
		if err != nil {
			logger.Error("failed to create user", zap.String("email", u.email), zap.Error(err))
			continue
		}
		created++

		if u.bio == "" {
			logger.Info("created user without page", zap.String("email", u.email), zap.String("slug", user.Slug))
			continue
		}

		links := make([]models.Link, len(u.links))
		for i, l := range u.links {
			links[i] = models.Link{Title: l.title, URL: l.url}
		}
		settings := theme.Merge(&theme.Partial{ColorTheme: &u.colorTheme, Gradient: &u.gradient})
		profile := models.Profile{Name: u.name, Bio: u.bio, Verified: u.verified, SecondaryBg: models.DefaultSecondaryBg}

		if _, err := profiles.SaveProfile(ctx, user.ID.String(), profile, links, settings); err != nil {
			logger.Error("failed to save page", zap.String("email", u.email), zap.Error(err))
			continue
		}
		logger.Info("created user with page",
			zap.String("email", u.email),
			zap.String("share_url", cfg.BaseURL+"/"+user.Slug),
			zap.Int("links", len(links)),
		)
	}

	var users, pages int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Profile{}).Count(&pages)
	logger.Info("seeding finished",
		zap.Int("created", created),
		zap.Int64("users", users),
		zap.Int64("pages", pages),
		zap.String("password", testPassword),
	)
}
