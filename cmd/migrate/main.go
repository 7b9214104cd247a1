package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/internal/logging"
	"github.com/pageza/profilsaya/backend/migrations"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "Print the migration status and exit")
	flag.Parse()

	logger, err := logging.New(false, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zap.NewStdLog(logger))
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("failed to set dialect", zap.Error(err))
	}

	ctx := context.Background()
	switch {
	case *status:
		err = goose.StatusContext(ctx, db, ".")
	case *rollback:
		err = goose.DownContext(ctx, db, ".")
	default:
		err = goose.UpContext(ctx, db, ".")
	}
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		logger.Fatal("failed to read schema version", zap.Error(err))
	}
	logger.Info("schema up to date", zap.Int64("version", version))
}
