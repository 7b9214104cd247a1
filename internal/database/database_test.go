package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/profilsaya/backend/config"
	"github.com/pageza/profilsaya/backend/internal/models"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		dbType  string
		name    string
		wantErr bool
	}{
		{dbType: "postgres", name: "postgres"},
		{dbType: "postgresql", name: "postgres"},
		{dbType: "mysql", name: "mysql"},
		{dbType: "mariadb", name: "mysql"},
		{dbType: "sqlite", name: "sqlite"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			d, err := Dialector(&config.Config{DBType: tt.dbType, DBPath: "test.db"})
			if tt.wantErr {
				assert.EqualError(t, err, "unsupported database type: "+tt.dbType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{
		Environment: config.Test,
		DBType:      "sqlite",
		DBPath:      filepath.Join(t.TempDir(), "profilsaya.db"),
	}
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	db, err := Connect(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, RunMigrations(ctx, db, log))
	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasColumn(&models.Theme{}, "effect_card_opacity"))
	assert.True(t, db.Migrator().HasColumn(&models.Link{}, "sort_order"))

	// migrating twice is a no-op
	require.NoError(t, RunMigrations(ctx, db, log))
	assert.NoError(t, HealthCheck(ctx, db))
}

func TestConnectUnsupported(t *testing.T) {
	_, err := Connect(context.Background(), &config.Config{DBType: "oracle"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
