package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	gdb, err := Init(&config.DatabaseConfig{Driver: "sqlite", DSN: "file:db_init_test?mode=memory&cache=shared"})
	require.NoError(t, err)

	m := gdb.Migrator()
	assert.True(t, m.HasTable(&model.Observation{}))
	assert.True(t, m.HasTable(&model.RequiredCount{}))
	assert.True(t, m.HasTable(&model.PushSubscription{}))
	assert.True(t, m.HasIndex(&model.Observation{}, "idx_observation_slot"))
	assert.True(t, m.HasIndex(&model.Observation{}, "idx_observation_latest"))
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
