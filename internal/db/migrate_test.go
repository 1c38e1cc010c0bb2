package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancelodge/lodge-billing/internal/models"
)

func TestConnectAndMigrateProvisionsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	gdb, err := ConnectAndMigrate(path, false)
	require.NoError(t, err)

	for _, table := range []string{"clients", "quotes", "deleted_clients", "deleted_quotes", "quote_number_sequence"} {
		assert.True(t, gdb.Migrator().HasTable(table), "missing table %s", table)
	}

	var seq models.QuoteSequence
	require.NoError(t, gdb.Take(&seq).Error)
	assert.EqualValues(t, models.SequenceSeed, seq.LastNumber)
}

func TestConnectAndMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	gdb, err := ConnectAndMigrate(path, false)
	require.NoError(t, err)

	// Advance the counter, then provision again: nothing may be re-seeded.
	require.NoError(t, gdb.Exec("UPDATE quote_number_sequence SET last_number = last_number + 1").Error)

	gdb2, err := ConnectAndMigrate(path, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb2.Table("quote_number_sequence").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var seq models.QuoteSequence
	require.NoError(t, gdb2.Take(&seq).Error)
	assert.EqualValues(t, models.SequenceSeed+1, seq.LastNumber)
}

func TestConnectAndMigrateEmptyPathFails(t *testing.T) {
	_, err := ConnectAndMigrate("", false)
	require.Error(t, err)
}
