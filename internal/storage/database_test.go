package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
	"github.com/MirBabaTravels/booking_svc/internal/testutil"
)

func TestOpenDatabaseValidatesConfiguration(t *testing.T) {
	_, missingDriverErr := storage.OpenDatabase(storage.Config{DataSourceName: "file:test"})
	require.ErrorIs(t, missingDriverErr, storage.ErrMissingDatabaseDriverName)

	_, unsupportedErr := storage.OpenDatabase(storage.Config{DriverName: "oracle", DataSourceName: "file:test"})
	require.ErrorIs(t, unsupportedErr, storage.ErrUnsupportedDatabaseDriver)

	_, missingDataSourceErr := storage.OpenDatabase(storage.Config{DriverName: storage.DriverNameSQLite})
	require.ErrorIs(t, missingDataSourceErr, storage.ErrMissingDataSourceName)
}

func TestOpenDatabaseAndMigrate(t *testing.T) {
	sqliteDatabase := testutil.NewSQLiteTestDatabase(t)
	database, openErr := storage.OpenDatabase(sqliteDatabase.Configuration())
	require.NoError(t, openErr)
	require.NoError(t, storage.AutoMigrate(database))

	for _, tableModel := range []any{&model.Inquiry{}, &model.TourPackage{}, &model.FAQ{}, &model.AdminUser{}} {
		require.True(t, database.Migrator().HasTable(tableModel))
	}
}

func TestNewIDProducesUniqueIdentifiers(t *testing.T) {
	seen := make(map[string]struct{})
	for index := 0; index < 100; index++ {
		id := storage.NewID()
		require.Len(t, id, 36)
		_, duplicate := seen[id]
		require.False(t, duplicate)
		seen[id] = struct{}{}
	}
}
