package rooms

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestRepositoryGetByID(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "category", "nightly_rate", "total_rooms", "available_rooms", "is_available"}).
		AddRow(id.String(), "Royal Suite", "royal-suite", "ROYAL_SUITE", 5000.0, 4, 2, true)
	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE id = \$1`).WillReturnRows(rows)

	room, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, room.ID)
	assert.Equal(t, "ROYAL_SUITE", room.Category.String())
	assert.Equal(t, 2, room.AvailableRooms)
	assert.Nil(t, room.BreakfastRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReserve(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=available_rooms - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reserve(context.Background(), uuid.New(), 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReserveInsufficient(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=available_rooms - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reserve(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReleaseCapsAtTotal(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=LEAST\(available_rooms \+ \$1, total_rooms\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Release(context.Background(), uuid.New(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteMissing(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectExec(`DELETE FROM "rooms" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
