package bookings

import (
	"context"
	"testing"
	"time"

	"royalstay/internal/pricing"
	"royalstay/internal/rooms"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gormDB, rooms.NewRepository(gormDB)), mock
}

func repoBooking() *Booking {
	return &Booking{
		ID:            uuid.New(),
		BookingRef:    "RS-20260601-ABCDEF",
		TransactionID: "TXN_1_ABCDEF12",
		Status:        StatusConfirmed,
		Source:        SourceCustomer,
		UserID:        "user-1",
		GuestName:     "Asha Rao",
		GuestEmail:    "asha@example.com",
		RoomID:        uuid.New(),
		RoomName:      "Royal Executive",
		Category:      pricing.CategoryRoyalExecutive,
		CheckIn:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
		Nights:        2,
		RoomCount:     1,
		Adults:        2,
		NightlyRate:   5000,
		BasePrice:     10000,
		Total:         11200,
	}
}

func TestRepositoryCreateReservesAndRedeems(t *testing.T) {
	repo, mock := newMockRepo(t)
	booking := repoBooking()
	promoID := uuid.New()
	booking.PromoCodeID = &promoID
	booking.Discount = 1000

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=available_rooms - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(booking.ID.String()))
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=used_count \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "promo_redemptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), booking))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateRollsBackWithoutInventory(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=available_rooms - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), repoBooking())
	assert.ErrorIs(t, err, rooms.ErrInsufficientInventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateRollsBackWhenPromoExhausted(t *testing.T) {
	repo, mock := newMockRepo(t)
	booking := repoBooking()
	promoID := uuid.New()
	booking.PromoCodeID = &promoID

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=available_rooms - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(booking.ID.String()))
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=used_count \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), booking)
	assert.ErrorIs(t, err, ErrPromoExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCancelReleasesRooms(t *testing.T) {
	repo, mock := newMockRepo(t)
	booking := repoBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .*"status"=\$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "rooms" SET "available_rooms"=LEAST\(available_rooms \+ \$1, total_rooms\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Cancel(context.Background(), booking, time.Now()))
	assert.Equal(t, StatusCancelled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCancelTwice(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Cancel(context.Background(), repoBooking(), time.Now())
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE user_id = \$1 AND status = \$2`).
		WithArgs("user-1", "CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE user_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_ref", "status"}).AddRow(id.String(), "RS-20260601-ABCDEF", "CONFIRMED"))

	bookings, total, err := repo.ListByUser(context.Background(), "user-1", BookingListQuery{Page: 2, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, id, bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListStaysInRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	booking := repoBooking()
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE room_id = \$1 AND status IN \(\$2,\$3\) AND check_in < \$4 AND check_out > \$5 ORDER BY check_in ASC`).
		WithArgs(booking.RoomID, "CONFIRMED", "COMPLETED", to, from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "status", "room_count", "check_in", "check_out"}).
			AddRow(booking.ID.String(), booking.RoomID.String(), "CONFIRMED", 1, booking.CheckIn, booking.CheckOut))

	stays, err := repo.ListStaysInRange(context.Background(), booking.RoomID, from, to)
	require.NoError(t, err)
	require.Len(t, stays, 1)
	assert.Equal(t, booking.ID, stays[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
}
