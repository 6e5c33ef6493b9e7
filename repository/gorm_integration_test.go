//go:build integration

package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/services"
)

// Run with: MYSQL_TEST_URL='user:pw@tcp(127.0.0.1:3306)/pms_test?parseTime=True' go test -tags integration ./repository/
func openTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_URL")
	if dsn == "" {
		t.Skip("MYSQL_TEST_URL not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return repository.NewGormStore(db)
}

func TestConcurrentCheckInMySQL(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	log := zap.NewNop()
	scope := services.Scope{TenantID: "it-" + time.Now().Format("150405.000000")}

	rooms := services.NewRoomService(store, nil, log)
	reservations := services.NewReservationService(store, nil, log)
	stays := services.NewStayService(store, nil, log)

	number := "IT-1"
	rt := models.RoomTypeDouble
	price := decimal.NewFromInt(5000)
	room, err := rooms.CreateRoom(ctx, scope, services.RoomInput{RoomNumber: &number, RoomType: &rt, BasePrice: &price})
	require.NoError(t, err)

	var resIDs []string
	for i := 0; i < 2; i++ {
		res, err := reservations.CreateReservation(ctx, scope, services.CreateReservationInput{
			GuestName: "Guest", GuestPhone: "1", RoomID: room.ID,
			CheckInDate: "2025-03-01", CheckOutDate: "2025-03-02",
		})
		require.NoError(t, err)
		resIDs = append(resIDs, res.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(resIDs))
	for i, id := range resIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = stays.CheckIn(ctx, scope, services.CheckInInput{
				ReservationID: id, GuestName: "Guest", GuestPhone: "1", PaymentMethod: models.PaymentCash,
			})
		}(i, id)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, services.KindConflict, services.KindOf(err))
		}
	}
	assert.Equal(t, 1, wins)

	got, err := rooms.GetRoom(ctx, scope, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, got.Status)
}

func TestConcurrentRoomCreateMySQL(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	scope := services.Scope{TenantID: "it-" + time.Now().Format("150405.000000")}
	rooms := services.NewRoomService(store, nil, zap.NewNop())

	number := "IT-7"
	rt := models.RoomTypeSingle
	price := decimal.NewFromInt(800)
	in := services.RoomInput{RoomNumber: &number, RoomType: &rt, BasePrice: &price}

	const n = 4
	var wg sync.WaitGroup
	errs := make([]error, n)
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room, err := rooms.CreateRoom(ctx, scope, in)
			errs[i] = err
			if err == nil {
				ids[i] = room.ID
			}
		}(i)
	}
	wg.Wait()

	var created string
	for i, err := range errs {
		if err == nil {
			require.Empty(t, created, "room number created twice")
			created = ids[i]
		} else {
			assert.Equal(t, services.KindConflict, services.KindOf(err))
		}
	}
	require.NotEmpty(t, created)

	// soft delete frees the number for a new room
	require.NoError(t, rooms.DeleteRoom(ctx, scope, created))
	_, err := rooms.CreateRoom(ctx, scope, in)
	require.NoError(t, err)
}
