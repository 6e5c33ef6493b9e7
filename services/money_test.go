package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

func TestCheckMoney(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"5000", true},
		{"0.01", true},
		{"10.50", true},
		{"10.500", true},
		{"1.004", false},
		{"0.005", false},
		{"-0.001", false},
	}
	for _, tt := range tests {
		err := checkMoney("amount", dec(tt.in))
		if tt.ok {
			assert.NoError(t, err, tt.in)
		} else {
			assert.Equal(t, KindInvalidInput, KindOf(err), tt.in)
		}
	}
}

func TestMoneyInputsRejectSubCent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	number := "101"
	rt := models.RoomTypeSingle

	_, err := f.rooms.CreateRoom(ctx, f.scope, RoomInput{RoomNumber: &number, RoomType: &rt, BasePrice: decPtr("1.004")})
	requireKind(t, err, KindInvalidInput)
	_, err = f.rooms.CreateRoom(ctx, f.scope, RoomInput{RoomNumber: &number, RoomType: &rt, BasePrice: decPtr("10"), TaxRate: decPtr("7.125")})
	requireKind(t, err, KindInvalidInput)
	_, err = f.catalog.CreateService(ctx, f.scope, CreateServiceInput{Name: "Tea", Type: models.ServiceMeal, BasePrice: dec("0.015")})
	requireKind(t, err, KindInvalidInput)

	room := f.room(t, "101", "1.00")
	res := f.reservation(t, room.ID, "2025-01-01", "2025-01-02")
	before := f.snapshot(t, room.ID, res.ID, "")

	_, err = f.stays.CheckIn(ctx, f.scope, CheckInInput{
		ReservationID: res.ID,
		GuestName:     "Ada Obi",
		GuestPhone:    "080",
		PaymentMethod: models.PaymentCash,
		AmountPaid:    dec("0.005"),
	})
	requireKind(t, err, KindInvalidInput)
	_, err = f.reservations.RecordReservationPayment(ctx, f.scope, res.ID, ReservationPaymentInput{Method: models.PaymentCash, Amount: dec("0.001")})
	requireKind(t, err, KindInvalidInput)
	assert.Equal(t, before, f.snapshot(t, room.ID, res.ID, ""))

	guest := f.checkIn(t, res.ID, "0.01")
	after := f.snapshot(t, room.ID, res.ID, guest.ID)
	r := after.reservation
	assert.True(t, r.OutstandingBalance.Equal(r.TotalAmount.Sub(r.AmountPaid)))
	for _, d := range []string{r.TotalAmount.String(), r.AmountPaid.String(), r.OutstandingBalance.String()} {
		assert.NoError(t, checkMoney("stored", dec(d)), d)
	}
	assert.Equal(t, "0.99", r.OutstandingBalance.String())

	_, err = f.ledger.RecordTransaction(ctx, f.scope, RecordTransactionInput{
		Type: models.TransactionRefund, Method: models.PaymentCash, Amount: dec("0.001"), GuestID: &guest.ID,
	})
	requireKind(t, err, KindInvalidInput)
	_, err = f.ledger.SettleGuestTab(ctx, f.scope, guest.ID, SettleTabInput{Method: models.PaymentCash, Amount: dec("1.239")})
	requireKind(t, err, KindInvalidInput)
	_, err = f.stays.CheckOut(ctx, f.scope, CheckOutInput{GuestID: guest.ID, PaymentMethod: models.PaymentCash, AdditionalPayment: decPtr("0.001")})
	requireKind(t, err, KindInvalidInput)

	assert.Len(t, f.snapshot(t, room.ID, res.ID, guest.ID).transactions, len(after.transactions))
}

func TestOverpaymentPointsToRefund(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", "5000")
	res := f.reservation(t, room.ID, "2025-01-01", "2025-01-02")

	_, err := f.stays.CheckIn(context.Background(), f.scope, CheckInInput{
		ReservationID: res.ID,
		GuestName:     "Ada Obi",
		GuestPhone:    "080",
		PaymentMethod: models.PaymentCash,
		AmountPaid:    dec("5200"),
	})
	se := requireKind(t, err, KindInvalidInput)
	assert.Contains(t, se.Message, "refund")
	assert.Equal(t, "refund", se.Data["excessHandling"])
	assert.Equal(t, "200", se.Data["excess"].(decimal.Decimal).String())
	assert.Equal(t, "5000", se.Data["outstandingBalance"].(decimal.Decimal).String())

	_, err = f.reservations.RecordReservationPayment(context.Background(), f.scope, res.ID, ReservationPaymentInput{
		Method: models.PaymentCash, Amount: dec("6000"),
	})
	se = requireKind(t, err, KindInvalidInput)
	assert.Equal(t, "refund", se.Data["excessHandling"])
}

func TestCreateRoomLostRaceIsConflict(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	rooms := NewRoomService(repository.NewGormStore(db), events.Nop{}, zap.NewNop())

	// the visible check passes; the unique index catches the concurrent insert
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms` WHERE organization_id = \\? AND room_number = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `rooms`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'org-1-101' for key 'uq_room_org_live_number'"})
	mock.ExpectRollback()

	number := "101"
	rt := models.RoomTypeDouble
	_, err = rooms.CreateRoom(context.Background(), Scope{TenantID: "org-1"}, RoomInput{
		RoomNumber: &number,
		RoomType:   &rt,
		BasePrice:  decPtr("5000"),
	})
	se := requireKind(t, err, KindConflict)
	assert.Equal(t, "room number 101 already exists", se.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}
