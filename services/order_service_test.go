package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/events"
	"hotel-pms/models"
)

func TestPlaceRoomTabOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "5000")
	guest := f.checkIn(t, f.reservation(t, room.ID, "2025-01-01", "2025-01-02").ID, "5000")
	svc := f.service(t, "Breakfast", "2500")

	order, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{
		ServiceID:     svc.ID,
		GuestID:       &guest.ID,
		PaymentMethod: models.OrderPayRoomTab,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Amount.Equal(dec("2500")))
	require.NotNil(t, order.RoomID)
	assert.Equal(t, room.ID, *order.RoomID)

	tab, err := f.ledger.GuestTab(ctx, f.scope, guest.ID)
	require.NoError(t, err)
	require.Len(t, tab.Items, 1)
	assert.Equal(t, order.ID, *tab.Items[0].OrderID)
	assert.True(t, tab.Balance.Equal(dec("2500")))
	assert.Contains(t, f.pub.types(), events.OrderPlaced)
}

func TestPlaceImmediateOrderLeavesTabAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "5000")
	guest := f.checkIn(t, f.reservation(t, room.ID, "2025-01-01", "2025-01-02").ID, "0")
	svc := f.service(t, "Laundry", "1200")

	_, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{
		ServiceID:     svc.ID,
		GuestID:       &guest.ID,
		PaymentMethod: models.OrderPayImmediate,
	})
	require.NoError(t, err)

	tab, err := f.ledger.GuestTab(ctx, f.scope, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, tab.Items)
	assert.True(t, tab.Balance.IsZero())

	// walk-up orders need neither guest nor room
	_, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, PaymentMethod: models.OrderPayImmediate})
	require.NoError(t, err)
}

func TestPlaceOrderRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "5000")
	res := f.reservation(t, room.ID, "2025-01-01", "2025-01-02")
	guest := f.checkIn(t, res.ID, "5000")
	svc := f.service(t, "Dinner", "4000")

	_, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, PaymentMethod: models.OrderPayRoomTab})
	requireKind(t, err, KindInvalidInput)

	_, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, GuestID: &guest.ID, PaymentMethod: "card"})
	requireKind(t, err, KindInvalidInput)

	_, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: "missing", GuestID: &guest.ID, PaymentMethod: models.OrderPayRoomTab})
	requireKind(t, err, KindNotFound)

	_, err = f.catalog.SetServiceActive(ctx, f.scope, svc.ID, false)
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, GuestID: &guest.ID, PaymentMethod: models.OrderPayRoomTab})
	requireKind(t, err, KindInvalidState)

	_, err = f.catalog.SetServiceActive(ctx, f.scope, svc.ID, true)
	require.NoError(t, err)
	_, err = f.stays.CheckOut(ctx, f.scope, CheckOutInput{GuestID: guest.ID})
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, GuestID: &guest.ID, PaymentMethod: models.OrderPayRoomTab})
	requireKind(t, err, KindInvalidState)

	tab, err := f.ledger.GuestTab(ctx, f.scope, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, tab.Items)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "5000")
	guest := f.checkIn(t, f.reservation(t, room.ID, "2025-01-01", "2025-01-02").ID, "5000")
	svc := f.service(t, "Chauffeur", "10000")

	tabOrder, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, GuestID: &guest.ID, PaymentMethod: models.OrderPayRoomTab})
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(ctx, f.scope, tabOrder.ID, models.OrderCanceled)
	requireKind(t, err, KindInvalidState)

	_, err = f.orders.UpdateOrderStatus(ctx, f.scope, tabOrder.ID, models.OrderDelivered)
	requireKind(t, err, KindInvalidState)

	o, err := f.orders.UpdateOrderStatus(ctx, f.scope, tabOrder.ID, models.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, o.Status)
	o, err = f.orders.UpdateOrderStatus(ctx, f.scope, tabOrder.ID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, o.Status)

	cash, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{ServiceID: svc.ID, PaymentMethod: models.OrderPayImmediate})
	require.NoError(t, err)
	o, err = f.orders.UpdateOrderStatus(ctx, f.scope, cash.ID, models.OrderCanceled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCanceled, o.Status)

	_, err = f.orders.UpdateOrderStatus(ctx, f.scope, cash.ID, "lost")
	requireKind(t, err, KindInvalidInput)

	delivered, err := f.orders.ListOrders(ctx, f.scope, "delivered", "")
	require.NoError(t, err)
	assert.Len(t, delivered, 1)
}

func TestRoomTabOrderStaysOnGuestRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "5000")
	other := f.room(t, "102", "5000")
	guest := f.checkIn(t, f.reservation(t, room.ID, "2025-01-01", "2025-01-02").ID, "0")
	svc := f.service(t, "Dinner", "4000")

	_, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{
		ServiceID:     svc.ID,
		GuestID:       &guest.ID,
		RoomID:        &other.ID,
		PaymentMethod: models.OrderPayRoomTab,
	})
	requireKind(t, err, KindInvalidInput)

	tab, err := f.ledger.GuestTab(ctx, f.scope, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, tab.Items)

	order, err := f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{
		ServiceID:     svc.ID,
		GuestID:       &guest.ID,
		RoomID:        &room.ID,
		PaymentMethod: models.OrderPayRoomTab,
	})
	require.NoError(t, err)
	assert.Equal(t, room.ID, *order.RoomID)

	// paid on the spot, so delivery to another room is fine
	order, err = f.orders.PlaceOrder(ctx, f.scope, PlaceOrderInput{
		ServiceID:     svc.ID,
		GuestID:       &guest.ID,
		RoomID:        &other.ID,
		PaymentMethod: models.OrderPayImmediate,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *order.RoomID)
}
