package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
	"hotel-pms/repository"
)

func newRoom(number string) *models.Room {
	return &models.Room{
		OrganizationID: "org-1",
		RoomNumber:     number,
		RoomType:       models.RoomTypeSingle,
		BasePrice:      decimal.NewFromInt(100),
		MaxOccupancy:   2,
		Status:         models.RoomAvailable,
	}
}

func TestFailedUnitOfWorkLeavesNoTrace(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx repository.Tx) error {
		require.NoError(t, tx.CreateRoom(newRoom("101")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.WithTx(ctx, func(tx repository.Tx) error {
		rooms, err := tx.ListRooms("org-1", repository.RoomFilter{})
		assert.Empty(t, rooms)
		return err
	})
	require.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithTx(ctx, func(tx repository.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := newRoom("101")
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(room) }))

	// mutating a read without SaveRoom changes nothing
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error {
		r, err := tx.GetRoom("org-1", room.ID, true)
		if err != nil {
			return err
		}
		r.Status = models.RoomDirty
		return nil
	}))
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error {
		r, err := tx.GetRoom("org-1", room.ID, false)
		if err != nil {
			return err
		}
		assert.Equal(t, models.RoomAvailable, r.Status)
		return nil
	}))
}

func TestTenantIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := newRoom("101")
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(room) }))

	err := s.WithTx(ctx, func(tx repository.Tx) error {
		_, err := tx.GetRoom("org-2", room.ID, false)
		return err
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSoftDeleteAndDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := newRoom("101")
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(room) }))
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.DeleteRoom("org-1", room.ID) }))

	err := s.WithTx(ctx, func(tx repository.Tx) error { return tx.DeleteRoom("org-1", room.ID) })
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.CreateUser(&models.User{OrganizationID: "org-1", Email: "a@b.co", Role: models.RoleAdmin}); err != nil {
			return err
		}
		return tx.CreateUser(&models.User{OrganizationID: "org-1", Email: "A@B.co", Role: models.RoleFrontdesk})
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestMarkTabItemsPaidTwice(t *testing.T) {
	s := New()
	ctx := context.Background()
	item := &models.GuestTabItem{OrganizationID: "org-1", GuestID: "g-1", ServiceID: "s-1", Amount: decimal.NewFromInt(10)}
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateTabItem(item) }))

	mark := func() error {
		return s.WithTx(ctx, func(tx repository.Tx) error {
			return tx.MarkTabItemsPaid("org-1", []string{item.ID}, s.now())
		})
	}
	require.NoError(t, mark())
	assert.ErrorIs(t, mark(), repository.ErrLockConflict)
}

func TestLiveRoomNumbersAreUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	first := newRoom("101")
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(first) }))

	err := s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(newRoom("101")) })
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	second := newRoom("102")
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.CreateRoom(second) }))
	second.RoomNumber = "101"
	err = s.WithTx(ctx, func(tx repository.Tx) error { return tx.SaveRoom(second) })
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// a deleted room frees its number
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.DeleteRoom("org-1", first.ID) }))
	require.NoError(t, s.WithTx(ctx, func(tx repository.Tx) error { return tx.SaveRoom(second) }))
}
