package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightsBetween(t *testing.T) {
	day := func(s string) time.Time {
		v, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return v
	}
	tests := []struct {
		name     string
		in, out  string
		expected int
	}{
		{"two nights", "2025-01-01T00:00:00Z", "2025-01-03T00:00:00Z", 2},
		{"partial day rounds up", "2025-01-01T14:00:00Z", "2025-01-02T16:00:00Z", 2},
		{"same instant", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z", 0},
		{"inverted", "2025-01-03T00:00:00Z", "2025-01-01T00:00:00Z", -2},
		{"less than a day inverted", "2025-01-01T12:00:00Z", "2025-01-01T00:00:00Z", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NightsBetween(day(tt.in), day(tt.out)))
		})
	}
}

func TestReservationApplyPayment(t *testing.T) {
	r := &Reservation{TotalAmount: decimal.NewFromInt(10000)}
	r.ApplyPayment(decimal.NewFromInt(4000))
	assert.True(t, r.AmountPaid.Equal(decimal.NewFromInt(4000)))
	assert.True(t, r.OutstandingBalance.Equal(decimal.NewFromInt(6000)))

	r.ApplyPayment(decimal.NewFromInt(6000))
	assert.True(t, r.OutstandingBalance.IsZero())
}

func TestReservationTransitions(t *testing.T) {
	r := &Reservation{Status: ReservationPending}
	require.NoError(t, r.TransitionTo(ReservationConfirmed))
	require.NoError(t, r.TransitionTo(ReservationCheckedIn))
	assert.Error(t, r.TransitionTo(ReservationCanceled))
	assert.True(t, ReservationCheckedIn.Terminal())
	assert.True(t, ReservationNoShow.Terminal())
	assert.False(t, ReservationConfirmed.Terminal())
}

func TestSumUnpaid(t *testing.T) {
	items := []GuestTabItem{
		{Amount: decimal.NewFromInt(1500)},
		{Amount: decimal.NewFromInt(700), IsPaid: true},
		{Amount: decimal.RequireFromString("250.50")},
	}
	assert.Equal(t, "1750.5", SumUnpaid(items).String())
}
