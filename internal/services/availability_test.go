package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	id := uuid.New()
	in, out := day("2024-06-10"), day("2024-06-13")

	cases := []struct {
		name   string
		bIn    string
		bOut   string
		expect bool
	}{
		{"starts inside", "2024-06-11", "2024-06-20", true},
		{"starts on check-in", "2024-06-10", "2024-06-11", true},
		{"ends inside", "2024-06-05", "2024-06-11", true},
		{"ends on check-out", "2024-06-12", "2024-06-13", true},
		{"encloses", "2024-06-01", "2024-06-30", true},
		{"identical", "2024-06-10", "2024-06-13", true},
		{"ends on check-in", "2024-06-05", "2024-06-10", false},
		{"starts on check-out", "2024-06-13", "2024-06-15", false},
		{"entirely before", "2024-06-01", "2024-06-05", false},
		{"entirely after", "2024-06-20", "2024-06-25", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := booking(id, tc.bIn, tc.bOut, models.BookingConfirmed)
			require.Equal(t, tc.expect, Overlaps(b, in, out))
		})
	}
}

func TestBlocksAvailability_OnlyOpenStatuses(t *testing.T) {
	id := uuid.New()
	in, out := day("2024-06-01"), day("2024-06-03")

	for _, status := range []models.BookingStatus{models.BookingPending, models.BookingConfirmed} {
		require.True(t, BlocksAvailability(booking(id, "2024-06-02", "2024-06-05", status), in, out), status)
	}
	for _, status := range []models.BookingStatus{models.BookingCancelled, models.BookingCompleted} {
		require.False(t, BlocksAvailability(booking(id, "2024-06-02", "2024-06-05", status), in, out), status)
	}
}

func TestBlockedInStay(t *testing.T) {
	id := uuid.New()
	in, out := day("2024-06-01"), day("2024-06-03")

	require.True(t, BlockedInStay(block(id, "2024-06-01"), in, out))
	require.True(t, BlockedInStay(block(id, "2024-06-02"), in, out))
	require.False(t, BlockedInStay(block(id, "2024-06-03"), in, out), "check-out day is free")
	require.False(t, BlockedInStay(block(id, "2024-05-31"), in, out))
}

func TestIsAvailable_Scenarios(t *testing.T) {
	in, out := day("2024-06-01"), day("2024-06-03")

	v := openVilla("A", "Goa", 4, 1000)
	require.True(t, IsAvailable(v, in, out))

	v.Bookings = []models.Booking{booking(v.ID, "2024-06-02", "2024-06-05", models.BookingConfirmed)}
	require.False(t, IsAvailable(v, in, out))

	v.Bookings = nil
	v.UnavailableDates = []models.UnavailableDate{block(v.ID, "2024-06-01")}
	require.False(t, IsAvailable(v, in, out))
}

func TestCheckIntegrity(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	require.NoError(t, CheckIntegrity(v))

	v.Bookings = []models.Booking{booking(v.ID, "2024-06-02", "2024-06-05", models.BookingStatus("ON_HOLD"))}
	err := CheckIntegrity(v)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDataIntegrity))

	v.Bookings = nil
	v.PricePerNight = 0
	require.ErrorIs(t, CheckIntegrity(v), ErrDataIntegrity)
}

func TestStayNights(t *testing.T) {
	nights := StayNights(day("2024-06-30"), day("2024-07-02"))
	require.Equal(t, []string{"2024-06-30", "2024-07-01"}, []string{
		nights[0].Format(dateLayout),
		nights[1].Format(dateLayout),
	})
	require.Len(t, nights, 2)
}
