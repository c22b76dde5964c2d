package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
	"github.com/stretchr/testify/require"
)

func availabilityFixture() (*AvailabilityService, *models.Villa, *mockAvailabilityRepo, Actor) {
	owner := Actor{ID: uuid.New(), Role: models.RoleVillaOwner}
	v := openVilla("A", "Goa", 4, 1000)
	v.OwnerID = owner.ID
	v.SaturdayPrice = price(1500)
	v.AdminSaturdayPrice = price(2000)

	avail := &mockAvailabilityRepo{
		bookings: []models.Booking{
			booking(v.ID, "2024-06-10", "2024-06-12", models.BookingConfirmed),
			booking(v.ID, "2024-06-20", "2024-06-22", models.BookingCancelled),
		},
		blocks: []models.UnavailableDate{block(v.ID, "2024-06-15")},
	}
	v.UnavailableDates = avail.blocks
	villas := &mockVillasRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Villa, error) {
			if id != v.ID {
				return nil, models.ErrNotFound
			}
			return v, nil
		},
	}
	return NewAvailabilityService(villas, avail, nil), v, avail, owner
}

func TestBlockDate_Success(t *testing.T) {
	svc, v, avail, owner := availabilityFixture()

	got, err := svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-16"})
	require.NoError(t, err)
	require.Equal(t, day("2024-06-16"), got.Day())
	require.Equal(t, "Manual block", got.Reason)
	require.Len(t, avail.blocks, 2)
}

func TestBlockDate_AlreadyBlockedIsIdempotent(t *testing.T) {
	svc, v, avail, owner := availabilityFixture()

	got, err := svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-15"})
	require.NoError(t, err)
	require.Equal(t, avail.blocks[0].ID, got.ID)
	require.Len(t, avail.blocks, 1)
}

func TestBlockDate_RefusesBookedNight(t *testing.T) {
	svc, v, _, owner := availabilityFixture()

	_, err := svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-11"})
	require.ErrorIs(t, err, ErrConflict)

	// check-out night is free again
	_, err = svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-12"})
	require.NoError(t, err)

	// cancelled bookings do not hold the night
	_, err = svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-20"})
	require.NoError(t, err)
}

func TestBlockDate_ForbiddenForOtherOwner(t *testing.T) {
	svc, v, _, _ := availabilityFixture()
	stranger := Actor{ID: uuid.New(), Role: models.RoleVillaOwner}

	_, err := svc.BlockDate(context.Background(), stranger, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-16"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestBlockDate_InvalidInput(t *testing.T) {
	svc, v, _, owner := availabilityFixture()

	_, err := svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: "nope", Date: "2024-06-16"})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.BlockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "June 16"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnblockDate(t *testing.T) {
	svc, v, avail, owner := availabilityFixture()

	removed, err := svc.UnblockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-15"})
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
	require.Equal(t, []uuid.UUID{avail.blocks[0].ID}, avail.deleted)

	_, err = svc.UnblockDate(context.Background(), owner, BlockDateInput{VillaID: v.ID.String(), Date: "2024-06-16"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCalendar_PaintsMonth(t *testing.T) {
	svc, v, _, owner := availabilityFixture()

	cal, err := svc.Calendar(context.Background(), owner, v.ID, 2024, time.June)
	require.NoError(t, err)
	require.Len(t, cal.Days, 30)
	require.Equal(t, 6, cal.Month)

	byDate := map[string]CalendarDay{}
	for _, d := range cal.Days {
		byDate[d.Date] = d
	}

	require.True(t, byDate["2024-06-10"].IsBooked)
	require.True(t, byDate["2024-06-11"].IsBooked)
	require.False(t, byDate["2024-06-12"].IsBooked, "check-out day")
	require.Equal(t, "CONFIRMED", byDate["2024-06-10"].BookingStatus)
	require.False(t, byDate["2024-06-20"].IsBooked, "cancelled")

	require.True(t, byDate["2024-06-15"].IsUnavailable)
	require.Equal(t, "Maintenance", byDate["2024-06-15"].BlockReason)

	require.Equal(t, "Saturday", byDate["2024-06-01"].Weekday)
	require.Equal(t, 2000.0, byDate["2024-06-01"].Price)
	require.True(t, byDate["2024-06-01"].IsAdminPricing)
	require.Equal(t, 2000.0, byDate["2024-06-07"].Price, "Friday")
	require.Equal(t, 1000.0, byDate["2024-06-03"].Price)
}

func TestCalendar_LeapFebruary(t *testing.T) {
	svc, v, _, owner := availabilityFixture()
	cal, err := svc.Calendar(context.Background(), owner, v.ID, 2024, time.February)
	require.NoError(t, err)
	require.Len(t, cal.Days, 29)
}

func TestCalendar_BadMonth(t *testing.T) {
	svc, v, _, owner := availabilityFixture()
	_, err := svc.Calendar(context.Background(), owner, v.ID, 2024, time.Month(13))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalendar_StoreFailure(t *testing.T) {
	svc, v, avail, owner := availabilityFixture()
	avail.err = errBoom
	_, err := svc.Calendar(context.Background(), owner, v.ID, 2024, time.June)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
