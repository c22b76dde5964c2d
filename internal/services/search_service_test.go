package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/villastay/internal/models"
	"github.com/stretchr/testify/require"
)

func criteria(location, in, out string, guests int) SearchCriteria {
	return SearchCriteria{Location: location, CheckIn: day(in), CheckOut: day(out), Guests: guests}
}

func searchServiceWith(villas ...*models.Villa) *SearchService {
	repo := &mockVillasRepo{
		findCandidatesFn: func(ctx context.Context, location string, guests int) ([]*models.Villa, error) {
			return villas, nil
		},
	}
	return NewSearchService(repo, nil)
}

func TestParseSearchRequest_Valid(t *testing.T) {
	c, err := ParseSearchRequest(SearchRequest{
		Location: "  Goa ",
		CheckIn:  "2024-06-01",
		CheckOut: "2024-06-03T10:00:00Z",
		Guests:   "2",
	})
	require.NoError(t, err)
	require.Equal(t, "Goa", c.Location)
	require.Equal(t, day("2024-06-01"), c.CheckIn)
	require.Equal(t, day("2024-06-03"), c.CheckOut)
	require.Equal(t, 2, c.Guests)
	require.Equal(t, 2, c.Nights())
}

func TestParseSearchRequest_Errors(t *testing.T) {
	valid := SearchRequest{Location: "Goa", CheckIn: "2024-06-01", CheckOut: "2024-06-03", Guests: "2"}

	cases := []struct {
		name  string
		mut   func(r *SearchRequest)
		field string
	}{
		{"missing location", func(r *SearchRequest) { r.Location = "" }, "location"},
		{"blank location", func(r *SearchRequest) { r.Location = "   " }, "location"},
		{"missing check-in", func(r *SearchRequest) { r.CheckIn = "" }, "checkIn"},
		{"missing guests", func(r *SearchRequest) { r.Guests = "" }, "guests"},
		{"bad check-in", func(r *SearchRequest) { r.CheckIn = "01/06/2024" }, "checkIn"},
		{"bad check-out", func(r *SearchRequest) { r.CheckOut = "soon" }, "checkOut"},
		{"non-numeric guests", func(r *SearchRequest) { r.Guests = "two" }, "guests"},
		{"zero guests", func(r *SearchRequest) { r.Guests = "0" }, "guests"},
		{"too many guests", func(r *SearchRequest) { r.Guests = "51" }, "guests"},
		{"fractional guests", func(r *SearchRequest) { r.Guests = "2.5" }, "guests"},
		{"check-out before check-in", func(r *SearchRequest) { r.CheckOut = "2024-05-30" }, "checkOut"},
		{"same day", func(r *SearchRequest) { r.CheckOut = r.CheckIn }, "checkOut"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mut(&req)
			_, err := ParseSearchRequest(req)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestSearch_IncludesFreeVilla(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	svc := searchServiceWith(v)

	got, err := svc.FindAvailable(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, v.ID, got[0].ID)
}

func TestSearch_ExcludesOverlappingBooking(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	v.Bookings = []models.Booking{booking(v.ID, "2024-06-02", "2024-06-05", models.BookingConfirmed)}
	svc := searchServiceWith(v)

	got, err := svc.FindAvailable(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_ExcludesBlockedDate(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	v.UnavailableDates = []models.UnavailableDate{block(v.ID, "2024-06-01")}
	svc := searchServiceWith(v)

	got, err := svc.FindAvailable(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_IgnoresClosedBookings(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	v.Bookings = []models.Booking{
		booking(v.ID, "2024-06-01", "2024-06-03", models.BookingCancelled),
		booking(v.ID, "2024-06-01", "2024-06-03", models.BookingCompleted),
		booking(v.ID, "2024-05-28", "2024-06-01", models.BookingConfirmed),
	}
	svc := searchServiceWith(v)

	got, err := svc.FindAvailable(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSearch_RechecksFlagsCapacityAndLocation(t *testing.T) {
	ok := openVilla("Ok", "North Goa", 4, 1000)
	unapproved := openVilla("Unapproved", "Goa", 4, 1000)
	unapproved.IsApproved = false
	inactive := openVilla("Inactive", "Goa", 4, 1000)
	inactive.IsActive = false
	small := openVilla("Small", "Goa", 2, 1000)
	elsewhere := openVilla("Elsewhere", "Lonavala", 4, 1000)
	svc := searchServiceWith(ok, unapproved, inactive, small, elsewhere)

	got, err := svc.FindAvailable(context.Background(), criteria("goa", "2024-06-01", "2024-06-03", 3))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Ok", got[0].Name)
}

func TestSearch_SkipsInconsistentVillas(t *testing.T) {
	good := openVilla("Good", "Goa", 4, 1000)
	noPrice := openVilla("NoPrice", "Goa", 4, 0)
	odd := openVilla("Odd", "Goa", 4, 1000)
	odd.Bookings = []models.Booking{booking(odd.ID, "2025-01-01", "2025-01-02", models.BookingStatus("HELD"))}
	svc := searchServiceWith(good, noPrice, odd)

	got, err := svc.FindAvailable(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Good", got[0].Name)
}

func TestSearch_KeepsStoreOrderAndIsRepeatable(t *testing.T) {
	cheap := openVilla("Cheap", "Goa", 4, 900)
	mid := openVilla("Mid", "Goa", 4, 1500)
	dear := openVilla("Dear", "Goa", 4, 4000)
	svc := searchServiceWith(cheap, mid, dear)
	c := criteria("Goa", "2024-06-01", "2024-06-03", 2)

	first, err := svc.FindAvailable(context.Background(), c)
	require.NoError(t, err)
	second, err := svc.FindAvailable(context.Background(), c)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, []string{"Cheap", "Mid", "Dear"}, []string{first[0].Name, first[1].Name, first[2].Name})
}

func TestSearch_StoreFailure(t *testing.T) {
	repo := &mockVillasRepo{
		findCandidatesFn: func(ctx context.Context, location string, guests int) ([]*models.Villa, error) {
			return nil, errBoom
		},
	}
	svc := NewSearchService(repo, nil)

	got, err := svc.Search(context.Background(), criteria("Goa", "2024-06-01", "2024-06-03", 2))
	require.Nil(t, got)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSearch_PricesResults(t *testing.T) {
	v := openVilla("A", "Goa", 4, 1000)
	v.SaturdayPrice = price(1500)
	v.AdminSundayPrice = price(1800)
	v.Owner = &models.User{ID: v.OwnerID, Name: "Owner", Email: "owner@example.com"}
	svc := searchServiceWith(v)

	got, err := svc.Search(context.Background(), criteria("Goa", saturday, monday, 2))
	require.NoError(t, err)
	require.Len(t, got, 1)

	res := got[0]
	require.Equal(t, 1500.0, res.DisplayPrice)
	require.False(t, res.IsAdminPricing)
	require.Equal(t, 2, res.Nights)
	require.Equal(t, 3300.0, res.TotalPrice)
	require.True(t, res.NightlyRates[1].IsAdminPricing)
	require.Equal(t, "owner@example.com", res.Owner.Email)
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	svc := searchServiceWith()
	got, err := svc.Search(context.Background(), criteria("Nowhere", "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
