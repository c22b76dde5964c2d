package services

import (
	"fmt"
	"time"

	"github.com/joshua-takyi/villastay/internal/models"
)

// Overlaps applies the three-way rule against the half-open stay [checkIn, checkOut):
// the booking starts inside the stay, ends inside it, or encloses it.
func Overlaps(b models.Booking, checkIn, checkOut time.Time) bool {
	in, out := models.DateOnly(checkIn), models.DateOnly(checkOut)
	bIn, bOut := b.CheckInDay(), b.CheckOutDay()

	startsInside := !bIn.Before(in) && bIn.Before(out)
	endsInside := bOut.After(in) && !bOut.After(out)
	encloses := !bIn.After(in) && !bOut.Before(out)
	return startsInside || endsInside || encloses
}

// BlocksAvailability reports whether the booking takes the villa off the market for the stay.
func BlocksAvailability(b models.Booking, checkIn, checkOut time.Time) bool {
	return b.Status.Holds() && Overlaps(b, checkIn, checkOut)
}

// BlockedInStay reports whether the manual block falls on a night of the stay.
func BlockedInStay(u models.UnavailableDate, checkIn, checkOut time.Time) bool {
	day := u.Day()
	return !day.Before(models.DateOnly(checkIn)) && day.Before(models.DateOnly(checkOut))
}

// IsAvailable reports whether nothing on the villa's books prevents the stay.
// Approval, activity and capacity are the store query's job.
func IsAvailable(v *models.Villa, checkIn, checkOut time.Time) bool {
	for _, b := range v.Bookings {
		if BlocksAvailability(b, checkIn, checkOut) {
			return false
		}
	}
	for _, u := range v.UnavailableDates {
		if BlockedInStay(u, checkIn, checkOut) {
			return false
		}
	}
	return true
}

// MatchesCriteria re-checks the store-side predicates in memory.
func MatchesCriteria(v *models.Villa, c SearchCriteria) bool {
	return v.IsApproved && v.IsActive &&
		v.MaxGuests >= c.Guests &&
		containsFold(v.Location, c.Location) &&
		IsAvailable(v, c.CheckIn, c.CheckOut)
}

// CheckIntegrity rejects records the filter cannot reason about safely.
func CheckIntegrity(v *models.Villa) error {
	if v.PricePerNight <= 0 {
		return fmt.Errorf("%w: villa %s has no base price", ErrDataIntegrity, v.ID)
	}
	for _, b := range v.Bookings {
		if !b.Status.Known() {
			return fmt.Errorf("%w: booking %s on villa %s has unknown status %q", ErrDataIntegrity, b.ID, v.ID, b.Status)
		}
	}
	return nil
}

// StayNights lists each night of [checkIn, checkOut) by its calendar day.
func StayNights(checkIn, checkOut time.Time) []time.Time {
	in, out := models.DateOnly(checkIn), models.DateOnly(checkOut)
	var nights []time.Time
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}
