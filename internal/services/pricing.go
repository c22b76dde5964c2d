package services

import (
	"time"

	"github.com/joshua-takyi/villastay/internal/models"
)

const dateLayout = "2006-01-02"

// NightlyRate is the resolved price for one night of a stay.
type NightlyRate struct {
	Date           string  `json:"date"`
	Day            string  `json:"day"`
	Price          float64 `json:"price"`
	IsAdminPricing bool    `json:"isAdminPricing"`
}

// tierPrices returns the admin override and the owner price that apply on a weekday.
// Friday is governed by the Saturday admin override.
func tierPrices(v *models.Villa, day time.Weekday) (admin, owner *float64) {
	switch day {
	case time.Friday:
		return v.AdminSaturdayPrice, v.FridayPrice
	case time.Saturday:
		return v.AdminSaturdayPrice, v.SaturdayPrice
	case time.Sunday:
		return v.AdminSundayPrice, v.SundayPrice
	default:
		return v.AdminWeekdayPrice, v.WeekdayPrice
	}
}

// PriceForDate resolves the nightly price for the calendar day of date:
// admin override first, then the owner's day price, then the base price.
func PriceForDate(v *models.Villa, date time.Time) float64 {
	admin, owner := tierPrices(v, models.DateOnly(date).Weekday())
	if admin != nil {
		return *admin
	}
	if owner != nil {
		return *owner
	}
	return v.PricePerNight
}

// IsAdminPricing reports whether an admin override decides the price of date.
func IsAdminPricing(v *models.Villa, date time.Time) bool {
	admin, _ := tierPrices(v, models.DateOnly(date).Weekday())
	return admin != nil
}

func DayName(date time.Time) string {
	return models.DateOnly(date).Weekday().String()
}

// NightlyRates prices every night of [checkIn, checkOut).
func NightlyRates(v *models.Villa, checkIn, checkOut time.Time) []NightlyRate {
	nights := StayNights(checkIn, checkOut)
	rates := make([]NightlyRate, 0, len(nights))
	for _, d := range nights {
		rates = append(rates, NightlyRate{
			Date:           d.Format(dateLayout),
			Day:            DayName(d),
			Price:          PriceForDate(v, d),
			IsAdminPricing: IsAdminPricing(v, d),
		})
	}
	return rates
}

// StayTotal sums the nightly rates.
func StayTotal(rates []NightlyRate) float64 {
	var total float64
	for _, r := range rates {
		total += r.Price
	}
	return total
}
