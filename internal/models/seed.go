package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var PopularLocations = []string{
	"Lonavala",
	"Mahabaleshwar",
	"Panchgani",
	"Alibaug",
	"Matheran",
	"Karjat",
	"Igatpuri",
	"Khandala",
	"Mulshi",
	"Pawna Lake",
}

func price(v float64) *float64 { return &v }

// SeedDemoData fills an empty database with an admin, an owner, a few villas and the
// popular locations list. It does nothing once any user exists.
func (gr *GormRepo) SeedDemoData(ctx context.Context) (bool, error) {
	var users int64
	if err := gr.db.WithContext(ctx).Model(&User{}).Count(&users).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return false, nil
	}

	err := gr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := &User{ID: uuid.New(), Name: "Admin User", Email: "admin@example.com", Role: RoleAdmin}
		owner := &User{ID: uuid.New(), Name: "Villa Owner", Email: "owner@example.com", Phone: "9876543210", Role: RoleVillaOwner}
		if err := tx.Create([]*User{admin, owner}).Error; err != nil {
			return err
		}

		villas := []*Villa{
			{
				OwnerID:       owner.ID,
				Name:          "Sunset Beach Villa",
				Description:   "Beautiful beachfront villa with stunning sunset views. Perfect for family vacations.",
				Location:      "Goa",
				Address:       "Sunset Beach Road, Candolim, Goa 403515",
				MaxGuests:     8,
				Bedrooms:      4,
				Bathrooms:     3,
				Amenities:     StringList{"Pool", "WiFi", "Air Conditioning", "Beach Access", "Parking", "Kitchen"},
				Images:        StringList{"https://images.unsplash.com/photo-1571896349842-33c89424de2d"},
				PricePerNight: 5000,
				SaturdayPrice: price(6500),
				SundayPrice:   price(6000),
				OwnerPhone:    owner.Phone,
				OwnerEmail:    owner.Email,
				CheckInTime:   "14:00",
				CheckOutTime:  "11:00",
				IsApproved:    true,
				IsActive:      true,
			},
			{
				OwnerID:            owner.ID,
				Name:               "Hilltop Mist Retreat",
				Description:        "Quiet hill villa with a private garden and valley views.",
				Location:           "Lonavala",
				Address:            "Tiger Point Road, Lonavala, Maharashtra 410401",
				MaxGuests:          6,
				Bedrooms:           3,
				Bathrooms:          2,
				Amenities:          StringList{"Garden", "WiFi", "Fireplace", "Parking"},
				PricePerNight:      3500,
				WeekdayPrice:       price(3000),
				FridayPrice:        price(4000),
				SaturdayPrice:      price(4500),
				SundayPrice:        price(4200),
				AdminSaturdayPrice: price(5000),
				OwnerPhone:         owner.Phone,
				OwnerEmail:         owner.Email,
				IsApproved:         true,
				IsActive:           true,
			},
		}
		if err := tx.Omit("Owner", "Bookings", "UnavailableDates").Create(villas).Error; err != nil {
			return err
		}

		today := DateOnly(time.Now())
		booking := &Booking{
			VillaID:     villas[0].ID,
			GuestName:   "Demo Guest",
			CheckIn:     datatypes.Date(today.AddDate(0, 0, 14)),
			CheckOut:    datatypes.Date(today.AddDate(0, 0, 17)),
			Guests:      4,
			Status:      BookingConfirmed,
			TotalAmount: 16500,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		block := &UnavailableDate{
			VillaID: villas[1].ID,
			Date:    datatypes.Date(today.AddDate(0, 0, 7)),
			Reason:  "Maintenance",
		}
		if err := tx.Create(block).Error; err != nil {
			return err
		}

		locations := make([]*Location, 0, len(PopularLocations)+1)
		locations = append(locations, &Location{Name: "Goa", State: "Goa", Popular: true})
		for _, name := range PopularLocations {
			locations = append(locations, &Location{Name: name, State: "Maharashtra", Popular: true})
		}
		return tx.Create(locations).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed demo data: %w", err)
	}
	return true, nil
}
