package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Known reports whether s is one of the statuses the booking flow writes.
func (s BookingStatus) Known() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Holds reports whether a booking in this status keeps the villa occupied.
func (s BookingStatus) Holds() bool {
	return s == BookingPending || s == BookingConfirmed
}

// OpenBookingStatuses are the statuses that block availability.
var OpenBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	VillaID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"villaId"`
	GuestName  string    `json:"guestName,omitempty"`
	GuestPhone string    `json:"guestPhone,omitempty"`
	// check-in inclusive, check-out exclusive
	CheckIn     datatypes.Date `gorm:"not null;index" json:"checkIn"`
	CheckOut    datatypes.Date `gorm:"not null;index" json:"checkOut"`
	Guests      int            `json:"guests,omitempty"`
	Status      BookingStatus  `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	TotalAmount float64        `gorm:"type:decimal(12,2)" json:"totalAmount"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Booking) CheckInDay() time.Time {
	return DateOnly(time.Time(b.CheckIn))
}

func (b Booking) CheckOutDay() time.Time {
	return DateOnly(time.Time(b.CheckOut))
}
