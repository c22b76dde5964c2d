package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AvailabilityRepo interface {
	ListOpenBookings(ctx context.Context, villaID uuid.UUID) ([]Booking, error)
	ListUnavailableDates(ctx context.Context, villaID uuid.UUID) ([]UnavailableDate, error)
	AddUnavailableDate(ctx context.Context, villaID uuid.UUID, day time.Time, reason string) (*UnavailableDate, error)
	DeleteUnavailableDates(ctx context.Context, ids []uuid.UUID) (int64, error)
}

func (gr *GormRepo) ListOpenBookings(ctx context.Context, villaID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := gr.db.WithContext(ctx).
		Where("villa_id = ? AND status IN ?", villaID, OpenBookingStatuses).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

func (gr *GormRepo) ListUnavailableDates(ctx context.Context, villaID uuid.UUID) ([]UnavailableDate, error) {
	var dates []UnavailableDate
	err := gr.db.WithContext(ctx).
		Where("villa_id = ?", villaID).
		Order("date ASC").
		Find(&dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unavailable dates: %w", err)
	}
	return dates, nil
}

func (gr *GormRepo) AddUnavailableDate(ctx context.Context, villaID uuid.UUID, day time.Time, reason string) (*UnavailableDate, error) {
	block := &UnavailableDate{
		VillaID: villaID,
		Date:    datatypes.Date(DateOnly(day)),
		Reason:  reason,
	}
	if err := gr.db.WithContext(ctx).Create(block).Error; err != nil {
		return nil, fmt.Errorf("failed to create unavailable date: %w", err)
	}
	return block, nil
}

func (gr *GormRepo) DeleteUnavailableDates(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := gr.db.WithContext(ctx).Where("id IN ?", ids).Delete(&UnavailableDate{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete unavailable dates: %w", res.Error)
	}
	return res.RowsAffected, nil
}
