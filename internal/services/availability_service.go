package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
)

const defaultBlockReason = "Manual block"

type BlockDateInput struct {
	VillaID string `json:"villaId" validate:"required,uuid"`
	Date    string `json:"date" validate:"required"`
	Reason  string `json:"reason" validate:"omitempty,max=200"`
}

// CalendarDay is one cell of an owner's month view.
type CalendarDay struct {
	Date           string     `json:"date"`
	Day            int        `json:"day"`
	Weekday        string     `json:"weekday"`
	IsBooked       bool       `json:"isBooked"`
	IsUnavailable  bool       `json:"isUnavailable"`
	BookingID      *uuid.UUID `json:"bookingId,omitempty"`
	BookingStatus  string     `json:"bookingStatus,omitempty"`
	BlockReason    string     `json:"blockReason,omitempty"`
	Price          float64    `json:"price"`
	IsAdminPricing bool       `json:"isAdminPricing"`
}

type CalendarMonth struct {
	VillaID uuid.UUID     `json:"villaId"`
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Days    []CalendarDay `json:"days"`
}

type AvailabilityService struct {
	villasRepo       models.VillasRepo
	availabilityRepo models.AvailabilityRepo
	logger           *slog.Logger
}

func NewAvailabilityService(villasRepo models.VillasRepo, availabilityRepo models.AvailabilityRepo, logger *slog.Logger) *AvailabilityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityService{
		villasRepo:       villasRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

func (as *AvailabilityService) managedVilla(ctx context.Context, actor Actor, id uuid.UUID) (*models.Villa, error) {
	villa, err := as.villasRepo.GetVillaByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get villa")
	}
	if !actor.CanManage(villa) {
		return nil, fmt.Errorf("%w: villa %s belongs to another owner", ErrForbidden, id)
	}
	return villa, nil
}

func parseBlockInput(in BlockDateInput) (uuid.UUID, time.Time, error) {
	if err := validateStruct(in); err != nil {
		return uuid.Nil, time.Time{}, err
	}
	villaID, err := uuid.Parse(in.VillaID)
	if err != nil {
		return uuid.Nil, time.Time{}, &ValidationError{Fields: map[string]string{"villaId": "must be a valid id"}}
	}
	day, err := ParseDate(in.Date)
	if err != nil {
		return uuid.Nil, time.Time{}, &ValidationError{Fields: map[string]string{"date": "must be a date"}}
	}
	return villaID, day, nil
}

// BlockDate takes one night off the market. Nights held by a booking cannot be blocked,
// and blocking an already blocked night returns the existing block.
func (as *AvailabilityService) BlockDate(ctx context.Context, actor Actor, in BlockDateInput) (*models.UnavailableDate, error) {
	villaID, day, err := parseBlockInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := as.managedVilla(ctx, actor, villaID); err != nil {
		return nil, err
	}

	bookings, err := as.availabilityRepo.ListOpenBookings(ctx, villaID)
	if err != nil {
		return nil, storeErr(err, "list bookings")
	}
	for _, b := range bookings {
		if BlocksAvailability(b, day, day.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("%w: %s is already booked", ErrConflict, day.Format(dateLayout))
		}
	}

	blocks, err := as.availabilityRepo.ListUnavailableDates(ctx, villaID)
	if err != nil {
		return nil, storeErr(err, "list unavailable dates")
	}
	for i := range blocks {
		if blocks[i].Day().Equal(day) {
			return &blocks[i], nil
		}
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = defaultBlockReason
	}
	block, err := as.availabilityRepo.AddUnavailableDate(ctx, villaID, day, reason)
	if err != nil {
		return nil, storeErr(err, "block date")
	}
	as.logger.Info("Date blocked", "villa_id", villaID, "date", day.Format(dateLayout), "by", actor.ID)
	return block, nil
}

// UnblockDate removes every block on the given night and reports how many were removed.
func (as *AvailabilityService) UnblockDate(ctx context.Context, actor Actor, in BlockDateInput) (int64, error) {
	villaID, day, err := parseBlockInput(in)
	if err != nil {
		return 0, err
	}
	if _, err := as.managedVilla(ctx, actor, villaID); err != nil {
		return 0, err
	}

	blocks, err := as.availabilityRepo.ListUnavailableDates(ctx, villaID)
	if err != nil {
		return 0, storeErr(err, "list unavailable dates")
	}
	var ids []uuid.UUID
	for _, b := range blocks {
		if b.Day().Equal(day) {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s is not blocked", ErrNotFound, day.Format(dateLayout))
	}

	removed, err := as.availabilityRepo.DeleteUnavailableDates(ctx, ids)
	if err != nil {
		return 0, storeErr(err, "unblock date")
	}
	as.logger.Info("Date unblocked", "villa_id", villaID, "date", day.Format(dateLayout), "by", actor.ID)
	return removed, nil
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Calendar paints one month for the villa: bookings, blocks and the price of every night.
func (as *AvailabilityService) Calendar(ctx context.Context, actor Actor, villaID uuid.UUID, year int, month time.Month) (*CalendarMonth, error) {
	if month < time.January || month > time.December || year < 1970 || year > 9999 {
		return nil, &ValidationError{Fields: map[string]string{"month": "must be a valid year and month"}}
	}
	villa, err := as.managedVilla(ctx, actor, villaID)
	if err != nil {
		return nil, err
	}
	bookings, err := as.availabilityRepo.ListOpenBookings(ctx, villaID)
	if err != nil {
		return nil, storeErr(err, "list bookings")
	}

	days := daysIn(month, year)
	out := &CalendarMonth{
		VillaID: villaID,
		Year:    year,
		Month:   int(month),
		Days:    make([]CalendarDay, 0, days),
	}
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		next := date.AddDate(0, 0, 1)
		cell := CalendarDay{
			Date:           date.Format(dateLayout),
			Day:            d,
			Weekday:        DayName(date),
			Price:          PriceForDate(villa, date),
			IsAdminPricing: IsAdminPricing(villa, date),
		}
		for _, b := range bookings {
			if BlocksAvailability(b, date, next) {
				id := b.ID
				cell.IsBooked = true
				cell.BookingID = &id
				cell.BookingStatus = string(b.Status)
				break
			}
		}
		for _, u := range villa.UnavailableDates {
			if BlockedInStay(u, date, next) {
				cell.IsUnavailable = true
				cell.BlockReason = u.Reason
				break
			}
		}
		out.Days = append(out.Days, cell)
	}
	return out, nil
}
