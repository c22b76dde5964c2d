package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
)

const MaxSearchGuests = 50

// SearchRequest is the raw query as it arrives at the boundary.
type SearchRequest struct {
	Location string `form:"location" validate:"required"`
	CheckIn  string `form:"checkIn" validate:"required"`
	CheckOut string `form:"checkOut" validate:"required"`
	Guests   string `form:"guests" validate:"required"`
}

// SearchCriteria is a validated search: dates are calendar days at UTC midnight.
type SearchCriteria struct {
	Location string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

func (c SearchCriteria) Nights() int {
	return int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and keeps the calendar day as written.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrInvalidInput, s)
	}
	return models.DateOnly(t), nil
}

// ParseSearchRequest validates the raw query and turns it into criteria.
func ParseSearchRequest(req SearchRequest) (SearchCriteria, error) {
	req.Location = strings.TrimSpace(req.Location)
	if err := validateStruct(req); err != nil {
		return SearchCriteria{}, err
	}

	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		return SearchCriteria{}, &ValidationError{Fields: map[string]string{"checkIn": "must be a date"}}
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		return SearchCriteria{}, &ValidationError{Fields: map[string]string{"checkOut": "must be a date"}}
	}
	guests, err := strconv.Atoi(strings.TrimSpace(req.Guests))
	if err != nil || guests < 1 || guests > MaxSearchGuests {
		return SearchCriteria{}, &ValidationError{Fields: map[string]string{
			"guests": fmt.Sprintf("must be a whole number between 1 and %d", MaxSearchGuests),
		}}
	}
	if !checkOut.After(checkIn) {
		return SearchCriteria{}, &ValidationError{Fields: map[string]string{"checkOut": "must be after checkIn"}}
	}

	return SearchCriteria{
		Location: req.Location,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}, nil
}

type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// VillaResult is a bookable villa priced for the requested stay.
type VillaResult struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Location        string            `json:"location"`
	Address         string            `json:"address"`
	MaxGuests       int               `json:"maxGuests"`
	Bedrooms        int               `json:"bedrooms"`
	Bathrooms       int               `json:"bathrooms"`
	Amenities       models.StringList `json:"amenities"`
	Images          models.StringList `json:"images"`
	GoogleDriveLink string            `json:"googleDriveLink,omitempty"`
	CheckInTime     string            `json:"checkInTime,omitempty"`
	CheckOutTime    string            `json:"checkOutTime,omitempty"`
	Owner           *OwnerSummary     `json:"owner,omitempty"`

	PricePerNight      float64  `json:"pricePerNight"`
	WeekdayPrice       *float64 `json:"weekdayPrice"`
	FridayPrice        *float64 `json:"fridayPrice"`
	SaturdayPrice      *float64 `json:"saturdayPrice"`
	SundayPrice        *float64 `json:"sundayPrice"`
	AdminWeekdayPrice  *float64 `json:"adminWeekdayPrice"`
	AdminSaturdayPrice *float64 `json:"adminSaturdayPrice"`
	AdminSundayPrice   *float64 `json:"adminSundayPrice"`

	DisplayPrice   float64       `json:"displayPrice"`
	IsAdminPricing bool          `json:"isAdminPricing"`
	Nights         int           `json:"nights"`
	NightlyRates   []NightlyRate `json:"nightlyRates"`
	TotalPrice     float64       `json:"totalPrice"`
}

func newVillaResult(v *models.Villa, c SearchCriteria) *VillaResult {
	rates := NightlyRates(v, c.CheckIn, c.CheckOut)
	res := &VillaResult{
		ID:                 v.ID,
		Name:               v.Name,
		Description:        v.Description,
		Location:           v.Location,
		Address:            v.Address,
		MaxGuests:          v.MaxGuests,
		Bedrooms:           v.Bedrooms,
		Bathrooms:          v.Bathrooms,
		Amenities:          v.Amenities,
		Images:             v.Images,
		GoogleDriveLink:    v.GoogleDriveLink,
		CheckInTime:        v.CheckInTime,
		CheckOutTime:       v.CheckOutTime,
		PricePerNight:      v.PricePerNight,
		WeekdayPrice:       v.WeekdayPrice,
		FridayPrice:        v.FridayPrice,
		SaturdayPrice:      v.SaturdayPrice,
		SundayPrice:        v.SundayPrice,
		AdminWeekdayPrice:  v.AdminWeekdayPrice,
		AdminSaturdayPrice: v.AdminSaturdayPrice,
		AdminSundayPrice:   v.AdminSundayPrice,
		DisplayPrice:       PriceForDate(v, c.CheckIn),
		IsAdminPricing:     IsAdminPricing(v, c.CheckIn),
		Nights:             len(rates),
		NightlyRates:       rates,
		TotalPrice:         StayTotal(rates),
	}
	if v.Owner != nil {
		res.Owner = &OwnerSummary{ID: v.Owner.ID, Name: v.Owner.Name, Email: v.Owner.Email}
	}
	return res
}

type SearchService struct {
	villasRepo models.VillasRepo
	logger     *slog.Logger
}

func NewSearchService(villasRepo models.VillasRepo, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		villasRepo: villasRepo,
		logger:     logger,
	}
}

// FindAvailable returns the villas that can host the stay, cheapest first.
// Villas whose records fail the integrity check are skipped and logged.
func (ss *SearchService) FindAvailable(ctx context.Context, c SearchCriteria) ([]*models.Villa, error) {
	candidates, err := ss.villasRepo.FindSearchCandidates(ctx, c.Location, c.Guests)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	available := make([]*models.Villa, 0, len(candidates))
	for _, v := range candidates {
		if err := CheckIntegrity(v); err != nil {
			ss.logger.Warn("Skipping villa with inconsistent data",
				"villa_id", v.ID,
				"error", err.Error(),
			)
			continue
		}
		if MatchesCriteria(v, c) {
			available = append(available, v)
		}
	}
	return available, nil
}

// Search runs the availability filter and prices every surviving villa for the stay.
func (ss *SearchService) Search(ctx context.Context, c SearchCriteria) ([]*VillaResult, error) {
	villas, err := ss.FindAvailable(ctx, c)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			ss.logger.Error("Villa search failed",
				"location", c.Location,
				"error", err.Error(),
			)
		}
		return nil, err
	}

	results := make([]*VillaResult, 0, len(villas))
	for _, v := range villas {
		results = append(results, newVillaResult(v, c))
	}
	return results, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(models.FoldLocation(s), models.FoldLocation(strings.TrimSpace(substr)))
}
