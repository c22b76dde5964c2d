package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
)

// VillaInput is what an owner submits when listing a villa.
type VillaInput struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Description   string   `json:"description" validate:"required,min=10"`
	Location      string   `json:"location" validate:"required"`
	Address       string   `json:"address" validate:"required,min=10"`
	MaxGuests     int      `json:"maxGuests" validate:"required,min=1,max=50"`
	Bedrooms      int      `json:"bedrooms" validate:"required,min=1,max=20"`
	Bathrooms     int      `json:"bathrooms" validate:"required,min=1,max=20"`
	Amenities     []string `json:"amenities" validate:"required,min=1,dive,required"`
	Images        []string `json:"images" validate:"omitempty,dive,required"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,min=100,max=100000"`

	WeekdayPrice  *float64 `json:"weekdayPrice" validate:"omitempty,gt=0"`
	FridayPrice   *float64 `json:"fridayPrice" validate:"omitempty,gt=0"`
	SaturdayPrice *float64 `json:"saturdayPrice" validate:"omitempty,gt=0"`
	SundayPrice   *float64 `json:"sundayPrice" validate:"omitempty,gt=0"`

	OwnerPhone      string `json:"ownerPhone" validate:"omitempty,min=7,max=20"`
	OwnerEmail      string `json:"ownerEmail" validate:"omitempty,email"`
	CheckInTime     string `json:"checkInTime" validate:"omitempty,datetime=15:04"`
	CheckOutTime    string `json:"checkOutTime" validate:"omitempty,datetime=15:04"`
	GoogleDriveLink string `json:"googleDriveLink" validate:"omitempty,url"`
}

// AdminVillaInput is a full edit by an admin, overrides included.
type AdminVillaInput struct {
	VillaInput
	AdminWeekdayPrice  *float64 `json:"adminWeekdayPrice" validate:"omitempty,gt=0"`
	AdminSaturdayPrice *float64 `json:"adminSaturdayPrice" validate:"omitempty,gt=0"`
	AdminSundayPrice   *float64 `json:"adminSundayPrice" validate:"omitempty,gt=0"`
}

// adminEditColumns are written on every admin edit, so omitted prices are cleared.
var adminEditColumns = []string{
	"name", "description", "location", "address",
	"max_guests", "bedrooms", "bathrooms", "amenities",
	"price_per_night", "weekday_price", "friday_price", "saturday_price", "sunday_price",
	"admin_weekday_price", "admin_saturday_price", "admin_sunday_price",
	"owner_phone", "owner_email", "check_in_time", "check_out_time", "google_drive_link",
}

func (in VillaInput) apply(v *models.Villa) {
	v.Name = strings.TrimSpace(in.Name)
	v.Description = strings.TrimSpace(in.Description)
	v.Location = strings.TrimSpace(in.Location)
	v.Address = strings.TrimSpace(in.Address)
	v.MaxGuests = in.MaxGuests
	v.Bedrooms = in.Bedrooms
	v.Bathrooms = in.Bathrooms
	v.Amenities = models.StringList(in.Amenities)
	v.Images = models.StringList(in.Images)
	v.PricePerNight = in.PricePerNight
	v.WeekdayPrice = in.WeekdayPrice
	v.FridayPrice = in.FridayPrice
	v.SaturdayPrice = in.SaturdayPrice
	v.SundayPrice = in.SundayPrice
	v.OwnerPhone = strings.TrimSpace(in.OwnerPhone)
	v.OwnerEmail = strings.TrimSpace(in.OwnerEmail)
	v.CheckInTime = in.CheckInTime
	v.CheckOutTime = in.CheckOutTime
	v.GoogleDriveLink = strings.TrimSpace(in.GoogleDriveLink)
}

type VillasService struct {
	villasRepo models.VillasRepo
	userRepo   models.UserRepo
	logger     *slog.Logger
}

func NewVillasService(villasRepo models.VillasRepo, userRepo models.UserRepo, logger *slog.Logger) *VillasService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VillasService{
		villasRepo: villasRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// RegisterVilla lists a new villa for the actor. It stays hidden from search until approved.
func (vs *VillasService) RegisterVilla(ctx context.Context, actor Actor, in VillaInput) (*models.Villa, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	role := actor.Role
	if role == "" || role == models.RoleGuest {
		role = models.RoleVillaOwner
	}
	if _, err := vs.userRepo.UpsertUser(ctx, &models.User{
		ID:    actor.ID,
		Name:  actor.Name,
		Email: actor.Email,
		Phone: strings.TrimSpace(in.OwnerPhone),
		Role:  role,
	}); err != nil {
		return nil, storeErr(err, "sync owner profile")
	}

	villa := &models.Villa{OwnerID: actor.ID}
	in.apply(villa)
	if villa.OwnerEmail == "" {
		villa.OwnerEmail = actor.Email
	}
	villa.IsApproved = false
	villa.IsActive = true

	created, err := vs.villasRepo.CreateVilla(ctx, villa)
	if err != nil {
		return nil, storeErr(err, "create villa")
	}
	vs.logger.Info("Villa registered",
		"villa_id", created.ID,
		"owner_id", actor.ID,
		"location", created.Location,
	)
	return created, nil
}

func (vs *VillasService) ListMyVillas(ctx context.Context, actor Actor) ([]*models.Villa, error) {
	villas, err := vs.villasRepo.ListVillasByOwner(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "list owner villas")
	}
	return villas, nil
}

// GetManagedVilla loads a villa the actor owns, or any villa for an admin.
func (vs *VillasService) GetManagedVilla(ctx context.Context, actor Actor, id uuid.UUID) (*models.Villa, error) {
	villa, err := vs.villasRepo.GetVillaByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get villa")
	}
	if !actor.CanManage(villa) {
		return nil, fmt.Errorf("%w: villa %s belongs to another owner", ErrForbidden, id)
	}
	return villa, nil
}

// SetActive lets an owner pause or resume their listing.
func (vs *VillasService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) (*models.Villa, error) {
	if _, err := vs.GetManagedVilla(ctx, actor, id); err != nil {
		return nil, err
	}
	villa, err := vs.villasRepo.SetActive(ctx, id, active)
	if err != nil {
		return nil, storeErr(err, "update villa status")
	}
	vs.logger.Info("Villa status changed", "villa_id", id, "is_active", active, "by", actor.ID)
	return villa, nil
}

func (vs *VillasService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Villa, error) {
	villa, err := vs.villasRepo.SetApproval(ctx, id, approved)
	if err != nil {
		return nil, storeErr(err, "update villa approval")
	}
	vs.logger.Info("Villa approval changed", "villa_id", id, "is_approved", approved)
	return villa, nil
}

func (vs *VillasService) ListVillas(ctx context.Context, offset, limit int) ([]*models.Villa, int, error) {
	villas, total, err := vs.villasRepo.ListVillas(ctx, offset, limit)
	if err != nil {
		return nil, 0, storeErr(err, "list villas")
	}
	return villas, total, nil
}

func (vs *VillasService) GetVilla(ctx context.Context, id uuid.UUID) (*models.Villa, error) {
	villa, err := vs.villasRepo.GetVillaByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get villa")
	}
	return villa, nil
}

// UpdateVilla replaces every editable field. Existing images are kept when none are sent.
func (vs *VillasService) UpdateVilla(ctx context.Context, id uuid.UUID, in AdminVillaInput) (*models.Villa, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	current, err := vs.villasRepo.GetVillaByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get villa")
	}

	changes := &models.Villa{}
	in.VillaInput.apply(changes)
	changes.AdminWeekdayPrice = in.AdminWeekdayPrice
	changes.AdminSaturdayPrice = in.AdminSaturdayPrice
	changes.AdminSundayPrice = in.AdminSundayPrice

	columns := append([]string(nil), adminEditColumns...)
	if len(in.Images) > 0 {
		columns = append(columns, "images")
	}
	if changes.OwnerEmail == "" {
		changes.OwnerEmail = current.OwnerEmail
	}

	updated, err := vs.villasRepo.UpdateVilla(ctx, id, changes, columns)
	if err != nil {
		return nil, storeErr(err, "update villa")
	}
	vs.logger.Info("Villa updated by admin", "villa_id", id)
	return updated, nil
}

func (vs *VillasService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := vs.villasRepo.Stats(ctx)
	if err != nil {
		return nil, storeErr(err, "load stats")
	}
	return stats, nil
}
