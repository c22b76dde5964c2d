package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const likeEscaper = "\\"

type VillasRepo interface {
	FindSearchCandidates(ctx context.Context, location string, guests int) ([]*Villa, error)
	CreateVilla(ctx context.Context, villa *Villa) (*Villa, error)
	GetVillaByID(ctx context.Context, id uuid.UUID) (*Villa, error)
	ListVillas(ctx context.Context, offset, limit int) ([]*Villa, int, error)
	ListVillasByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Villa, error)
	UpdateVilla(ctx context.Context, id uuid.UUID, changes *Villa, columns []string) (*Villa, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Villa, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Villa, error)
	Stats(ctx context.Context) (*Stats, error)
}

type Stats struct {
	TotalVillas      int64   `json:"totalVillas"`
	PendingApprovals int64   `json:"pendingApprovals"`
	TotalBookings    int64   `json:"totalBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// escapeLike makes user input safe to embed in a LIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscaper, likeEscaper+likeEscaper, "%", likeEscaper+"%", "_", likeEscaper+"_")
	return r.Replace(s)
}

// FindSearchCandidates returns approved, active villas that can hold the party and whose
// location contains the query (case-insensitive). Every booking and block is attached so the
// caller can run the date predicates without a second round trip.
func (gr *GormRepo) FindSearchCandidates(ctx context.Context, location string, guests int) ([]*Villa, error) {
	pattern := "%" + escapeLike(FoldLocation(strings.TrimSpace(location))) + "%"

	var villas []*Villa
	err := gr.db.WithContext(ctx).
		Where("is_approved = ? AND is_active = ?", true, true).
		Where("max_guests >= ?", guests).
		Where("location_key LIKE ? ESCAPE '\\'", pattern).
		Preload("Owner").
		Preload("Bookings").
		Preload("UnavailableDates").
		Order("price_per_night ASC").
		Order("id ASC").
		Find(&villas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query villas: %w", err)
	}
	return villas, nil
}

func (gr *GormRepo) CreateVilla(ctx context.Context, villa *Villa) (*Villa, error) {
	if err := gr.db.WithContext(ctx).Omit(clause.Associations).Create(villa).Error; err != nil {
		return nil, fmt.Errorf("failed to create villa: %w", err)
	}
	return gr.GetVillaByID(ctx, villa.ID)
}

func (gr *GormRepo) GetVillaByID(ctx context.Context, id uuid.UUID) (*Villa, error) {
	var villa Villa
	err := gr.db.WithContext(ctx).
		Preload("Owner").
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("check_in ASC") }).
		Preload("UnavailableDates", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&villa, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &villa, nil
}

func (gr *GormRepo) ListVillas(ctx context.Context, offset, limit int) ([]*Villa, int, error) {
	var total int64
	if err := gr.db.WithContext(ctx).Model(&Villa{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count villas: %w", err)
	}

	var villas []*Villa
	err := gr.db.WithContext(ctx).
		Preload("Owner").
		Preload("Bookings").
		Preload("UnavailableDates").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&villas).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get villas: %w", err)
	}
	return villas, int(total), nil
}

func (gr *GormRepo) ListVillasByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Villa, error) {
	var villas []*Villa
	err := gr.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Where("status IN ?", OpenBookingStatuses).Order("check_in ASC")
		}).
		Preload("UnavailableDates", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Order("created_at DESC").
		Find(&villas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owner villas: %w", err)
	}
	return villas, nil
}

// UpdateVilla writes exactly the listed columns from changes, including nil and zero values,
// so an admin can clear an override price.
func (gr *GormRepo) UpdateVilla(ctx context.Context, id uuid.UUID, changes *Villa, columns []string) (*Villa, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	changes.UpdatedAt = time.Now()
	selected := make([]string, 0, len(columns)+2)
	selected = append(selected, columns...)
	selected = append(selected, "updated_at")
	for _, col := range columns {
		if col == "location" {
			changes.LocationKey = FoldLocation(changes.Location)
			selected = append(selected, "location_key")
			break
		}
	}

	res := gr.db.WithContext(ctx).
		Model(&Villa{}).
		Where("id = ?", id).
		Select(selected).
		Omit(clause.Associations).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update villa: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return gr.GetVillaByID(ctx, id)
}

func (gr *GormRepo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Villa, error) {
	return gr.setFlag(ctx, id, "is_approved", approved)
}

func (gr *GormRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Villa, error) {
	return gr.setFlag(ctx, id, "is_active", active)
}

func (gr *GormRepo) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) (*Villa, error) {
	res := gr.db.WithContext(ctx).
		Model(&Villa{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{column: value, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return gr.GetVillaByID(ctx, id)
}

func (gr *GormRepo) Stats(ctx context.Context) (*Stats, error) {
	db := gr.db.WithContext(ctx)
	stats := &Stats{}

	if err := db.Model(&Villa{}).Count(&stats.TotalVillas).Error; err != nil {
		return nil, fmt.Errorf("failed to count villas: %w", err)
	}
	if err := db.Model(&Villa{}).Where("is_approved = ?", false).Count(&stats.PendingApprovals).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending villas: %w", err)
	}
	if err := db.Model(&Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	err := db.Model(&Booking{}).
		Where("status = ?", BookingConfirmed).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return stats, nil
}
