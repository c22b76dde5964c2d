package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	UpsertUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	SetUserRole(ctx context.Context, id uuid.UUID, role string) (*User, error)
}

type LocationsRepo interface {
	ListLocations(ctx context.Context) ([]*Location, error)
	CreateLocation(ctx context.Context, location *Location) (*Location, error)
}

// UpsertUser keeps the local profile in step with the identity provider's claims.
func (gr *GormRepo) UpsertUser(ctx context.Context, user *User) (*User, error) {
	err := gr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (gr *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := gr.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (gr *GormRepo) SetUserRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	res := gr.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return gr.GetUserByID(ctx, id)
}

func (gr *GormRepo) ListLocations(ctx context.Context) ([]*Location, error) {
	var locations []*Location
	if err := gr.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	return locations, nil
}

func (gr *GormRepo) CreateLocation(ctx context.Context, location *Location) (*Location, error) {
	var existing Location
	err := gr.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", location.Name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check location: %w", err)
	}

	if err := gr.db.WithContext(ctx).Create(location).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return location, nil
}
