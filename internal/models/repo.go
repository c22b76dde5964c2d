package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var Validate = validator.New()

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// GormRepo is the relational store behind every repo interface in this package.
// The same code runs against SQLite and PostgreSQL; the dialect is picked by connect.OpenDatabase.
type GormRepo struct {
	db *gorm.DB
}

func GormNewRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

// Migrate creates or updates every table the service owns.
func (gr *GormRepo) Migrate(ctx context.Context) error {
	err := gr.db.WithContext(ctx).AutoMigrate(
		&User{}, // referenced by villas, create first
		&Villa{},
		&Booking{},
		&UnavailableDate{},
		&Location{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return gr.backfillLocationKeys(ctx)
}

// backfillLocationKeys folds locations of rows written before location_key existed.
func (gr *GormRepo) backfillLocationKeys(ctx context.Context) error {
	var villas []*Villa
	err := gr.db.WithContext(ctx).
		Select("id", "location").
		Where("location_key = '' AND location <> ''").
		Find(&villas).Error
	if err != nil {
		return fmt.Errorf("failed to read villa locations: %w", err)
	}
	for _, v := range villas {
		err := gr.db.WithContext(ctx).
			Model(&Villa{}).
			Where("id = ?", v.ID).
			UpdateColumn("location_key", FoldLocation(v.Location)).Error
		if err != nil {
			return fmt.Errorf("failed to backfill location key: %w", err)
		}
	}
	return nil
}

func (gr *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := gr.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Counts reports how many users and villas are stored.
func (gr *GormRepo) Counts(ctx context.Context) (users, villas int64, err error) {
	db := gr.db.WithContext(ctx)
	if err = db.Model(&User{}).Count(&users).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if err = db.Model(&Villa{}).Count(&villas).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count villas: %w", err)
	}
	return users, villas, nil
}
