package services

import (
	"context"
	"strings"

	"github.com/joshua-takyi/villastay/internal/models"
)

type LocationInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	Popular bool   `json:"popular"`
}

type LocationService struct {
	locationsRepo models.LocationsRepo
}

func NewLocationService(locationsRepo models.LocationsRepo) *LocationService {
	return &LocationService{locationsRepo: locationsRepo}
}

func (ls *LocationService) List(ctx context.Context) ([]*models.Location, error) {
	locations, err := ls.locationsRepo.ListLocations(ctx)
	if err != nil {
		return nil, storeErr(err, "list locations")
	}
	return locations, nil
}

func (ls *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.State = strings.TrimSpace(in.State)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	location, err := ls.locationsRepo.CreateLocation(ctx, &models.Location{
		Name:    in.Name,
		State:   in.State,
		Popular: in.Popular,
	})
	if err != nil {
		return nil, storeErr(err, "create location")
	}
	return location, nil
}
