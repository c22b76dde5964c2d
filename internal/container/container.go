package container

import (
	"log/slog"

	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/models"
	"github.com/joshua-takyi/villastay/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Repo           *models.GormRepo
	TokenValidator *helpers.TokenValidator
	CORSOrigins    []string
	Environment    string

	SearchService       *services.SearchService
	VillasService       *services.VillasService
	AvailabilityService *services.AvailabilityService
	EnquiryService      *services.EnquiryService
	LocationService     *services.LocationService
	UserService         *services.UserService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	repo *models.GormRepo,
	tokenValidator *helpers.TokenValidator,
	corsOrigins []string,
	environment string,
	whatsAppNumber string,
) *Container {
	return &Container{
		Logger:              logger,
		Repo:                repo,
		TokenValidator:      tokenValidator,
		CORSOrigins:         corsOrigins,
		Environment:         environment,
		SearchService:       services.NewSearchService(repo, logger),
		VillasService:       services.NewVillasService(repo, repo, logger),
		AvailabilityService: services.NewAvailabilityService(repo, repo, logger),
		EnquiryService:      services.NewEnquiryService(repo, whatsAppNumber),
		LocationService:     services.NewLocationService(repo),
		UserService:         services.NewUserService(repo, logger),
	}
}
