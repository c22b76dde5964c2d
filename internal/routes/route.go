package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villastay/internal/container"
	"github.com/joshua-takyi/villastay/internal/handlers"
	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health(container.Repo, container.Environment))

		// public routes
		v1.GET("/villas/search", handlers.SearchVillas(container.SearchService))
		v1.POST("/villas/enquiry", handlers.ComposeEnquiry(container.EnquiryService))
		v1.GET("/locations", handlers.ListLocations(container.LocationService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.TokenValidator, container.Repo, container.Logger))

	protected.POST("/villas", handlers.RegisterVilla(container.VillasService))

	ownerRoutes := protected.Group("/villas")
	ownerRoutes.Use(middleware.RequireRole(helpers.RoleVillaOwner, helpers.RoleAdmin))
	{
		ownerRoutes.GET("/mine", handlers.ListMyVillas(container.VillasService))
		ownerRoutes.PATCH("/:id/status", handlers.SetVillaStatus(container.VillasService))
		ownerRoutes.GET("/:id/calendar", handlers.VillaCalendar(container.AvailabilityService))
		ownerRoutes.POST("/unavailable-dates", handlers.BlockDate(container.AvailabilityService))
		ownerRoutes.DELETE("/unavailable-dates", handlers.UnblockDate(container.AvailabilityService))
	}

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RequireRole(helpers.RoleAdmin))
	{
		adminRoutes.GET("/villas", handlers.AdminListVillas(container.VillasService))
		adminRoutes.GET("/villas/:id", handlers.AdminGetVilla(container.VillasService))
		adminRoutes.PUT("/villas/:id", handlers.AdminUpdateVilla(container.VillasService))
		adminRoutes.PATCH("/villas/approval", handlers.AdminSetApproval(container.VillasService))
		adminRoutes.PATCH("/villas/status", handlers.AdminSetStatus(container.VillasService))
		adminRoutes.GET("/stats", handlers.AdminStats(container.VillasService))
		adminRoutes.POST("/locations", handlers.CreateLocation(container.LocationService))
		adminRoutes.PATCH("/users/role", handlers.AdminSetUserRole(container.UserService))
	}

	return r
}
