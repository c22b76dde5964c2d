package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/services"
)

type approvalRequest struct {
	VillaID    uuid.UUID `json:"villaId" binding:"required"`
	IsApproved *bool     `json:"isApproved" binding:"required"`
}

type adminStatusRequest struct {
	VillaID  uuid.UUID `json:"villaId" binding:"required"`
	IsActive *bool     `json:"isActive" binding:"required"`
}

func AdminListVillas(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
		villas, total, err := v.ListVillas(c.Request.Context(), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		page := (offset / limit) + 1
		c.JSON(http.StatusOK, helpers.PaginatedResponse(villas, page, limit, total))
	}
}

func AdminGetVilla(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		villa, err := v.GetVilla(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villa, ""))
	}
}

func AdminUpdateVilla(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var in services.AdminVillaInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		villa, err := v.UpdateVilla(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villa, "Villa updated successfully"))
	}
}

func AdminSetApproval(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req approvalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("villaId and isApproved are required"))
			return
		}
		villa, err := v.SetApproval(c.Request.Context(), req.VillaID, *req.IsApproved)
		if err != nil {
			respondError(c, err)
			return
		}
		message := "Villa rejected"
		if *req.IsApproved {
			message = "Villa approved"
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villa, message))
	}
}

func AdminSetStatus(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		var req adminStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("villaId and isActive are required"))
			return
		}
		villa, err := v.SetActive(c.Request.Context(), actor, req.VillaID, *req.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villa, "Villa status updated"))
	}
}

func AdminStats(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := v.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}

func ListLocations(l *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locations, err := l.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(locations, ""))
	}
}

func CreateLocation(l *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.LocationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		location, err := l.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(location, "Location created"))
	}
}

func AdminSetUserRole(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		var req services.SetRoleInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("userId and role are required"))
			return
		}
		user, err := u.SetRole(c.Request.Context(), actor, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(user, "User role updated"))
	}
}
