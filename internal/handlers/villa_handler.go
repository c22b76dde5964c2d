package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/services"
)

type statusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func RegisterVilla(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		var in services.VillaInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		villa, err := v.RegisterVilla(c.Request.Context(), actor, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(villa, "Villa registered successfully. It will be visible after admin approval."))
	}
}

func ListMyVillas(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		villas, err := v.ListMyVillas(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villas, ""))
	}
}

func SetVillaStatus(v *services.VillasService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("isActive is required"))
			return
		}
		villa, err := v.SetActive(c.Request.Context(), actor, id, *req.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(villa, "Villa status updated"))
	}
}

// VillaCalendar paints one month; year and month default to the current ones.
func VillaCalendar(a *services.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		now := time.Now().UTC()
		year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid year parameter"))
			return
		}
		month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid month parameter"))
			return
		}
		calendar, err := a.Calendar(c.Request.Context(), actor, id, year, time.Month(month))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(calendar, ""))
	}
}

func BlockDate(a *services.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		var in services.BlockDateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		block, err := a.BlockDate(c.Request.Context(), actor, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(block, "Date marked as unavailable"))
	}
}

// UnblockDate reads villaId and date from the query string.
func UnblockDate(a *services.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		in := services.BlockDateInput{
			VillaID: c.Query("villaId"),
			Date:    c.Query("date"),
		}
		removed, err := a.UnblockDate(c.Request.Context(), actor, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"removed": removed}, "Date marked as available"))
	}
}
