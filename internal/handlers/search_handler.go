package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/services"
)

// SearchVillas answers GET /villas/search?location=&checkIn=&checkOut=&guests=
func SearchVillas(s *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.SearchRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		criteria, err := services.ParseSearchRequest(req)
		if err != nil {
			respondError(c, err)
			return
		}

		villas, err := s.Search(c.Request.Context(), criteria)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"villas":   villas,
			"count":    len(villas),
			"location": criteria.Location,
			"checkIn":  criteria.CheckIn.Format("2006-01-02"),
			"checkOut": criteria.CheckOut.Format("2006-01-02"),
			"nights":   criteria.Nights(),
			"guests":   criteria.Guests,
		}, ""))
	}
}

// ComposeEnquiry builds the WhatsApp message for the villas a guest picked.
func ComposeEnquiry(s *services.EnquiryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.EnquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		enquiry, err := s.Compose(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(enquiry, ""))
	}
}
