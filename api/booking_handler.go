package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	bk "github.com/hanksha/strajk-bowling-booking/booking"
)

//go:generate mockgen -source=booking_handler.go -destination=mocks/mock_booking_service.go -package=mock_api

// msgBookingNotFound is the body clients have always received for unknown
// booking numbers.
const msgBookingNotFound = "Bokning hittades inte"

type BookingService interface {
	CreateBooking(ctx context.Context, req bk.NewBooking) (bk.Booking, error)
	FindBookingByNumber(ctx context.Context, number string) (bk.Booking, error)
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	useJSONFieldNames()

	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:bookingNumber", h.GetByNumber)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req bk.NewBooking

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "invalid booking request",
				"fields": fieldErrors(validationErrs),
			})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	inserted, err := h.service.CreateBooking(c.Request.Context(), req)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create booking",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *BookingHandler) GetByNumber(c *gin.Context) {
	number := c.Param("bookingNumber")
	booking, err := h.service.FindBookingByNumber(c.Request.Context(), number)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": msgBookingNotFound,
			})
		} else if errors.Is(err, bk.ErrMissingBookingNumber) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "booking number is required",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to fetch booking",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}
