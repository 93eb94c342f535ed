package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gemshop_api/internal/domain/booking/service"
	"gemshop_api/pkg/response"
	"gemshop_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingInput 预约入参
type CreateBookingInput struct {
	ServiceID uint      `json:"serviceId" binding:"required,gt=0"`
	BookedAt  time.Time `json:"bookedAt" binding:"required"`
	Note      string    `json:"note"`
}

// CreateBooking 预约服务
// @Summary 预约服务
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingInput true "预约信息"
// @Success 200 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := c.GetString("userID")

	booking, err := h.bookingService.CreateBooking(userID, input.ServiceID, input.BookedAt, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNotFound):
			response.Error(c, http.StatusNotFound, response.ErrServiceNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTimeSlot):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to create booking")
		}
		return
	}

	response.Success(c, booking)
}

// CancelBooking 取消预约
// @Summary 取消预约
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path int true "预约 ID"
// @Success 200 {object} response.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid booking id")
		return
	}

	userID := c.GetString("userID")

	if err := h.bookingService.CancelBooking(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, response.ErrBookingNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
		case errors.Is(err, service.ErrStatusTransition):
			response.Error(c, http.StatusConflict, response.ErrBookingCancelled, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to cancel booking")
		}
		return
	}

	response.Success(c, gin.H{"cancelled": true})
}

// CompleteBooking 完成预约 (管理端)
// @Summary 完成预约
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path int true "预约 ID"
// @Success 200 {object} response.Response
// @Router /admin/bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid booking id")
		return
	}

	if err := h.bookingService.CompleteBooking(uint(id)); err != nil {
		if errors.Is(err, service.ErrStatusTransition) {
			response.Error(c, http.StatusConflict, response.ErrBookingCancelled, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to complete booking")
		return
	}

	response.Success(c, gin.H{"completed": true})
}

// GetMyBookings 我的预约列表
// @Summary 我的预约列表
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /bookings/my [get]
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	bookings, total, err := h.bookingService.GetMyBookings(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list bookings")
		return
	}

	response.Success(c, gin.H{
		"list":  bookings,
		"total": total,
	})
}
