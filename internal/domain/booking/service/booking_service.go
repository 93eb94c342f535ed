package service

import (
	"errors"
	"time"

	"gemshop_api/internal/domain/booking/model"
	"gemshop_api/internal/domain/booking/repository"
	catalogmodel "gemshop_api/internal/domain/catalog/model"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrNotOwner         = errors.New("booking belongs to another user")
	ErrInvalidTimeSlot  = errors.New("booking time must be in the future")
	ErrStatusTransition = errors.New("booking is not in a cancellable state")
)

// ServiceCatalog 预约前的服务项目查询 (由 catalog 仓储提供)
type ServiceCatalog interface {
	GetServiceByID(id uint) (*catalogmodel.ServiceOffering, error)
}

type BookingService interface {
	CreateBooking(userID string, serviceID uint, bookedAt time.Time, note string) (*model.Booking, error)
	CancelBooking(userID string, bookingID uint) error
	CompleteBooking(bookingID uint) error
	GetMyBookings(userID string, page, limit int) ([]model.Booking, int64, error)
}

type bookingService struct {
	repo     repository.BookingRepository
	services ServiceCatalog
}

func NewBookingService(repo repository.BookingRepository, services ServiceCatalog) BookingService {
	return &bookingService{repo: repo, services: services}
}

func (s *bookingService) CreateBooking(userID string, serviceID uint, bookedAt time.Time, note string) (*model.Booking, error) {
	if bookedAt.Before(time.Now()) {
		return nil, ErrInvalidTimeSlot
	}

	// 服务项目必须存在，店铺从项目上带出
	offering, err := s.services.GetServiceByID(serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	booking := &model.Booking{
		UserID:    userID,
		ServiceID: serviceID,
		ShopID:    offering.ShopID,
		BookedAt:  bookedAt,
		Note:      note,
		Status:    model.StatusBooked,
	}

	if err := s.repo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(userID string, bookingID uint) error {
	booking, err := s.repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}

	// 只有 booked 状态能取消
	updated, err := s.repo.UpdateStatus(bookingID, model.StatusBooked, model.StatusCancelled)
	if err != nil {
		return err
	}
	if !updated {
		return ErrStatusTransition
	}
	return nil
}

func (s *bookingService) CompleteBooking(bookingID uint) error {
	updated, err := s.repo.UpdateStatus(bookingID, model.StatusBooked, model.StatusCompleted)
	if err != nil {
		return err
	}
	if !updated {
		return ErrStatusTransition
	}
	return nil
}

func (s *bookingService) GetMyBookings(userID string, page, limit int) ([]model.Booking, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListByUser(userID, (page-1)*limit, limit)
}
