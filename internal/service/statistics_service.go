package service

import (
	"context"
	"time"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates booking metrics for the admin dashboard over the
// given creation-time window.
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	var response model.StatisticsResponse
	response.TimeRangeStartDate = startDate
	response.TimeRangeEndDate = endDate

	type statusCount struct {
		Status string
		Count  int
	}
	var counts []statusCount
	if err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("status, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Group("status").
		Scan(&counts).Error; err != nil {
		return response, err
	}
	for _, c := range counts {
		response.TotalBookings += c.Count
		switch c.Status {
		case model.BookingStatusPending:
			response.PendingBookings = c.Count
		case model.BookingStatusConfirmed:
			response.ConfirmedBookings = c.Count
		case model.BookingStatusCompleted:
			response.CompletedBookings = c.Count
		case model.BookingStatusCancelled:
			response.CancelledBookings = c.Count
		}
	}

	// Revenue counts confirmed and completed bookings only; cancelled and
	// still-pending totals are not money in the door.
	var revenue struct {
		Value float64
	}
	s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("COALESCE(SUM(total), 0) as value").
		Where("status IN ? AND created_at >= ? AND created_at <= ?",
			[]string{model.BookingStatusConfirmed, model.BookingStatusCompleted}, startDate, endDate).
		Scan(&revenue)
	response.TotalRevenue = revenue.Value

	var unread int64
	s.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("read = ?", false).
		Count(&unread)
	response.UnreadContacts = int(unread)

	var topVehicles []model.VehicleRanking
	s.db.WithContext(ctx).Table("bookings").
		Select("bookings.vehicle_slug as vehicle_slug, vehicles.name as vehicle_name, COUNT(*) as total_bookings, COALESCE(SUM(bookings.total), 0) as total_revenue").
		Joins("JOIN vehicles ON vehicles.slug = bookings.vehicle_slug").
		Where("bookings.status IN ? AND bookings.created_at >= ? AND bookings.created_at <= ?",
			[]string{model.BookingStatusConfirmed, model.BookingStatusCompleted}, startDate, endDate).
		Group("bookings.vehicle_slug, vehicles.name").
		Order("total_bookings DESC").
		Limit(5).
		Scan(&topVehicles)
	response.TopVehicles = topVehicles

	return response, nil
}
