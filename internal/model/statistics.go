package model

import (
	"time"
)

// StatisticsResponse aggregates booking totals for the admin dashboard
type StatisticsResponse struct {
	TotalBookings      int              `json:"total_bookings"`
	PendingBookings    int              `json:"pending_bookings"`
	ConfirmedBookings  int              `json:"confirmed_bookings"`
	CompletedBookings  int              `json:"completed_bookings"`
	CancelledBookings  int              `json:"cancelled_bookings"`
	TotalRevenue       float64          `json:"total_revenue"`
	UnreadContacts     int              `json:"unread_contacts"`
	TopVehicles        []VehicleRanking `json:"top_vehicles"`
	TimeRangeStartDate time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time        `json:"time_range_end_date"`
}

// VehicleRanking represents a vehicle ranked by booking volume and revenue
type VehicleRanking struct {
	VehicleSlug   string  `json:"vehicle_slug"`
	VehicleName   string  `json:"vehicle_name"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}
