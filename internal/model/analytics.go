package model

import "time"

// AnalyticsSummary aggregates bookings and revenue for the dashboard.
type AnalyticsSummary struct {
	From             time.Time          `json:"from"`
	To               time.Time          `json:"to"`
	TotalBookings    int                `json:"total_bookings"`
	BookingsByStatus map[string]int     `json:"bookings_by_status"`
	RevenuePence     int64              `json:"revenue_pence"`
	TopServices      []ServiceBreakdown `json:"top_services"`
	NewCustomers     int                `json:"new_customers"`
}

type ServiceBreakdown struct {
	ServiceID    string `db:"service_id" json:"service_id"`
	ServiceName  string `db:"service_name" json:"service_name"`
	Bookings     int    `db:"bookings" json:"bookings"`
	RevenuePence int64  `db:"revenue_pence" json:"revenue_pence"`
}
