package models

import "time"

// Booking represents a confirmed booking record as persisted by the
// external booking store.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ServiceType     string    `bson:"service_type" json:"serviceType"`
	Start           time.Time `bson:"start" json:"start"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	CustomerName    string    `bson:"customer_name" json:"customerName"`
	CustomerEmail   string    `bson:"customer_email" json:"customerEmail"`
	Address         string    `bson:"address" json:"address"`
	TotalPrice      float64   `bson:"total_price" json:"totalPrice"`
	DistanceMiles   float64   `bson:"distance_miles" json:"distanceMiles"`
	DistanceSource  string    `bson:"distance_source" json:"distanceSource"`
	Status          string    `bson:"status" json:"status"` // e.g., "Confirmed"
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// BookingDetails is the customer-supplied input to booking creation.
type BookingDetails struct {
	ServiceType   string `json:"serviceType"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Address       string `json:"address"`
	PromotionCode string `json:"promotionCode,omitempty"`
}

// BookingNotification is the payload handed to the notification worker
// after a booking is confirmed. Delivery itself is out of engine scope.
type BookingNotification struct {
	BookingID     string    `json:"bookingId"`
	ServiceType   string    `json:"serviceType"`
	Start         time.Time `json:"start"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	TotalPrice    float64   `json:"totalPrice"`
}
