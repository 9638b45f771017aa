package models

import "time"

// Booking is the record of a successful assignment. Bookings are
// append-only: created exactly once per successful booking call, never
// mutated or deleted.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	StartTime  time.Time `bson:"start_time" json:"startTime"`
	Host       Host      `bson:"host" json:"host"`
	GuestName  string    `bson:"guest_name" json:"guestName"`
	GuestEmail string    `bson:"guest_email" json:"guestEmail"`
	Topic      string    `bson:"topic" json:"topic"`
	MeetLink   string    `bson:"meet_link,omitempty" json:"meetLink,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Day returns the UTC calendar day the booking starts on, in
// "YYYY-MM-DD" form. The daily fairness count is keyed on this value.
func (b Booking) Day() string {
	return b.StartTime.UTC().Format("2006-01-02")
}

// BookingRequest is the guest-facing input to the booking endpoint.
type BookingRequest struct {
	StartTime  time.Time `json:"startTime" binding:"required"`
	GuestName  string    `json:"guestName" binding:"required"`
	GuestEmail string    `json:"guestEmail" binding:"required,email"`
	Topic      string    `json:"topic" binding:"required"`
}
