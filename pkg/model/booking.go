package model

import (
	"time"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking occupies a half-open interval [StartTime, EndTime) on a facility
// for one calendar date. Facility and User are referenced by id only; the
// admission service resolves them against the directories before committing.
type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FacilityID string        `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	UserID     string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Date       string        `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime  TimeOfDay     `json:"start_time" bson:"start_time" validate:"gte=0,lt=1440"`
	EndTime    TimeOfDay     `json:"end_time" bson:"end_time" validate:"gt=0,lte=1440"`
	Status     BookingStatus `json:"status" bson:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
	CreatedAt  time.Time     `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// Interval returns the booking's occupied time range.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingRequest is the inbound shape for creating a booking.
type BookingRequest struct {
	FacilityID string    `json:"facility_id" validate:"required,mongodb"`
	UserID     string    `json:"user_id" validate:"required,mongodb"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  TimeOfDay `json:"start_time" validate:"gte=0,lt=1440"`
	EndTime    TimeOfDay `json:"end_time" validate:"gt=0,lte=1440"`
}

// BookingUpdate carries the mutable fields of a booking. Only the date and
// times may change; facility reassignment is not supported.
type BookingUpdate struct {
	Date      *string    `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *TimeOfDay `json:"start_time,omitempty" validate:"omitempty,gte=0,lt=1440"`
	EndTime   *TimeOfDay `json:"end_time,omitempty" validate:"omitempty,gt=0,lte=1440"`
}
