package model

import "time"

// Facility is a bookable physical resource. Capacity is informational only;
// it plays no part in conflict detection.
type Facility struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location  string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}
