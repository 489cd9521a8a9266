package conflict

import (
	"context"
	"fmt"

	"slotly/pkg/model"
)

// BookingSource yields the bookings that already exist for a facility on a
// given date. The repository satisfies this with a narrower surface than the
// full BookingRepository, which keeps the detector easy to test.
type BookingSource interface {
	FindByFacilityAndDate(ctx context.Context, facilityID string, date string) ([]*model.Booking, error)
}

type Detector struct {
	source BookingSource
}

func NewDetector(source BookingSource) *Detector {
	return &Detector{source: source}
}

// HasConflict reports whether the candidate interval overlaps any confirmed
// booking for the facility on the given date. Cancelled bookings never
// conflict. A booking whose ID equals excludeID is skipped, so an update can
// be checked against everything except the booking being moved; pass an empty
// excludeID when admitting a new booking.
func (d *Detector) HasConflict(ctx context.Context, facilityID string, date string, interval model.Interval, excludeID string) (bool, error) {
	existing, err := d.source.FindByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings for conflict check: %w", err)
	}

	for _, b := range existing {
		if b.Status != model.StatusConfirmed {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if interval.Overlaps(b.Interval()) {
			return true, nil
		}
	}
	return false, nil
}
