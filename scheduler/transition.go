package scheduler

import (
	"fmt"
	"time"

	"go-milk-delivery/models"
)

// ModificationWindow is how long before the delivery time a customer may
// still edit, cancel or delete an order.
const ModificationWindow = 2 * time.Hour

// NextStatus is the single authoritative transition function for the
// delivery state machine. It advances an order at most one state per
// evaluation and only from the exact expected predecessor, so evaluating it
// twice at the same instant is a no-op and a missed evaluation never causes
// a state to be skipped.
func NextStatus(current string, minutesLeft float64) (string, bool) {
	switch {
	case minutesLeft <= 0 && current == models.StatusOutForDelivery:
		return models.StatusDelivered, true
	case minutesLeft > 0 && minutesLeft <= 60 && current == models.StatusReadyForPickup:
		return models.StatusOutForDelivery, true
	case minutesLeft > 60 && minutesLeft <= 120 && current == models.StatusPending:
		return models.StatusReadyForPickup, true
	}
	return current, false
}

// DeliveryDateTime combines an order's delivery date with its "HH:mm"
// delivery time in the date's location.
func DeliveryDateTime(date time.Time, deliveryTime string) (time.Time, error) {
	t, err := time.Parse("15:04", deliveryTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid delivery time %q: %w", deliveryTime, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// MinutesLeft returns the minutes from now until the delivery time,
// negative once the time has passed.
func MinutesLeft(now time.Time, deliveryAt time.Time) float64 {
	return deliveryAt.Sub(now).Minutes()
}

// CanModify reports whether a customer action (edit/cancel/delete) is still
// inside the modification window.
func CanModify(now time.Time, deliveryAt time.Time) bool {
	return now.Before(deliveryAt.Add(-ModificationWindow))
}
