package scheduler

import (
	"testing"
	"time"

	"go-milk-delivery/models"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		minutesLeft float64
		want        string
		wantChanged bool
	}{
		{"far out stays pending", models.StatusPending, 300, models.StatusPending, false},
		{"just above window stays pending", models.StatusPending, 121, models.StatusPending, false},
		{"pending at 120 becomes ready", models.StatusPending, 120, models.StatusReadyForPickup, true},
		{"pending at 90 becomes ready", models.StatusPending, 90, models.StatusReadyForPickup, true},
		{"pending at 61 becomes ready", models.StatusPending, 61, models.StatusReadyForPickup, true},
		{"ready at 60 goes out", models.StatusReadyForPickup, 60, models.StatusOutForDelivery, true},
		{"ready at 30 goes out", models.StatusReadyForPickup, 30, models.StatusOutForDelivery, true},
		{"out at 0 is delivered", models.StatusOutForDelivery, 0, models.StatusDelivered, true},
		{"out past due is delivered", models.StatusOutForDelivery, -45, models.StatusDelivered, true},

		// Transitions fire only from the exact predecessor state.
		{"pending does not skip to out", models.StatusPending, 30, models.StatusPending, false},
		{"pending does not skip to delivered", models.StatusPending, -10, models.StatusPending, false},
		{"ready too early does not fire", models.StatusReadyForPickup, 90, models.StatusReadyForPickup, false},
		{"ready past due does not jump", models.StatusReadyForPickup, -5, models.StatusReadyForPickup, false},
		{"delivered is terminal", models.StatusDelivered, -10, models.StatusDelivered, false},
		{"cancelled is terminal", models.StatusCancelled, 90, models.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := NextStatus(tt.current, tt.minutesLeft)
			if got != tt.want || changed != tt.wantChanged {
				t.Errorf("NextStatus(%q, %v) = (%q, %v), want (%q, %v)",
					tt.current, tt.minutesLeft, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

func TestNextStatusIdempotent(t *testing.T) {
	// Two evaluations at the same instant must advance exactly once.
	first, changed := NextStatus(models.StatusPending, 90)
	if !changed || first != models.StatusReadyForPickup {
		t.Fatalf("first evaluation = (%q, %v)", first, changed)
	}
	second, changed := NextStatus(first, 90)
	if changed {
		t.Errorf("second evaluation advanced again to %q", second)
	}
}

func TestNextStatusRecoversOneStatePerPass(t *testing.T) {
	// An order stuck in Pending past its delivery time needs three passes
	// with advancing clocks to reach Delivered; a single late pass moves it
	// nowhere because no rule matches Pending below 61 minutes.
	status := models.StatusPending
	for i, minutesLeft := range []float64{90, 45, -1} {
		next, changed := NextStatus(status, minutesLeft)
		if !changed {
			t.Fatalf("pass %d from %q at %v did not advance", i, status, minutesLeft)
		}
		status = next
	}
	if status != models.StatusDelivered {
		t.Errorf("after three passes status = %q, want %q", status, models.StatusDelivered)
	}
}

func TestDeliveryDateTime(t *testing.T) {
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	got, err := DeliveryDateTime(date, "07:30")
	if err != nil {
		t.Fatalf("DeliveryDateTime: %v", err)
	}
	want := time.Date(2025, time.March, 14, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DeliveryDateTime = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "7:3a", "25:00", "07.30"} {
		if _, err := DeliveryDateTime(date, bad); err == nil {
			t.Errorf("DeliveryDateTime(%q) accepted invalid time", bad)
		}
	}
}

func TestMinutesLeft(t *testing.T) {
	now := time.Date(2025, time.March, 14, 6, 0, 0, 0, time.UTC)
	deliveryAt := now.Add(90 * time.Minute)

	if got := MinutesLeft(now, deliveryAt); got != 90 {
		t.Errorf("MinutesLeft = %v, want 90", got)
	}
	if got := MinutesLeft(now.Add(2*time.Hour), deliveryAt); got != -30 {
		t.Errorf("MinutesLeft past due = %v, want -30", got)
	}
}

func TestCanModify(t *testing.T) {
	deliveryAt := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before window", deliveryAt.Add(-3 * time.Hour), true},
		{"one second before cutoff", deliveryAt.Add(-2*time.Hour - time.Second), true},
		{"exactly at cutoff", deliveryAt.Add(-2 * time.Hour), false},
		{"inside window", deliveryAt.Add(-time.Hour), false},
		{"after delivery", deliveryAt.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.now, deliveryAt); got != tt.want {
				t.Errorf("CanModify(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
