package scheduler

import (
	"context"
	"log"
	"time"

	"go-milk-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Scheduler advances the delivery status of today's orders on a fixed
// interval. Orders whose status was set directly by an admin carry
// status_locked and are never touched.
type Scheduler struct {
	orderCollection *mongo.Collection
	interval        time.Duration
}

func New(orderCollection *mongo.Collection, interval time.Duration) *Scheduler {
	return &Scheduler{
		orderCollection: orderCollection,
		interval:        interval,
	}
}

// Start runs one pass immediately, then one per interval.
func (s *Scheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		s.runOnce()
		for range ticker.C {
			s.runOnce()
		}
	}()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	advanced, err := s.Tick(ctx, time.Now())
	if err != nil {
		log.Printf("status scheduler: %v", err)
		return
	}
	if advanced > 0 {
		log.Printf("status scheduler: advanced %d order(s)", advanced)
	}
}

// Tick evaluates every active, unlocked order due today against the
// transition function and persists the advances. Each update is filtered on
// the expected predecessor status, so a concurrent admin write makes the
// update match nothing instead of clobbering it.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (int, error) {
	// Delivery dates are stored as UTC midnight and delivery times compared
	// in UTC, matching the customer-facing modification window.
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	filter := bson.M{
		"delivery_date": bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status": bson.M{"$in": []string{
			models.StatusPending,
			models.StatusReadyForPickup,
			models.StatusOutForDelivery,
		}},
		"status_locked": bson.M{"$ne": true},
	}

	cursor, err := s.orderCollection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	advanced := 0
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			log.Printf("status scheduler: decode order: %v", err)
			continue
		}
		if order.Delivery_time == nil {
			continue
		}

		deliveryAt, err := DeliveryDateTime(order.Delivery_date, *order.Delivery_time)
		if err != nil {
			log.Printf("status scheduler: order %s: %v", order.Order_id, err)
			continue
		}

		next, changed := NextStatus(order.Status, MinutesLeft(now, deliveryAt))
		if !changed {
			continue
		}

		result, err := s.orderCollection.UpdateOne(
			ctx,
			bson.M{
				"_id":           order.ID,
				"status":        order.Status,
				"status_locked": bson.M{"$ne": true},
			},
			bson.D{{"$set", bson.D{
				{"status", next},
				{"updated_at", now},
			}}},
		)
		if err != nil {
			log.Printf("status scheduler: order %s: %v", order.Order_id, err)
			continue
		}
		if result.ModifiedCount > 0 {
			advanced++
		}
	}
	return advanced, cursor.Err()
}
