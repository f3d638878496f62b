package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inventory is the crate stock for one calendar date. Date is normalized to
// midnight UTC and unique per document.
type Inventory struct {
	ID           primitive.ObjectID `bson:"_id"`
	Inventory_id string             `json:"inventory_id"`
	Date         time.Time          `json:"date"`
	Crate_counts CrateCounts        `json:"crate_counts"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}

// LowStock returns the crate fields whose count is below threshold, in
// CrateFields order.
func (c CrateCounts) LowStock(threshold int) []string {
	counts := c.AsMap()
	var low []string
	for _, field := range CrateFields {
		if counts[field] < threshold {
			low = append(low, field)
		}
	}
	return low
}
