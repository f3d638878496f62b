package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery status values. An order moves Pending -> Ready for Pickup ->
// Out for Delivery -> Delivered; Cancelled is reachable only from Pending.
const (
	StatusPending        = "Pending"
	StatusReadyForPickup = "Ready for Pickup"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRejected = "Rejected"
)

// CrateCounts holds the per-brand crate quantities of a web order or of a
// day's inventory. Field order matches CrateFields.
type CrateCounts struct {
	Amul_taaza       int `json:"amulTaaza"`
	Amul_gold        int `json:"amulGold"`
	Amul_buffalo     int `json:"amulBuffalo"`
	Gokul_cow        int `json:"gokulCow"`
	Gokul_buffalo    int `json:"gokulBuffalo"`
	Gokul_full_cream int `json:"gokulFullCream"`
	Mahananda        int `json:"mahananda"`
}

// CrateFields lists the bson names of the seven crate fields in a stable
// order, used for price lookups, warnings and CSV columns.
var CrateFields = []string{
	"amul_taaza",
	"amul_gold",
	"amul_buffalo",
	"gokul_cow",
	"gokul_buffalo",
	"gokul_full_cream",
	"mahananda",
}

func (c CrateCounts) AsMap() map[string]int {
	return map[string]int{
		"amul_taaza":       c.Amul_taaza,
		"amul_gold":        c.Amul_gold,
		"amul_buffalo":     c.Amul_buffalo,
		"gokul_cow":        c.Gokul_cow,
		"gokul_buffalo":    c.Gokul_buffalo,
		"gokul_full_cream": c.Gokul_full_cream,
		"mahananda":        c.Mahananda,
	}
}

func (c CrateCounts) Total() int {
	total := 0
	for _, v := range c.AsMap() {
		total += v
	}
	return total
}

type Order struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Order_id           string             `json:"order_id"`
	User_id            *string            `json:"user_id" validate:"required"`
	Shop_name          *string            `json:"shop_name" validate:"required,min=2"`
	Address            *string            `json:"address" validate:"required"`
	Delivery_time      *string            `json:"delivery_time" validate:"required"`
	Delivery_date      time.Time          `json:"delivery_date"`
	Crate_counts       CrateCounts        `json:"crate_counts"`
	Payment_screenshot *string            `json:"payment_screenshot" validate:"required,min=1"`
	Payment_method     *string            `json:"payment_method"`
	Status             string             `json:"status"`
	Payment_status     string             `json:"payment_status"`
	Status_locked      bool               `json:"status_locked"`
	Total_amount       float64            `json:"total_amount"`
	Created_at         time.Time          `json:"created_at"`
	Updated_at         time.Time          `json:"updated_at"`
}
