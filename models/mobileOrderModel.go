package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MobileOrder is one item of a mobile-app cart. Items placed together share
// an order_group_id so the app can render them as a single order.
type MobileOrder struct {
	ID                       primitive.ObjectID `bson:"_id"`
	Mobile_order_id          string             `json:"mobile_order_id"`
	User_id                  *string            `json:"user_id" validate:"required"`
	Order_group_id           string             `json:"order_group_id"`
	Product_id               *string            `json:"product_id" validate:"required"`
	Product_name             *string            `json:"product_name"`
	Quantity                 int                `json:"quantity" validate:"required,gt=0"`
	Unit_type                *string            `json:"unit_type"`
	Unit_price               float64            `json:"unit_price"`
	Total_amount             float64            `json:"total_amount"`
	Start_date               time.Time          `json:"start_date"`
	Order_type               *string            `json:"order_type"`
	Status                   string             `json:"status"`
	Payment_status           string             `json:"payment_status"`
	Payment_method           *string            `json:"payment_method"`
	Payment_proof            *string            `json:"payment_proof" validate:"required,min=1"`
	Customer_name            *string            `json:"customer_name"`
	Customer_phone           *string            `json:"customer_phone"`
	Delivery_address         *string            `json:"delivery_address" validate:"required"`
	Needs_admin_verification bool               `json:"needs_admin_verification"`
	Created_at               time.Time          `json:"created_at"`
	Updated_at               time.Time          `json:"updated_at"`
}
