package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID               primitive.ObjectID `bson:"_id"`
	Product_id       string             `json:"product_id"`
	Name             *string            `json:"name" validate:"required,min=2,max=100"`
	Brand            *string            `json:"brand" validate:"required"`
	Price            float64            `json:"price" validate:"gte=0"`
	Price_per_crate  float64            `json:"price_per_crate" validate:"gte=0"`
	Pack_size        *string            `json:"pack_size"`
	Unit             *string            `json:"unit"`
	Category         *string            `json:"category"`
	Crate_key        *string            `json:"crate_key"`
	Available        bool               `json:"available"`
	Is_active        bool               `json:"is_active"`
	Stock_quantity   int                `json:"stock_quantity" validate:"gte=0"`
	Min_stock_level  int                `json:"min_stock_level" validate:"gte=0"`
	Nutritional_info *string            `json:"nutritional_info"`
	Created_at       time.Time          `json:"created_at"`
	Updated_at       time.Time          `json:"updated_at"`
}
