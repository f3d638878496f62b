package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mobileOrderCollection *mongo.Collection = database.OpenCollection(database.Client, "mobile_order")

type mobileOrderItem struct {
	Product_id string `json:"productId"`
	Quantity   int    `json:"quantity"`
	Unit_type  string `json:"unitType"`
}

// PlaceMobileOrder accepts a multipart cart from the mobile app. The
// "items" field is a JSON array; every item becomes its own document
// sharing one order_group_id and the single uploaded payment proof. Prices
// come from the catalog, never from the app.
func PlaceMobileOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")

		var items []mobileOrderItem
		if err := json.Unmarshal([]byte(c.PostForm("items")), &items); err != nil || len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "items must be a non-empty JSON array"})
			return
		}
		for _, item := range items {
			if item.Product_id == "" || item.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "every item needs a productId and a positive quantity"})
				return
			}
		}

		deliveryAddress := c.PostForm("deliveryAddress")
		if deliveryAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deliveryAddress is required"})
			return
		}

		startDate := time.Now().UTC().Truncate(24 * time.Hour)
		if raw := c.PostForm("startDate"); raw != "" {
			parsed, err := parseDeliveryDate(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be formatted yyyy-mm-dd"})
				return
			}
			startDate = parsed
		}

		proof, err := saveProofUpload(c, "paymentProof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderType := c.DefaultPostForm("orderType", "one-time")
		paymentMethod := c.DefaultPostForm("paymentMethod", "UPI")
		customerName := c.PostForm("customerName")
		customerPhone := c.PostForm("customerPhone")

		groupId := primitive.NewObjectID().Hex()
		now := time.Now()

		docs := make([]interface{}, 0, len(items))
		orders := make([]models.MobileOrder, 0, len(items))
		for _, item := range items {
			var product models.Product
			err := productCollection.FindOne(ctx, bson.M{"product_id": item.Product_id, "is_active": true}).Decode(&product)
			if err != nil {
				removeUpload(proof)
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product " + item.Product_id})
				return
			}

			productId := item.Product_id
			unitType := item.Unit_type
			if unitType == "" && product.Unit != nil {
				unitType = *product.Unit
			}

			order := models.MobileOrder{
				ID:                       primitive.NewObjectID(),
				User_id:                  &uid,
				Order_group_id:           groupId,
				Product_id:               &productId,
				Product_name:             product.Name,
				Quantity:                 item.Quantity,
				Unit_type:                &unitType,
				Unit_price:               product.Price,
				Total_amount:             float64(item.Quantity) * product.Price,
				Start_date:               startDate,
				Order_type:               &orderType,
				Status:                   models.StatusPending,
				Payment_status:           models.PaymentPending,
				Payment_method:           &paymentMethod,
				Payment_proof:            &proof,
				Customer_name:            &customerName,
				Customer_phone:           &customerPhone,
				Delivery_address:         &deliveryAddress,
				Needs_admin_verification: true,
				Created_at:               now,
				Updated_at:               now,
			}
			order.Mobile_order_id = order.ID.Hex()

			if validationErr := validate.Struct(&order); validationErr != nil {
				removeUpload(proof)
				c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
				return
			}
			docs = append(docs, order)
			orders = append(orders, order)
		}

		if _, err := mobileOrderCollection.InsertMany(ctx, docs); err != nil {
			removeUpload(proof)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mobile order was not created"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_group_id": groupId, "orders": orders})
	}
}

func GetMobileOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		opts := options.Find().SetSort(bson.D{{"created_at", -1}})

		cursor, err := mobileOrderCollection.Find(ctx, bson.M{"user_id": uid}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing mobile orders"})
			return
		}
		var orders []models.MobileOrder
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
