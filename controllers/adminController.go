package controllers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validStatuses = map[string]bool{
	models.StatusPending:        true,
	models.StatusReadyForPickup: true,
	models.StatusOutForDelivery: true,
	models.StatusDelivered:      true,
	models.StatusCancelled:      true,
}

var validPaymentStatuses = map[string]bool{
	models.PaymentPending:  true,
	models.PaymentPaid:     true,
	models.PaymentRejected: true,
}

func todayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// GetDashboard aggregates the admin landing-page metrics for today.
func GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		dayStart, dayEnd := todayWindow(time.Now().UTC())
		todayFilter := bson.M{"delivery_date": bson.M{"$gte": dayStart, "$lt": dayEnd}}

		ordersToday, err := orderCollection.CountDocuments(ctx, todayFilter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while counting orders"})
			return
		}

		matchStage := bson.D{{"$match", bson.D{{"delivery_date", bson.D{{"$gte", dayStart}, {"$lt", dayEnd}}}}}}
		groupByStatus := bson.D{{"$group", bson.D{
			{"_id", "$status"},
			{"count", bson.D{{"$sum", 1}}},
		}}}

		cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupByStatus})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating order statuses"})
			return
		}
		var statusRows []bson.M
		if err := cursor.All(ctx, &statusRows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		statusCounts := gin.H{}
		for _, row := range statusRows {
			if status, ok := row["_id"].(string); ok {
				statusCounts[status] = row["count"]
			}
		}

		matchPaid := bson.D{{"$match", bson.D{
			{"delivery_date", bson.D{{"$gte", dayStart}, {"$lt", dayEnd}}},
			{"payment_status", models.PaymentPaid},
		}}}
		groupRevenue := bson.D{{"$group", bson.D{
			{"_id", nil},
			{"total", bson.D{{"$sum", "$total_amount"}}},
		}}}

		cursor, err = orderCollection.Aggregate(ctx, mongo.Pipeline{matchPaid, groupRevenue})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating revenue"})
			return
		}
		var revenueRows []bson.M
		if err := cursor.All(ctx, &revenueRows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		revenue := 0.0
		if len(revenueRows) > 0 {
			switch v := revenueRows[0]["total"].(type) {
			case float64:
				revenue = v
			case int32:
				revenue = float64(v)
			case int64:
				revenue = float64(v)
			}
		}

		pendingVerification, err := mobileOrderCollection.CountDocuments(ctx, bson.M{"needs_admin_verification": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while counting mobile orders"})
			return
		}

		lowStock := []string{}
		var inventory models.Inventory
		if err := inventoryCollection.FindOne(ctx, bson.M{"date": dayStart}).Decode(&inventory); err == nil {
			lowStock = inventory.Crate_counts.LowStock(LowStockThreshold())
		}

		c.JSON(http.StatusOK, gin.H{
			"orders_today":         ordersToday,
			"status_counts":        statusCounts,
			"revenue_paid":         revenue,
			"pending_verification": pendingVerification,
			"low_stock":            lowStock,
		})
	}
}

// GetAdminOrders lists web orders, optionally filtered by ?date= and
// ?status=.
func GetAdminOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if rawDate := c.Query("date"); rawDate != "" {
			date, err := parseDeliveryDate(rawDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter["delivery_date"] = bson.M{"$gte": date, "$lt": date.Add(24 * time.Hour)}
		}
		if status := c.Query("status"); status != "" {
			if !validStatuses[status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{"created_at", -1}})
		cursor, err := orderCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetAdminMobileOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if c.Query("needs_verification") == "true" {
			filter["needs_admin_verification"] = true
		}

		opts := options.Find().SetSort(bson.D{{"created_at", -1}})
		cursor, err := mobileOrderCollection.Find(ctx, filter, opts)
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

func GetAdminUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{"created_at", -1}}).
			SetProjection(bson.D{
				{"password", 0},
				{"token", 0},
				{"refresh_token", 0},
			})

		cursor, err := userCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing users"})
			return
		}
		var users []bson.M
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

type statusUpdateRequest struct {
	Status         *string `json:"status"`
	Payment_status *string `json:"payment_status"`
}

// UpdateOrderStatus is the admin override. It also locks the order so the
// scheduler never fights a manual decision.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")

		var req statusUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Status == nil && req.Payment_status == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		updateObj := bson.D{}
		if req.Status != nil {
			if !validStatuses[*req.Status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			updateObj = append(updateObj, bson.E{"status", *req.Status})
			updateObj = append(updateObj, bson.E{"status_locked", true})
		}
		if req.Payment_status != nil {
			if !validPaymentStatuses[*req.Payment_status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status"})
				return
			}
			updateObj = append(updateObj, bson.E{"payment_status", *req.Payment_status})
		}
		updateObj = append(updateObj, bson.E{"updated_at", time.Now()})

		result, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{"$set", updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		notifyStatusUpdate(orderId, req.Status, req.Payment_status)
		c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
	}
}

type mobileStatusUpdateRequest struct {
	Status                   *string `json:"status"`
	Payment_status           *string `json:"payment_status"`
	Needs_admin_verification *bool   `json:"needs_admin_verification"`
}

func UpdateMobileOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		mobileOrderId := c.Param("mobile_order_id")

		var req mobileStatusUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updateObj := bson.D{}
		if req.Status != nil {
			if !validStatuses[*req.Status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			updateObj = append(updateObj, bson.E{"status", *req.Status})
		}
		if req.Payment_status != nil {
			if !validPaymentStatuses[*req.Payment_status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status"})
				return
			}
			updateObj = append(updateObj, bson.E{"payment_status", *req.Payment_status})
		}
		if req.Needs_admin_verification != nil {
			updateObj = append(updateObj, bson.E{"needs_admin_verification", *req.Needs_admin_verification})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{"updated_at", time.Now()})

		result, err := mobileOrderCollection.UpdateOne(
			ctx,
			bson.M{"mobile_order_id": mobileOrderId},
			bson.D{{"$set", updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mobile order update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "mobile order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "mobile order updated"})
	}
}

// ExportDeliveriesCSV streams the delivery run sheet for one date.
func ExportDeliveriesCSV() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		rawDate := c.Query("date")
		if rawDate == "" {
			rawDate = time.Now().UTC().Format("2006-01-02")
		}
		date, err := parseDeliveryDate(rawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{"delivery_date": bson.M{"$gte": date, "$lt": date.Add(24 * time.Hour)}}
		opts := options.Find().SetSort(bson.D{{"delivery_time", 1}})

		cursor, err := orderCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=deliveries-%s.csv", rawDate))

		writer := csv.NewWriter(c.Writer)
		header := []string{"order_id", "shop_name", "address", "delivery_time"}
		header = append(header, models.CrateFields...)
		header = append(header, "total_amount", "status", "payment_status")
		if err := writer.Write(header); err != nil {
			return
		}

		deref := func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		}
		for _, order := range orders {
			record := []string{
				order.Order_id,
				deref(order.Shop_name),
				deref(order.Address),
				deref(order.Delivery_time),
			}
			counts := order.Crate_counts.AsMap()
			for _, field := range models.CrateFields {
				record = append(record, strconv.Itoa(counts[field]))
			}
			record = append(record,
				strconv.FormatFloat(order.Total_amount, 'f', 2, 64),
				order.Status,
				order.Payment_status,
			)
			if err := writer.Write(record); err != nil {
				return
			}
		}
		writer.Flush()
	}
}
