package controllers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/middleware"
	"go-milk-delivery/models"
	"go-milk-delivery/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

var allowedProofExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// proofUploadFile checks that the mandatory payment proof is attached and
// is an image, without writing anything to disk yet.
func proofUploadFile(c *gin.Context, field string) (*multipart.FileHeader, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s is required", field)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedProofExt[ext] {
		return nil, "", fmt.Errorf("%s must be a jpg, png or webp image", field)
	}
	return file, ext, nil
}

// storeProofUpload writes a validated proof under a uuid filename and
// returns the public /uploads path.
func storeProofUpload(c *gin.Context, file *multipart.FileHeader, ext string) (string, error) {
	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir(), name)); err != nil {
		return "", errors.New("could not store upload")
	}
	return "/uploads/" + name, nil
}

func saveProofUpload(c *gin.Context, field string) (string, error) {
	file, ext, err := proofUploadFile(c, field)
	if err != nil {
		return "", err
	}
	return storeProofUpload(c, file, ext)
}

// removeUpload deletes a stored proof again when the order it belongs to
// never made it into the database.
func removeUpload(publicPath string) {
	if publicPath == "" {
		return
	}
	os.Remove(filepath.Join(uploadDir(), filepath.Base(publicPath)))
}

// loadCratePrices maps each crate field to the per-crate price of the
// active product carrying that crate key.
func loadCratePrices(ctx context.Context) (map[string]float64, error) {
	cursor, err := productCollection.Find(ctx, bson.M{
		"crate_key": bson.M{"$exists": true, "$ne": nil},
		"is_active": true,
	})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		if p.Crate_key != nil {
			prices[*p.Crate_key] = p.Price_per_crate
		}
	}
	return prices, nil
}

// computeOrderTotal recomputes the order total from the price list. Client
// supplied totals are never trusted.
func computeOrderTotal(counts models.CrateCounts, prices map[string]float64) (float64, error) {
	total := 0.0
	for field, count := range counts.AsMap() {
		if count == 0 {
			continue
		}
		price, ok := prices[field]
		if !ok {
			return 0, fmt.Errorf("no active product for crate %s", field)
		}
		total += float64(count) * price
	}
	return total, nil
}

func parseCrateCounts(formValue func(string) string) (models.CrateCounts, error) {
	atoi := func(field string) (int, error) {
		raw := formValue(field)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s must be a non-negative integer", field)
		}
		return n, nil
	}

	var counts models.CrateCounts
	var err error
	if counts.Amul_taaza, err = atoi("amulTaaza"); err != nil {
		return counts, err
	}
	if counts.Amul_gold, err = atoi("amulGold"); err != nil {
		return counts, err
	}
	if counts.Amul_buffalo, err = atoi("amulBuffalo"); err != nil {
		return counts, err
	}
	if counts.Gokul_cow, err = atoi("gokulCow"); err != nil {
		return counts, err
	}
	if counts.Gokul_buffalo, err = atoi("gokulBuffalo"); err != nil {
		return counts, err
	}
	if counts.Gokul_full_cream, err = atoi("gokulFullCream"); err != nil {
		return counts, err
	}
	if counts.Mahananda, err = atoi("mahananda"); err != nil {
		return counts, err
	}
	return counts, nil
}

func parseDeliveryDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("deliveryDate must be formatted yyyy-mm-dd")
	}
	return date.UTC(), nil
}

// PlaceOrder accepts a multipart crate order. The payment screenshot is
// checked before anything is persisted.
func PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")

		counts, err := parseCrateCounts(c.PostForm)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if counts.Total() == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one crate"})
			return
		}

		deliveryDate, err := parseDeliveryDate(c.PostForm("deliveryDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		deliveryTime := c.PostForm("deliveryTime")
		if _, err := time.Parse("15:04", deliveryTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deliveryTime must be formatted HH:mm"})
			return
		}

		proofFile, proofExt, err := proofUploadFile(c, "paymentScreenshot")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		prices, err := loadCratePrices(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load crate prices"})
			return
		}
		total, err := computeOrderTotal(counts, prices)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The file hits the disk only once everything else has checked out.
		screenshot, err := storeProofUpload(c, proofFile, proofExt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		shopName := c.PostForm("shopName")
		address := c.PostForm("address")
		paymentMethod := c.DefaultPostForm("paymentMethod", "UPI")

		order := models.Order{
			ID:                 primitive.NewObjectID(),
			User_id:            &uid,
			Shop_name:          &shopName,
			Address:            &address,
			Delivery_time:      &deliveryTime,
			Delivery_date:      deliveryDate,
			Crate_counts:       counts,
			Payment_screenshot: &screenshot,
			Payment_method:     &paymentMethod,
			Status:             models.StatusPending,
			Payment_status:     models.PaymentPending,
			Total_amount:       total,
			Created_at:         time.Now(),
			Updated_at:         time.Now(),
		}
		order.Order_id = order.ID.Hex()

		if validationErr := validate.Struct(&order); validationErr != nil {
			removeUpload(screenshot)
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if _, err := orderCollection.InsertOne(ctx, order); err != nil {
			removeUpload(screenshot)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		notifyNewOrder(order)
		c.JSON(http.StatusOK, order)
	}
}

func GetOngoingOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		filter := bson.M{
			"user_id": uid,
			"status":  bson.M{"$nin": []string{models.StatusDelivered, models.StatusCancelled}},
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

func GetOrderHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		filter := bson.M{
			"user_id": uid,
			"status":  bson.M{"$in": []string{models.StatusDelivered, models.StatusCancelled}},
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

type orderUpdateRequest struct {
	Shop_name      *string             `json:"shop_name"`
	Address        *string             `json:"address"`
	Delivery_time  *string             `json:"delivery_time"`
	Delivery_date  *string             `json:"delivery_date"`
	Crate_counts   *models.CrateCounts `json:"crate_counts"`
	Payment_method *string             `json:"payment_method"`
}

// loadOwnOrder fetches the order and enforces that the caller owns it or is
// an admin. It writes the error response itself and returns nil on failure.
func loadOwnOrder(c *gin.Context, ctx context.Context, orderId string) *models.Order {
	var order models.Order
	if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil
	}
	uid := c.GetString("uid")
	if (order.User_id == nil || *order.User_id != uid) && !middleware.IsAdmin(c.GetString("role"), c.GetString("email")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return nil
	}
	return &order
}

// modificationAllowed enforces the customer edit window: only Pending
// orders, and only until two hours before the delivery time.
func modificationAllowed(c *gin.Context, order *models.Order) bool {
	if order.Status != models.StatusPending {
		c.JSON(http.StatusForbidden, gin.H{"error": "only pending orders can be modified"})
		return false
	}
	if order.Delivery_time == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order has no delivery time"})
		return false
	}
	deliveryAt, err := scheduler.DeliveryDateTime(order.Delivery_date, *order.Delivery_time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	if !scheduler.CanModify(time.Now().UTC(), deliveryAt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "orders can no longer be changed within 2 hours of delivery"})
		return false
	}
	return true
}

func UpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		order := loadOwnOrder(c, ctx, c.Param("order_id"))
		if order == nil {
			return
		}
		if !modificationAllowed(c, order) {
			return
		}

		var req orderUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if req.Shop_name != nil {
			updateObj = append(updateObj, bson.E{"shop_name", req.Shop_name})
		}
		if req.Address != nil {
			updateObj = append(updateObj, bson.E{"address", req.Address})
		}
		if req.Payment_method != nil {
			updateObj = append(updateObj, bson.E{"payment_method", req.Payment_method})
		}
		if req.Delivery_time != nil {
			if _, err := time.Parse("15:04", *req.Delivery_time); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_time must be formatted HH:mm"})
				return
			}
			updateObj = append(updateObj, bson.E{"delivery_time", req.Delivery_time})
		}
		if req.Delivery_date != nil {
			date, err := parseDeliveryDate(*req.Delivery_date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateObj = append(updateObj, bson.E{"delivery_date", date})
		}
		if req.Crate_counts != nil {
			if req.Crate_counts.Total() == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one crate"})
				return
			}
			prices, err := loadCratePrices(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load crate prices"})
				return
			}
			total, err := computeOrderTotal(*req.Crate_counts, prices)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateObj = append(updateObj, bson.E{"crate_counts", req.Crate_counts})
			updateObj = append(updateObj, bson.E{"total_amount", total})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{"updated_at", time.Now()})

		if _, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": order.Order_id},
			bson.D{{"$set", updateObj}},
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order updated"})
	}
}

// CancelOrder is the customer-facing delete. The document is kept and the
// status flips to Cancelled.
func CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		order := loadOwnOrder(c, ctx, c.Param("order_id"))
		if order == nil {
			return
		}
		if !modificationAllowed(c, order) {
			return
		}

		if _, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": order.Order_id, "status": models.StatusPending},
			bson.D{{"$set", bson.D{
				{"status", models.StatusCancelled},
				{"updated_at", time.Now()},
			}}},
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order cancellation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
