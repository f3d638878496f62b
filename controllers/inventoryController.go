package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var inventoryCollection *mongo.Collection = database.OpenCollection(database.Client, "inventory")

const defaultLowStockThreshold = 50

// LowStockThreshold is the server-side cutoff below which a crate count is
// flagged, overridable through LOW_STOCK_THRESHOLD.
func LowStockThreshold() int {
	if raw := os.Getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultLowStockThreshold
}

func normalizeInventoryDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("date must be formatted yyyy-mm-dd")
	}
	return date.UTC(), nil
}

func GetInventories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{"date", -1}})
		cursor, err := inventoryCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing inventory"})
			return
		}
		var inventories []models.Inventory
		if err := cursor.All(ctx, &inventories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, inventories)
	}
}

func GetInventory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		date, err := normalizeInventoryDate(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var inventory models.Inventory
		if err := inventoryCollection.FindOne(ctx, bson.M{"date": date}).Decode(&inventory); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory for that date"})
			return
		}
		c.JSON(http.StatusOK, inventory)
	}
}

type inventoryRequest struct {
	Date         string             `json:"date"`
	Crate_counts models.CrateCounts `json:"crate_counts"`
}

func upsertInventory(c *gin.Context, rawDate string, counts models.CrateCounts) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	date, err := normalizeInventoryDate(rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for field, v := range counts.AsMap() {
		if v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": field + " must be non-negative"})
			return
		}
	}

	upsert := true
	opts := options.UpdateOptions{
		Upsert: &upsert,
	}
	_, err = inventoryCollection.UpdateOne(
		ctx,
		bson.M{"date": date},
		bson.D{
			{"$set", bson.D{
				{"crate_counts", counts},
				{"updated_at", time.Now()},
			}},
			{"$setOnInsert", bson.D{
				{"date", date},
				{"created_at", time.Now()},
			}},
		},
		&opts,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory saved", "date": date.Format("2006-01-02")})
}

func CreateInventory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inventoryRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		upsertInventory(c, req.Date, req.Crate_counts)
	}
}

func UpdateInventory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inventoryRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		upsertInventory(c, c.Param("date"), req.Crate_counts)
	}
}

// GetInventoryWarnings flags the crate fields under the low-stock cutoff
// for a given date.
func GetInventoryWarnings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		date, err := normalizeInventoryDate(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var inventory models.Inventory
		if err := inventoryCollection.FindOne(ctx, bson.M{"date": date}).Decode(&inventory); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory for that date"})
			return
		}

		threshold := LowStockThreshold()
		low := inventory.Crate_counts.LowStock(threshold)
		c.JSON(http.StatusOK, gin.H{
			"date":        date.Format("2006-01-02"),
			"threshold":   threshold,
			"low_stock":   low,
			"all_stocked": len(low) == 0,
		})
	}
}
