package controllers

import (
	"context"
	"net/http"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var productCollection *mongo.Collection = database.OpenCollection(database.Client, "product")

// GetProducts returns the active catalog, for the storefront.
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := productCollection.Find(ctx, bson.M{"is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}
		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetAllProducts returns the full catalog including soft-deleted entries,
// for the admin back-office.
func GetAllProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := productCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}
		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var product models.Product
		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&product); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		product.ID = primitive.NewObjectID()
		product.Product_id = product.ID.Hex()
		product.Is_active = true
		product.Created_at = time.Now()
		product.Updated_at = time.Now()

		if _, err := productCollection.InsertOne(ctx, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product was not created"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		productId := c.Param("product_id")

		var product models.Product
		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if product.Name != nil {
			updateObj = append(updateObj, bson.E{"name", product.Name})
		}
		if product.Brand != nil {
			updateObj = append(updateObj, bson.E{"brand", product.Brand})
		}
		if product.Price > 0 {
			updateObj = append(updateObj, bson.E{"price", product.Price})
		}
		if product.Price_per_crate > 0 {
			updateObj = append(updateObj, bson.E{"price_per_crate", product.Price_per_crate})
		}
		if product.Pack_size != nil {
			updateObj = append(updateObj, bson.E{"pack_size", product.Pack_size})
		}
		if product.Unit != nil {
			updateObj = append(updateObj, bson.E{"unit", product.Unit})
		}
		if product.Category != nil {
			updateObj = append(updateObj, bson.E{"category", product.Category})
		}
		if product.Nutritional_info != nil {
			updateObj = append(updateObj, bson.E{"nutritional_info", product.Nutritional_info})
		}
		if product.Stock_quantity >= 0 {
			updateObj = append(updateObj, bson.E{"stock_quantity", product.Stock_quantity})
		}
		if product.Min_stock_level >= 0 {
			updateObj = append(updateObj, bson.E{"min_stock_level", product.Min_stock_level})
		}
		updateObj = append(updateObj, bson.E{"available", product.Available})
		updateObj = append(updateObj, bson.E{"updated_at", time.Now()})

		result, err := productCollection.UpdateOne(
			ctx,
			bson.M{"product_id": productId},
			bson.D{{"$set", updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// DeleteProduct soft-deletes: the document stays for order history, the
// storefront stops listing it.
func DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		productId := c.Param("product_id")

		result, err := productCollection.UpdateOne(
			ctx,
			bson.M{"product_id": productId},
			bson.D{{"$set", bson.D{
				{"is_active", false},
				{"updated_at", time.Now()},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product delete failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deactivated"})
	}
}
