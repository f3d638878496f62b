package controllers

import (
	"context"
	"net/http"
	"os"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/helpers"
	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate = validator.New()

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// isDuplicateKey recognizes the unique-index violation raised when two
// registrations for the same email race past the pre-insert count check.
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// SignUp registers a customer account. The role is assigned server-side:
// everyone is a customer except the configured admin address.
func SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role := models.RoleCustomer
		if user.Email != nil && os.Getenv("ADMIN_EMAIL") != "" && *user.Email == os.Getenv("ADMIN_EMAIL") {
			role = models.RoleAdmin
		}
		user.Role = &role

		if validationErr := validate.Struct(&user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}

		password, err := HashPassword(*user.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		user.Password = &password

		user.Created_at = time.Now()
		user.Updated_at = time.Now()
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, *user.Role, 7*24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}
		user.Token = &token
		user.Refresh_Token = &refreshToken

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if isDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}

		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

// Login never reveals which of email or password was wrong.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		var foundUser models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if user.Email == nil || user.Password == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
		if err != nil || foundUser.Password == nil || !VerifyPassword(*user.Password, *foundUser.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.User_id, *foundUser.Role, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}
		if err := helpers.UpdateAllTokens(token, refreshToken, foundUser.User_id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update tokens"})
			return
		}
		foundUser.Token = &token
		foundUser.Refresh_Token = &refreshToken

		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfile applies a partial update of name, phone, address or
// password. Email and role are fixed at registration.
func UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if user.Name != nil {
			updateObj = append(updateObj, bson.E{"name", user.Name})
		}
		if user.Phone != nil {
			updateObj = append(updateObj, bson.E{"phone", user.Phone})
		}
		if user.Address != nil {
			updateObj = append(updateObj, bson.E{"address", user.Address})
		}
		if user.Password != nil {
			password, err := HashPassword(*user.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
				return
			}
			updateObj = append(updateObj, bson.E{"password", password})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{"updated_at", time.Now()})

		result, err := userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": uid},
			bson.D{{"$set", updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
