package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func multipartForm(t *testing.T, fields map[string]string, fileField string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("not really an image"))
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

var placeOrderFields = map[string]string{
	"shopName":     "Sunrise Dairy",
	"address":      "12 MG Road",
	"deliveryDate": "2030-03-14",
	"deliveryTime": "07:30",
	"amulTaaza":    "2",
}

// Placement without the payment screenshot must fail before anything is
// persisted; the handler rejects it before it ever talks to the database.
func TestPlaceOrderRequiresPaymentScreenshot(t *testing.T) {
	router := gin.New()
	router.POST("/api/orders/place",
		func(c *gin.Context) { c.Set("uid", "user-1") },
		PlaceOrder(),
	)

	body, contentType := multipartForm(t, placeOrderFields, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/orders/place", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "paymentScreenshot is required") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestPlaceOrderRejectsNonImageProof(t *testing.T) {
	router := gin.New()
	router.POST("/api/orders/place",
		func(c *gin.Context) { c.Set("uid", "user-1") },
		PlaceOrder(),
	)

	body, contentType := multipartForm(t, placeOrderFields, "paymentScreenshot", "proof.gif")
	req := httptest.NewRequest(http.MethodPost, "/api/orders/place", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "jpg, png or webp") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestOrderValidationRequiresScreenshot(t *testing.T) {
	uid := "user-1"
	shop := "Sunrise Dairy"
	address := "12 MG Road"
	deliveryTime := "07:30"

	order := models.Order{
		User_id:       &uid,
		Shop_name:     &shop,
		Address:       &address,
		Delivery_time: &deliveryTime,
		Status:        models.StatusPending,
	}
	if err := validate.Struct(&order); err == nil {
		t.Error("order without screenshot passed validation")
	}

	empty := ""
	order.Payment_screenshot = &empty
	if err := validate.Struct(&order); err == nil {
		t.Error("order with empty screenshot passed validation")
	}

	screenshot := "/uploads/proof.png"
	order.Payment_screenshot = &screenshot
	if err := validate.Struct(&order); err != nil {
		t.Errorf("valid order rejected: %v", err)
	}
}

func TestStoreAndRemoveProofUpload(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("UPLOAD_DIR", dir)
	defer os.Unsetenv("UPLOAD_DIR")

	body, contentType := multipartForm(t, nil, "paymentScreenshot", "proof.png")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", body)
	c.Request.Header.Set("Content-Type", contentType)

	path, err := saveProofUpload(c, "paymentScreenshot")
	if err != nil {
		t.Fatalf("saveProofUpload: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") || filepath.Ext(path) != ".png" {
		t.Fatalf("stored path = %q", path)
	}

	onDisk := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	removeUpload(path)
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("file still present after removeUpload: %v", err)
	}
}

// A stored order missing its delivery time must surface an error, not
// panic the handler.
func TestModificationAllowedMissingDeliveryTime(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	order := &models.Order{Status: models.StatusPending}
	if modificationAllowed(c, order) {
		t.Error("order without delivery time was modifiable")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
