package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// newAPI stands up a fresh in-memory database plus the full route table.
func newAPI(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	// The DSN parameter enables foreign keys on every pooled connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
		database.DB = prev
	})

	r := router.New()
	routes.RegisterAPI(r)
	return db, r.Handler()
}

func seedBuyerWithProducts(t *testing.T, db *gorm.DB) (models.User, []models.Product) {
	t.Helper()

	seller := models.User{Username: "eli_seller", Role: models.RoleSeller, Email: "eli@example.com", PhoneNo: "9000000001", Password: "x"}
	require.NoError(t, db.Create(&seller).Error)
	buyer := models.User{Username: "fay_buyer", Role: models.RoleBuyer, Email: "fay@example.com", PhoneNo: "9000000002", Password: "x"}
	require.NoError(t, db.Create(&buyer).Error)

	category := models.Category{Title: "Camping"}
	require.NoError(t, db.Create(&category).Error)

	products := []models.Product{
		{CategoryID: category.ID, Name: "Stove", Price: 45, CreatorID: seller.ID},
		{CategoryID: category.ID, Name: "Lantern", Price: 20, CreatorID: seller.ID},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return buyer, products
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(handler http.Handler, method, target, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body) //nolint:errcheck
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestOrderCreatePartialSuccessReturnsOnlyOrders(t *testing.T) {
	db, api := newAPI(t)
	buyer, products := seedBuyerWithProducts(t, db)

	rec := doJSON(api, http.MethodPost, "/order/create", bearerFor(t, buyer), map[string]interface{}{
		"item_ids": []uint{products[0].ID, 9999, products[1].ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status int               `json:"status"`
		Data   []json.RawMessage `json:"data"`
		Errors json.RawMessage   `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusOK, body.Status)
	assert.Len(t, body.Data, 2)
	// The per-item failure is swallowed once anything succeeded.
	assert.Nil(t, body.Errors)
}

func TestOrderCreateAllFailedSurfacesItemErrors(t *testing.T) {
	db, api := newAPI(t)
	buyer, _ := seedBuyerWithProducts(t, db)

	rec := doJSON(api, http.MethodPost, "/order/create", bearerFor(t, buyer), map[string]interface{}{
		"item_ids": []uint{777, 888},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Errors  []struct {
			ItemID  uint   `json:"item_id"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "No orders created", body.Message)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, uint(777), body.Errors[0].ItemID)
	assert.Equal(t, "Product not found", body.Errors[0].Message)
}

func TestOrderCreateRequiresToken(t *testing.T) {
	_, api := newAPI(t)

	rec := doJSON(api, http.MethodPost, "/order/create", "", map[string]interface{}{
		"item_ids": []uint{1},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderCreateRejectsMissingItemIDs(t *testing.T) {
	db, api := newAPI(t)
	buyer, _ := seedBuyerWithProducts(t, db)

	rec := doJSON(api, http.MethodPost, "/order/create", bearerFor(t, buyer), map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrderIndexListsOwnOrdersOnly(t *testing.T) {
	db, api := newAPI(t)
	buyer, products := seedBuyerWithProducts(t, db)

	other := models.User{Username: "gus_buyer", Role: models.RoleBuyer, Email: "gus@example.com", PhoneNo: "9000000003", Password: "x"}
	require.NoError(t, db.Create(&other).Error)

	mine := models.Order{BuyerID: buyer.ID, SellerID: products[0].CreatorID, ItemID: products[0].ID}
	require.NoError(t, db.Create(&mine).Error)
	theirs := models.Order{BuyerID: other.ID, SellerID: products[0].CreatorID, ItemID: products[0].ID}
	require.NoError(t, db.Create(&theirs).Error)

	rec := doJSON(api, http.MethodGet, "/order", bearerFor(t, buyer), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items []struct {
				BuyerID uint `json:"buyer_id"`
			} `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, buyer.ID, body.Data.Items[0].BuyerID)
	assert.EqualValues(t, 1, body.Data.Pagination.Total)
}
