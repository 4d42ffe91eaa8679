package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
)

func seedSeller(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	seller := models.User{Username: "hal_seller", Role: models.RoleSeller, Email: "hal@example.com", PhoneNo: "9000000010", Password: "x"}
	require.NoError(t, db.Create(&seller).Error)
	return seller
}

func TestProductCreate(t *testing.T) {
	db, api := newAPI(t)
	seller := seedSeller(t, db)

	category := models.Category{Title: "Cycling"}
	require.NoError(t, db.Create(&category).Error)

	target := fmt.Sprintf("/product/create_product?category_id=%d", category.ID)
	rec := doJSON(api, http.MethodPost, target, bearerFor(t, seller), map[string]interface{}{
		"name":        "Helmet",
		"description": "Road helmet, size M",
		"price":       65.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			ID         uint    `json:"ID"`
			Name       string  `json:"name"`
			Price      float64 `json:"price"`
			CreatorID  uint    `json:"creator_id"`
			CategoryID uint    `json:"category_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Helmet", body.Data.Name)
	assert.Equal(t, 65.0, body.Data.Price)
	assert.Equal(t, seller.ID, body.Data.CreatorID)
	assert.Equal(t, category.ID, body.Data.CategoryID)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	db, api := newAPI(t)
	seller := seedSeller(t, db)

	rec := doJSON(api, http.MethodPost, "/product/create_product?category_id=404", bearerFor(t, seller), map[string]interface{}{
		"name":  "Helmet",
		"price": 65.0,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "This is not a category", body.Message)
}

func TestProductUpdateUnknownProduct(t *testing.T) {
	db, api := newAPI(t)
	seller := seedSeller(t, db)

	rec := doJSON(api, http.MethodPut, "/product/updated_product?product_id=9999", bearerFor(t, seller), map[string]interface{}{
		"name":  "Nothing",
		"price": 1.0,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Product Not found", body.Message)
}

func TestProductDeleteMessages(t *testing.T) {
	db, api := newAPI(t)
	seller := seedSeller(t, db)

	category := models.Category{Title: "Hiking"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "Boots", Price: 110, CreatorID: seller.ID}
	require.NoError(t, db.Create(&product).Error)

	target := fmt.Sprintf("/product/delete?product_id=%d", product.ID)

	rec := doJSON(api, http.MethodDelete, target, bearerFor(t, seller), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Product deleted", body.Message)

	// Deleting again is still a 200, just with nothing to do.
	rec = doJSON(api, http.MethodDelete, target, bearerFor(t, seller), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Nothing to delete here", body.Message)
}

func TestProductIndexFiltersByCreator(t *testing.T) {
	db, api := newAPI(t)
	seller := seedSeller(t, db)

	other := models.User{Username: "ida_seller", Role: models.RoleSeller, Email: "ida@example.com", PhoneNo: "9000000011", Password: "x"}
	require.NoError(t, db.Create(&other).Error)

	category := models.Category{Title: "Running"}
	require.NoError(t, db.Create(&category).Error)
	for i, owner := range []models.User{seller, seller, other} {
		p := models.Product{CategoryID: category.ID, Name: fmt.Sprintf("Shoe %d", i), Price: 80, CreatorID: owner.ID}
		require.NoError(t, db.Create(&p).Error)
	}

	rec := doJSON(api, http.MethodGet, fmt.Sprintf("/product?creator_id=%d", seller.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items []struct {
				CreatorID uint `json:"creator_id"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data.Items, 2)
	for _, item := range body.Data.Items {
		assert.Equal(t, seller.ID, item.CreatorID)
	}
}

func TestRegistrationValidation(t *testing.T) {
	_, api := newAPI(t)

	rec := doJSON(api, http.MethodPost, "/registration", "", map[string]interface{}{
		"username": "x",
		"email":    "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Errors)
}

func TestRegistrationCreatesUser(t *testing.T) {
	db, api := newAPI(t)

	rec := doJSON(api, http.MethodPost, "/registration", "", map[string]interface{}{
		"username":   "nora",
		"first_name": "Nora",
		"last_name":  "Das",
		"role":       "SELLER",
		"email":      "nora@example.com",
		"phone_no":   "9000000020",
		"password":   "a-long-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, db.Where("username = ?", "nora").First(&user).Error)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.NotEqual(t, "a-long-password", user.Password)
}
