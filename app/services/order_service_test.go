package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
)

func TestPlaceBatchMixedResults(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "mira_seller", models.RoleSeller)
	buyer := makeUser(t, db, "omar_buyer", models.RoleBuyer)
	category := makeCategory(t, db, "Books")
	first := makeProduct(t, db, category, seller, "Atlas", 30)
	second := makeProduct(t, db, category, seller, "Almanac", 12)

	svc := NewOrderService()
	result := svc.PlaceBatch(buyer, []uint{first.ID, 9999, second.ID})

	require.True(t, result.Created())
	require.Len(t, result.Orders, 2)
	require.Len(t, result.Errors, 1)

	// Orders come back in input order with the unknown id skipped over.
	assert.Equal(t, first.ID, result.Orders[0].ItemID)
	assert.Equal(t, second.ID, result.Orders[1].ItemID)

	assert.Equal(t, uint(9999), result.Errors[0].ItemID)
	assert.Equal(t, "Product not found", result.Errors[0].Message)

	// Seller is copied from the product's creator, buyer from the caller.
	for _, order := range result.Orders {
		assert.Equal(t, buyer.ID, order.BuyerID)
		assert.Equal(t, seller.ID, order.SellerID)
		assert.Regexp(t, `^[A-Z]{2}[0-9]{6}$`, order.OrderNo)
		assert.False(t, order.Paid)
		assert.Nil(t, order.Price)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPlaceBatchAllUnknown(t *testing.T) {
	db := setupDB(t)

	buyer := makeUser(t, db, "lena_buyer", models.RoleBuyer)

	svc := NewOrderService()
	result := svc.PlaceBatch(buyer, []uint{41, 42})

	assert.False(t, result.Created())
	assert.Empty(t, result.Orders)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, uint(41), result.Errors[0].ItemID)
	assert.Equal(t, uint(42), result.Errors[1].ItemID)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceBatchDuplicateItems(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "nils_seller", models.RoleSeller)
	buyer := makeUser(t, db, "rita_buyer", models.RoleBuyer)
	category := makeCategory(t, db, "Games")
	product := makeProduct(t, db, category, seller, "Chess Set", 25)

	svc := NewOrderService()
	result := svc.PlaceBatch(buyer, []uint{product.ID, product.ID})

	// Each occurrence is its own order.
	require.Len(t, result.Orders, 2)
	assert.Empty(t, result.Errors)
	assert.NotEqual(t, result.Orders[0].ID, result.Orders[1].ID)
}

func TestPlaceBatchEmptyInput(t *testing.T) {
	db := setupDB(t)

	buyer := makeUser(t, db, "ivy_buyer", models.RoleBuyer)

	svc := NewOrderService()
	result := svc.PlaceBatch(buyer, nil)

	assert.False(t, result.Created())
	assert.Empty(t, result.Orders)
	assert.Empty(t, result.Errors)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListForBuyerOwnershipAndOrdering(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "gita_seller", models.RoleSeller)
	buyer := makeUser(t, db, "tom_buyer", models.RoleBuyer)
	other := makeUser(t, db, "uma_buyer", models.RoleBuyer)
	category := makeCategory(t, db, "Outdoors")
	product := makeProduct(t, db, category, seller, "Tent", 120)

	base := time.Now().Add(-time.Hour)
	mine := []models.Order{
		{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: product.ID, OrderNo: "AA000001"},
		{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: product.ID, OrderNo: "AA000002"},
		{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: product.ID, OrderNo: "AA000003"},
	}
	for i := range mine {
		mine[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&mine[i]).Error)
	}
	foreign := models.Order{BuyerID: other.ID, SellerID: seller.ID, ItemID: product.ID, OrderNo: "BB000001"}
	require.NoError(t, db.Create(&foreign).Error)

	svc := NewOrderService()
	orders, pagination, err := svc.ListForBuyer(buyer.ID, 1)
	require.NoError(t, err)

	require.Len(t, orders, 3)
	assert.EqualValues(t, 3, pagination.Total)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 1, pagination.LastPage)

	// Newest first, never another buyer's orders.
	assert.Equal(t, "AA000003", orders[0].OrderNo)
	assert.Equal(t, "AA000002", orders[1].OrderNo)
	assert.Equal(t, "AA000001", orders[2].OrderNo)
	for _, order := range orders {
		assert.Equal(t, buyer.ID, order.BuyerID)
		assert.Equal(t, product.ID, order.Item.ID)
	}
}

func TestListForBuyerPagination(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "pia_seller", models.RoleSeller)
	buyer := makeUser(t, db, "quinn_buyer", models.RoleBuyer)
	category := makeCategory(t, db, "Office")
	product := makeProduct(t, db, category, seller, "Desk Lamp", 18)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		order := models.Order{
			BuyerID:  buyer.ID,
			SellerID: seller.ID,
			ItemID:   product.ID,
		}
		order.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&order).Error)
	}

	svc := NewOrderService()

	page1, pagination, err := svc.ListForBuyer(buyer.ID, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.EqualValues(t, 13, pagination.Total)
	assert.Equal(t, 2, pagination.LastPage)

	page2, _, err := svc.ListForBuyer(buyer.ID, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 3)
}
