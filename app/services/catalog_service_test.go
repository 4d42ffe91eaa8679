package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

func TestCreateProductUnknownCategory(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "vik_seller", models.RoleSeller)

	svc := NewCatalogService()
	_, err := svc.CreateProduct(seller, 404, ProductInput{Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateProductSetsCreatorAndCategory(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "wes_seller", models.RoleSeller)
	category := makeCategory(t, db, "Audio")

	svc := NewCatalogService()
	product, err := svc.CreateProduct(seller, category.ID, ProductInput{
		Name:        "Headphones",
		Description: "Closed back",
		Price:       89.90,
	})
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, seller.ID, product.CreatorID)
	assert.Equal(t, category.ID, product.CategoryID)
	assert.Equal(t, 89.90, product.Price)
}

func TestUpdateProductReplacesFields(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "xia_seller", models.RoleSeller)
	category := makeCategory(t, db, "Audio")
	product := makeProduct(t, db, category, seller, "Speaker", 40)

	svc := NewCatalogService()
	updated, err := svc.UpdateProduct(product.ID, ProductInput{
		Name:        "Bookshelf Speaker",
		Description: "Pair",
		Price:       55,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bookshelf Speaker", updated.Name)
	assert.Equal(t, "Pair", updated.Description)
	assert.Equal(t, 55.0, updated.Price)
	assert.Equal(t, seller.ID, updated.CreatorID)
}

func TestUpdateProductNotFound(t *testing.T) {
	setupDB(t)

	svc := NewCatalogService()
	_, err := svc.UpdateProduct(12345, ProductInput{Name: "x", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductReportsWhetherAnythingWasDeleted(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "yan_seller", models.RoleSeller)
	category := makeCategory(t, db, "Tools")
	product := makeProduct(t, db, category, seller, "Hammer", 9)

	svc := NewCatalogService()

	deleted, err := svc.DeleteProduct(product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// A second delete of the same id is not an error, just a no-op.
	deleted, err = svc.DeleteProduct(product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "zoe_seller", models.RoleSeller)
	buyer := makeUser(t, db, "abe_buyer", models.RoleBuyer)
	category := makeCategory(t, db, "Garden")
	keepCategory := makeCategory(t, db, "Kitchen")
	doomed := makeProduct(t, db, category, seller, "Shovel", 15)
	kept := makeProduct(t, db, keepCategory, seller, "Kettle", 22)

	order := models.Order{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: doomed.ID}
	require.NoError(t, db.Create(&order).Error)
	keptOrder := models.Order{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: kept.ID}
	require.NoError(t, db.Create(&keptOrder).Error)

	svc := NewCatalogService()
	require.NoError(t, svc.DeleteCategory(category.ID))

	// The category's products and the orders referencing them go with it.
	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error)
	assert.Zero(t, productCount)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Where("item_id = ?", doomed.ID).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// Unrelated rows survive.
	var keptProduct models.Product
	require.NoError(t, db.First(&keptProduct, kept.ID).Error)
	var survivingOrder models.Order
	require.NoError(t, db.First(&survivingOrder, keptOrder.ID).Error)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	setupDB(t)

	svc := NewCatalogService()
	assert.ErrorIs(t, svc.DeleteCategory(777), ErrCategoryNotFound)
}

func TestListProductsFilterByCreator(t *testing.T) {
	db := setupDB(t)

	first := makeUser(t, db, "ben_seller", models.RoleSeller)
	second := makeUser(t, db, "cai_seller", models.RoleSeller)
	category := makeCategory(t, db, "Music")
	makeProduct(t, db, category, first, "Guitar", 300)
	makeProduct(t, db, category, first, "Ukulele", 60)
	makeProduct(t, db, category, second, "Violin", 450)

	svc := NewCatalogService()

	mine, pagination, err := svc.ListProducts(first.ID, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.EqualValues(t, 2, pagination.Total)
	for _, p := range mine {
		assert.Equal(t, first.ID, p.CreatorID)
		assert.Equal(t, category.ID, p.Category.ID)
	}

	everything, pagination, err := svc.ListProducts(0, 1)
	require.NoError(t, err)
	assert.Len(t, everything, 3)
	assert.EqualValues(t, 3, pagination.Total)
}

// tempDisk points the default storage disk at a per-test directory and
// returns that directory.
func tempDisk(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	storage.RegisterDisk("local", storage.NewLocalDisk(root, "http://localhost:8080/storage"))
	return root
}

func TestDeleteProductRemovesStoredImage(t *testing.T) {
	db := setupDB(t)
	root := tempDisk(t)

	seller := makeUser(t, db, "eva_seller", models.RoleSeller)
	category := makeCategory(t, db, "Art")
	product := makeProduct(t, db, category, seller, "Easel", 48)

	require.NoError(t, storage.PutStream("products/1/easel.jpg", strings.NewReader("img")))
	require.NoError(t, db.Model(&product).Update("image_path", "products/1/easel.jpg").Error)

	svc := NewCatalogService()
	deleted, err := svc.DeleteProduct(product.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = os.Stat(filepath.Join(root, "products", "1", "easel.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteCategoryRemovesCascadedImages(t *testing.T) {
	db := setupDB(t)
	root := tempDisk(t)

	seller := makeUser(t, db, "finn_seller", models.RoleSeller)
	category := makeCategory(t, db, "Prints")
	product := makeProduct(t, db, category, seller, "Poster", 12)

	require.NoError(t, storage.PutStream("products/2/poster.jpg", strings.NewReader("img")))
	require.NoError(t, db.Model(&product).Update("image_path", "products/2/poster.jpg").Error)

	svc := NewCatalogService()
	require.NoError(t, svc.DeleteCategory(category.ID))

	_, err := os.Stat(filepath.Join(root, "products", "2", "poster.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestAttachImage(t *testing.T) {
	db := setupDB(t)

	seller := makeUser(t, db, "dev_seller", models.RoleSeller)
	category := makeCategory(t, db, "Photo")
	product := makeProduct(t, db, category, seller, "Tripod", 35)

	svc := NewCatalogService()
	updated, err := svc.AttachImage(product.ID, "products/1/tripod.jpg")
	require.NoError(t, err)
	assert.Equal(t, "products/1/tripod.jpg", updated.ImagePath)

	_, err = svc.AttachImage(999, "nope.jpg")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
