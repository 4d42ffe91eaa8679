package repositories

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
)

// categoriesCacheKey caches the full category list; the catalog changes
// rarely compared to how often it is read.
const categoriesCacheKey = "catalog:categories"

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// Create persists a new category and invalidates the cached list.
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := orm.DB().Create(category); err != nil {
		return err
	}
	if orm.CacheStore != nil {
		_ = orm.CacheStore.Forget(categoriesCacheKey)
	}
	return nil
}

// All returns every category, served from cache when warm.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Cache(categoriesCacheKey, time.Minute, &categories)
	return categories, err
}

// Delete removes a category; products underneath it go with it via the
// store's ON DELETE CASCADE.
func (r *CategoryRepository) Delete(category *models.Category) error {
	return orm.DB().Delete(category)
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product with its category and creator loaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).
		Preload("Category").
		Preload("Creator").
		Where("id = ?", id).
		First(&product)
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Save persists a full update of an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete removes a product; orders referencing it cascade away.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Delete(product)
}

// ForCategory returns the bare products under one category. The cascade
// cleanup path uses this to collect image paths before the rows go.
func (r *ProductRepository) ForCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Get(&products)
	return products, err
}

// All returns every product with associations loaded.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Preload("Category").
		Preload("Creator").
		Get(&products)
	return products, err
}

// Page returns one page of products, optionally restricted to a creator.
// creatorID zero means no filter.
func (r *ProductRepository) Page(creatorID uint, page int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).
		Preload("Category").
		Preload("Creator")
	if creatorID != 0 {
		q = q.Where("creator_id = ?", creatorID)
	}

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, page, orm.DefaultPageSize)
	return products, pagination, err
}
