package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a product references a
	// category id that does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")
)

type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *CatalogService) CreateCategory(title string) (models.Category, error) {
	category := models.Category{Title: title}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categories.All()
}

// DeleteCategory removes a category; the store cascades the delete to its
// products and to any orders referencing those products. Stored images of
// the cascaded products are cleaned up best-effort first.
func (s *CatalogService) DeleteCategory(id uint) error {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if products, err := s.products.ForCategory(category.ID); err == nil {
		for _, p := range products {
			removeImage(p)
		}
	}

	return s.categories.Delete(&category)
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductInput is the create/update payload. Update is a full replace.
type ProductInput struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price"       validate:"required,numeric,gte=0"`
}

// CreateProduct associates a new product with an existing category and the
// calling user as creator. Fails with ErrCategoryNotFound when the
// category id does not resolve.
func (s *CatalogService) CreateProduct(creator models.User, categoryID uint, in ProductInput) (models.Product, error) {
	category, err := s.categories.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrCategoryNotFound
		}
		return models.Product{}, err
	}

	product := models.Product{
		CategoryID:  category.ID,
		Category:    category,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatorID:   creator.ID,
		Creator:     creator,
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces name, description and price of an existing
// product.
func (s *CatalogService) UpdateProduct(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price

	if err := s.products.Save(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product by id. The second return value reports
// whether anything was actually deleted — callers treat a missing product
// as an informational outcome, not an error.
func (s *CatalogService) DeleteProduct(id uint) (bool, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.products.Delete(&product); err != nil {
		return false, err
	}

	removeImage(product)
	return true, nil
}

// removeImage deletes a product's stored image, if any. Failures only
// log: an orphan file must never fail the catalog operation.
func removeImage(product models.Product) {
	if product.ImagePath == "" {
		return
	}
	if err := storage.Delete(product.ImagePath); err != nil {
		logger.Warn("product image cleanup failed",
			"product_id", product.ID, "path", product.ImagePath, "error", err)
	}
}

// FindProduct resolves a single product with its associations loaded.
func (s *CatalogService) FindProduct(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

// AttachImage records the storage path of a product's uploaded image.
func (s *CatalogService) AttachImage(id uint, path string) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	product.ImagePath = path
	if err := s.products.Save(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// ListProducts returns one page of products, optionally filtered by
// creator. creatorID zero lists everything.
func (s *CatalogService) ListProducts(creatorID uint, page int) ([]models.Product, orm.Pagination, error) {
	return s.products.Page(creatorID, page)
}

// AllProducts returns the unpaginated product list.
func (s *CatalogService) AllProducts() ([]models.Product, error) {
	return s.products.All()
}
