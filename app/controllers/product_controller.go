package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// maxImageBytes caps a product image upload at 8 MB.
const maxImageBytes = 8 << 20

type ProductController struct {
	catalog *services.CatalogService
	auth    *services.AuthService
}

func NewProductController() *ProductController {
	return &ProductController{
		catalog: services.NewCatalogService(),
		auth:    services.NewAuthService(),
	}
}

// queryUint reads a numeric query parameter, zero when absent or bad.
func queryUint(r *http.Request, name string) uint {
	n, _ := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	return uint(n)
}

func queryPage(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// Index handles GET /product: one page of products, optionally filtered
// by ?creator_id=.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	creatorID := queryUint(r, "creator_id")

	products, pagination, err := c.catalog.ListProducts(creatorID, queryPage(r))
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "No Products found")
		return
	}

	response.Paginated(w, products, pagination)
}

// Get handles GET /product/get: one unfiltered page of products.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	products, pagination, err := c.catalog.ListProducts(0, queryPage(r))
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "No products found")
		return
	}

	response.Paginated(w, products, pagination)
}

// Create handles POST /product/create_product?category_id=N. The caller
// becomes the product's creator.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	creator, err := c.auth.CurrentUser(userID)
	if err != nil {
		response.Unauthorized(w)
		return
	}

	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.CreateProduct(creator, queryUint(r, "category_id"), in)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			response.Error(w, http.StatusUnauthorized, "This is not a category")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	logger.WithCtx(r.Context()).Info("product created",
		"product_id", product.ID, "creator_id", creator.ID)
	response.Success(w, product)
}

// Update handles PUT /product/updated_product?product_id=N with a full
// replace of name, description and price.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.UpdateProduct(queryUint(r, "product_id"), in)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.Error(w, http.StatusUnauthorized, "Product Not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Success(w, product)
}

// Delete handles DELETE /product/delete?product_id=N. Deleting a missing
// product is an informational outcome, not an error.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.catalog.DeleteProduct(queryUint(r, "product_id"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if deleted {
		response.Message(w, "Product deleted")
		return
	}
	response.Message(w, "Nothing to delete here")
}

// UploadImage handles POST /product/upload_image?product_id=N with a
// multipart "image" field, stored on the configured storage disk.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID := queryUint(r, "product_id")

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	path := fmt.Sprintf("products/%d/%s", productID, filepath.Base(header.Filename))
	if err := storage.PutStream(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("image upload failed", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not store image")
		return
	}

	product, err := c.catalog.AttachImage(productID, path)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.Error(w, http.StatusUnauthorized, "Product Not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Success(w, map[string]interface{}{
		"product": product,
		"url":     storage.URL(path),
	})
}
