package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// InventoryController serves the unpaginated inventory views used by the
// storefront: category list, category creation, full product list.
type InventoryController struct {
	catalog *services.CatalogService
}

func NewInventoryController() *InventoryController {
	return &InventoryController{
		catalog: services.NewCatalogService(),
	}
}

// Categories handles GET /inventory/category.
func (c *InventoryController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.ListCategories()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, categories)
}

// CreateCategory handles POST /inventory/category.
func (c *InventoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title" validate:"required,max=100"`
	}

	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.catalog.CreateCategory(body.Title)
	if err != nil {
		response.NotFound(w, "error creating category")
		return
	}

	response.Success(w, category)
}

// Products handles GET /inventory/product and returns the unpaginated
// product list.
func (c *InventoryController) Products(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.AllProducts()
	if err != nil {
		response.NotFound(w, "No products found")
		return
	}
	response.Success(w, products)
}
