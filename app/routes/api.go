// Package routes mounts the public HTTP surface onto the router.
package routes

import (
	"time"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// RegisterAPI wires every controller route. The metrics page, websocket
// feed and GraphQL endpoint are mounted separately by the server.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	userController := controllers.NewUserController()
	inventoryController := controllers.NewInventoryController()
	productController := controllers.NewProductController()
	orderController := controllers.NewOrderController()

	// Registration and token issuance are the only unauthenticated
	// account endpoints; rate-limit them against credential stuffing.
	throttle := middleware.RateLimit(20, time.Minute)
	r.Post("/registration", "auth.register", authController.Register, throttle)
	r.Post("/token", "auth.token", authController.Token, throttle)
	r.Post("/token/refresh", "auth.refresh", authController.Refresh, throttle)

	users := r.Group("/users", middleware.Auth)
	users.Get("/", "users.index", userController.Index)
	users.Get("/user", "users.current", userController.Current)

	inventory := r.Group("/inventory")
	inventory.Get("/category", "inventory.categories", inventoryController.Categories)
	inventory.Post("/category", "inventory.category.create", inventoryController.CreateCategory)
	inventory.Get("/product", "inventory.products", inventoryController.Products, middleware.Auth)

	product := r.Group("/product")
	product.Get("/", "product.index", productController.Index)
	product.Get("/get", "product.get", productController.Get)
	product.Post("/create_product", "product.create", productController.Create, middleware.Auth)
	product.Put("/updated_product", "product.update", productController.Update, middleware.Auth)
	product.Delete("/delete", "product.delete", productController.Delete, middleware.Auth)
	product.Post("/upload_image", "product.upload_image", productController.UploadImage, middleware.Auth)

	order := r.Group("/order", middleware.Auth)
	order.Post("/create", "order.create", orderController.Create)
	order.Get("/", "order.index", orderController.Index)
}
