package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
	auth   *services.AuthService
}

func NewOrderController() *OrderController {
	return &OrderController{
		orders: services.NewOrderService(),
		auth:   services.NewAuthService(),
	}
}

// Create handles POST /order/create with a body of {"item_ids": [...]}.
//
// The batch is best-effort: every resolvable item becomes an order, every
// unresolvable one becomes an internal error entry. When at least one
// order was created the response carries only the orders; the error list
// is surfaced solely in the all-failed case, as a 401 with "No orders
// created" and the itemized errors.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	buyer, err := c.auth.CurrentUser(userID)
	if err != nil {
		response.Unauthorized(w)
		return
	}

	var body struct {
		ItemIDs []uint `json:"item_ids" validate:"required"`
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

	result := c.orders.PlaceBatch(buyer, body.ItemIDs)

	log := logger.WithCtx(r.Context())
	if !result.Created() {
		log.Warn("order batch failed",
			"buyer_id", buyer.ID, "requested", len(body.ItemIDs))
		response.ErrorWithDetails(w, http.StatusUnauthorized, "No orders created", result.Errors)
		return
	}

	log.Info("order batch placed",
		"buyer_id", buyer.ID,
		"created", len(result.Orders),
		"failed", len(result.Errors))
	response.Success(w, result.Orders)
}

// Index handles GET /order/ and lists the caller's own orders, newest
// first, paginated.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	orders, pagination, err := c.orders.ListForBuyer(userID, page)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No orders found")
		return
	}

	response.Paginated(w, orders, pagination)
}
