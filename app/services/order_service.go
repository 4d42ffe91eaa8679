package services

import (
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/event"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"gorm.io/gorm"
)

// EventOrderCreated is fired once per successfully created order with the
// models.Order as payload. Listeners feed the live order websocket and
// the confirmation mail job.
const EventOrderCreated = "order.created"

// ItemError describes one failed item in a batch placement.
type ItemError struct {
	ItemID  uint   `json:"item_id"`
	Message string `json:"message"`
}

// BatchResult carries the outcome of a batch placement. Orders holds every
// created order in input order; Errors holds one entry per item that did
// not resolve. Both are always populated — the caller decides what to
// surface (see OrderController.Create).
type BatchResult struct {
	Orders []models.Order
	Errors []ItemError
}

// Created reports whether at least one order was persisted.
func (r BatchResult) Created() bool { return len(r.Orders) > 0 }

type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// PlaceBatch resolves each item id in input order and creates one order
// per resolvable product, with the buyer as caller and the seller copied
// from the product's creator at this moment.
//
// Failures never abort the batch: an unknown id yields a "Product not
// found" item error, any other fault yields an item error carrying the
// fault text, and processing continues with the next id. Duplicates are
// independent — each occurrence gets its own order. Each create is a
// standalone insert; earlier successes stay persisted no matter what
// happens to later items.
func (s *OrderService) PlaceBatch(buyer models.User, itemIDs []uint) BatchResult {
	var result BatchResult

	for _, itemID := range itemIDs {
		product, err := s.products.FindByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Errors = append(result.Errors, ItemError{ItemID: itemID, Message: "Product not found"})
			} else {
				result.Errors = append(result.Errors, ItemError{ItemID: itemID, Message: err.Error()})
			}
			metrics.OrderItemFailures.Inc()
			continue
		}

		order := models.Order{
			BuyerID:  buyer.ID,
			Buyer:    buyer,
			SellerID: product.CreatorID,
			Seller:   product.Creator,
			ItemID:   product.ID,
			Item:     product,
		}

		if err := s.orders.Create(&order); err != nil {
			result.Errors = append(result.Errors, ItemError{ItemID: itemID, Message: err.Error()})
			metrics.OrderItemFailures.Inc()
			continue
		}

		metrics.OrdersCreated.Inc()
		// Listeners (websocket feed, mail job) must not slow placement down.
		event.FireAsync(EventOrderCreated, order)
		result.Orders = append(result.Orders, order)
	}

	return result
}

// ListForBuyer returns one page of the buyer's own orders, newest first.
// No cross-user listing exists.
func (s *OrderService) ListForBuyer(buyerID uint, page int) ([]models.Order, orm.Pagination, error) {
	return s.orders.PageForBuyer(buyerID, page)
}
