package repositories

import (
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists a single order. The batch flow calls this once per
// resolved item — each insert stands alone, there is no batch transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// FindByID looks up an order with its buyer, seller and item loaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Buyer").
		Preload("Seller").
		Preload("Item").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// PageForBuyer returns one page of the buyer's own orders, newest first.
func (r *OrderRepository) PageForBuyer(buyerID uint, page int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Buyer").
		Preload("Seller").
		Preload("Item").
		Preload("Item.Category").
		Preload("Item.Creator").
		Where("buyer_id = ?", buyerID).
		OrderBy("created_at DESC").
		GetWithPagination(&orders, page, orm.DefaultPageSize)
	return orders, pagination, err
}

// ForBuyer returns all of the buyer's orders, newest first.
func (r *OrderRepository) ForBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		OrderBy("created_at DESC").
		Get(&orders)
	return orders, err
}
