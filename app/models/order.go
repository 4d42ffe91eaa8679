package models

import (
	"math/rand/v2"

	"gorm.io/gorm"
)

const (
	orderNoLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNoDigits  = "0123456789"
)

// OrderNumber produces a human-readable order code: two uppercase letters
// followed by six digits, each chosen independently and uniformly.
//
// There is no uniqueness check against existing orders. The collision
// probability per pair is 1 in 26²·10⁶ and a duplicate code is not an
// error. If stronger guarantees are ever needed, add a unique index on
// order_no and wrap creation in a bounded retry — do not change this
// function silently.
func OrderNumber() string {
	b := make([]byte, 8)
	for i := 0; i < 2; i++ {
		b[i] = orderNoLetters[rand.IntN(len(orderNoLetters))]
	}
	for i := 2; i < 8; i++ {
		b[i] = orderNoDigits[rand.IntN(len(orderNoDigits))]
	}
	return string(b)
}

// Order records a buyer purchasing one product. Seller is copied from the
// product's creator at creation time and never re-derived, so it reflects
// ownership at the moment of purchase.
type Order struct {
	gorm.Model
	BuyerID  uint    `gorm:"not null;index" json:"buyer_id"`
	Buyer    User    `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"buyer"`
	SellerID uint    `gorm:"not null;index" json:"seller_id"`
	Seller   User    `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"seller"`
	ItemID   uint    `gorm:"not null;index" json:"item_id"`
	Item     Product `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item"`
	Paid     bool    `gorm:"default:false" json:"paid"`
	OrderNo  string  `gorm:"size:10"       json:"order_no"`
	// Price is declared but never written by the order flow; the item's
	// price is the source of truth today.
	Price     *uint `json:"price"`
	Delivered bool  `gorm:"default:false" json:"delivered"`
	Completed bool  `gorm:"default:false" json:"completed"`
}

// BeforeCreate fills OrderNo when the caller has not pre-set one. Keeping
// generation behind this single hook makes the policy pluggable.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.OrderNo == "" {
		o.OrderNo = OrderNumber()
	}
	return nil
}
