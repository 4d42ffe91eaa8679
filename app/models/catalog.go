package models

import "gorm.io/gorm"

// Category groups products. Deleting a category deletes its products —
// orphan products are not allowed.
type Category struct {
	gorm.Model
	Title string `gorm:"size:100" json:"title"`
}

// Product belongs to exactly one Category and one creator (a User acting
// as seller). Both relations cascade on delete at the store layer; the
// application never cleans up orphans itself.
type Product struct {
	gorm.Model
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `gorm:"constraint:OnDelete:CASCADE" json:"category"`
	Name        string   `gorm:"size:255;index" json:"name"`
	Description string   `gorm:"type:text"      json:"description"`
	Price       float64  `gorm:"not null"       json:"price"`
	ImagePath   string   `gorm:"size:512"       json:"image_path,omitempty"`
	CreatorID   uint     `gorm:"not null;index" json:"creator_id"`
	Creator     User     `gorm:"constraint:OnDelete:CASCADE" json:"creator"`
}
