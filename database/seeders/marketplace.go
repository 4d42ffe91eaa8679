package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
}

// SeedUsers inserts one seller and one buyer for local development.
// Idempotent: existing usernames are left alone.
func SeedUsers(db *gorm.DB) error {
	users := []models.User{
		{
			Username:  "asha_seller",
			FirstName: "Asha",
			LastName:  "Verma",
			Role:      models.RoleSeller,
			Email:     "asha@example.com",
			PhoneNo:   "9876500001",
		},
		{
			Username:  "bilal_buyer",
			FirstName: "Bilal",
			LastName:  "Khan",
			Role:      models.RoleBuyer,
			Email:     "bilal@example.com",
			PhoneNo:   "9876500002",
		},
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	for i := range users {
		users[i].Password = hash

		var existing models.User
		err := db.Where("username = ?", users[i].Username).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog inserts a starter category with a few products owned by
// the seeded seller.
func SeedCatalog(db *gorm.DB) error {
	var seller models.User
	if err := db.Where("username = ?", "asha_seller").First(&seller).Error; err != nil {
		return err
	}

	var category models.Category
	err := db.Where("title = ?", "Electronics").First(&category).Error
	if err == gorm.ErrRecordNotFound {
		category = models.Category{Title: "Electronics"}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	products := []models.Product{
		{CategoryID: category.ID, Name: "Wireless Mouse", Description: "2.4 GHz optical mouse", Price: 19.99, CreatorID: seller.ID},
		{CategoryID: category.ID, Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: 74.50, CreatorID: seller.ID},
		{CategoryID: category.ID, Name: "USB-C Hub", Description: "7-in-1 hub with HDMI", Price: 39.00, CreatorID: seller.ID},
	}

	for i := range products {
		var existing models.Product
		err := db.Where("name = ? AND creator_id = ?", products[i].Name, seller.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
