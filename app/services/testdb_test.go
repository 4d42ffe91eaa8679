package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/database"
)

// setupDB points the global connection at a fresh in-memory SQLite
// database scoped to the test. cache=shared keeps the pool's connections
// on the same database for the lifetime of the test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	// The DSN parameter enables foreign keys on every pooled connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
		database.DB = prev
	})

	return db
}

func makeUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	sum := 0
	for _, c := range username {
		sum = sum*31 + int(c)
	}
	user := models.User{
		Username: username,
		Role:     role,
		Email:    username + "@example.com",
		PhoneNo:  fmt.Sprintf("9%09d", sum%1_000_000_000),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func makeCategory(t *testing.T, db *gorm.DB, title string) models.Category {
	t.Helper()

	category := models.Category{Title: title}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func makeProduct(t *testing.T, db *gorm.DB, category models.Category, creator models.User, name string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: name + " description",
		Price:       price,
		CreatorID:   creator.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
