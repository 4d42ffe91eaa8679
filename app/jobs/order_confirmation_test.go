package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/mail"
)

func setupJobDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:jobs_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}))

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

func captureMail(t *testing.T) *[]*mail.Message {
	t.Helper()

	var sent []*mail.Message
	prev := mail.Deliver
	mail.Deliver = func(m *mail.Message) error {
		sent = append(sent, m)
		return nil
	}
	t.Cleanup(func() { mail.Deliver = prev })
	return &sent
}

func TestOrderConfirmationMailsBuyer(t *testing.T) {
	db := setupJobDB(t)
	sent := captureMail(t)

	seller := models.User{Username: "sara_seller", Email: "sara@example.com", PhoneNo: "9111100001", Password: "x"}
	require.NoError(t, db.Create(&seller).Error)
	buyer := models.User{Username: "theo_buyer", FirstName: "Theo", Email: "theo@example.com", PhoneNo: "9111100002", Password: "x"}
	require.NoError(t, db.Create(&buyer).Error)

	category := models.Category{Title: "Coffee"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "Grinder", Price: 55, CreatorID: seller.ID}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: product.ID, OrderNo: "CF000001"}
	require.NoError(t, db.Create(&order).Error)

	job := &OrderConfirmationJob{OrderID: order.ID}
	require.NoError(t, job.Handle())

	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	assert.Equal(t, []string{"theo@example.com"}, msg.Recipients())
	assert.Equal(t, "Order confirmation CF000001", msg.SubjectLine())
}

func TestOrderConfirmationSkipsBuyerWithoutEmail(t *testing.T) {
	db := setupJobDB(t)
	sent := captureMail(t)

	seller := models.User{Username: "uli_seller", Email: "uli@example.com", PhoneNo: "9111100003", Password: "x"}
	require.NoError(t, db.Create(&seller).Error)
	buyer := models.User{Username: "vera_buyer", PhoneNo: "9111100004", Password: "x"}
	require.NoError(t, db.Create(&buyer).Error)

	category := models.Category{Title: "Tea"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "Kettle", Price: 30, CreatorID: seller.ID}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{BuyerID: buyer.ID, SellerID: seller.ID, ItemID: product.ID}
	require.NoError(t, db.Create(&order).Error)

	job := &OrderConfirmationJob{OrderID: order.ID}
	require.NoError(t, job.Handle())
	assert.Empty(t, *sent)
}

func TestOrderConfirmationUnknownOrder(t *testing.T) {
	setupJobDB(t)

	job := &OrderConfirmationJob{OrderID: 424242}
	assert.Error(t, job.Handle())
}
