package repositories

import (
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// FindByUsername looks up a user by their login name.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

// FindByRole returns all users carrying the given role. This replaces the
// old buyer/seller subtypes: same entity, different filter predicate.
func (r *UserRepository) FindByRole(role string) ([]models.User, error) {
	var users []models.User
	err := orm.DB().Model(&models.User{}).Where("role = ?", role).Get(&users)
	return users, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// All returns every user record.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := orm.DB().Model(&models.User{}).Get(&users)
	return users, err
}
