package models

import "gorm.io/gorm"

// Role values for User.Role. A user may also carry no role at all;
// nothing in the order flow dispatches on it, only list filters do.
const (
	RoleBuyer  = "BUYER"
	RoleSeller = "SELLER"
)

// User is the single identity model. Buyers and sellers are the same
// entity filtered by Role — there are no subtypes.
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName string `gorm:"size:150"                      json:"first_name"`
	LastName  string `gorm:"size:150"                      json:"last_name"`
	Role      string `gorm:"size:50"                       json:"role"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PhoneNo   string `gorm:"uniqueIndex;size:15;not null"  json:"phone_no"`
	Password  string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	// Approved is declared but no code path sets it; it stays false until a
	// business rule for seller approval is actually decided.
	Approved bool `gorm:"default:false" json:"approved"`
}
