package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer  UserRole = "CUSTOMER"
	RoleAdmin     UserRole = "ADMIN"
	RoleWarehouse UserRole = "WAREHOUSE"
	RoleDriver    UserRole = "DRIVER"
)

// StaffRoles are the roles allowed to perform warehouse-side mutations
// such as shipment status updates and pickup scheduling.
var StaffRoles = []UserRole{RoleAdmin, RoleWarehouse, RoleDriver}

func (r UserRole) IsStaff() bool {
	for _, role := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	Email        string   `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Password     string   `json:"-" gorm:"-"` // Temporary field for password handling
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"`
	FirstName    string   `json:"firstName" gorm:"column:first_name;not null"`
	LastName     string   `json:"lastName" gorm:"column:last_name;not null"`
	Phone        string   `json:"phone" gorm:"column:phone"`
	Role         UserRole `json:"role" gorm:"column:role;not null;default:'CUSTOMER'"`
	IsActive     bool     `json:"isActive" gorm:"column:is_active;not null;default:true"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
