package handlers

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateStaffRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required,min=2"`
	LastName  string `json:"lastName" binding:"required,min=2"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required,oneof=ADMIN WAREHOUSE DRIVER"`
}

// GetStaff lists staff accounts. Admin only.
func GetStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var staff []models.User
		if err := db.
			Where("role IN ?", []models.UserRole{models.RoleAdmin, models.RoleWarehouse, models.RoleDriver}).
			Order("created_at DESC").
			Find(&staff).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch staff members"})
			return
		}

		c.JSON(200, gin.H{"staff": staff})
	}
}

// CreateStaff provisions a staff account. A duplicate email is a
// conflict, not a validation error.
func CreateStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateStaffRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "User with this email already exists"})
			return
		}

		user := models.User{
			Email:     input.Email,
			Password:  input.Password,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Role:      models.UserRole(input.Role),
			IsActive:  true,
		}
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create staff member"})
			return
		}

		c.JSON(201, gin.H{"staff": user})
	}
}
