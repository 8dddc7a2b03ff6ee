package adminController

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
	cartControllers "github.com/glamourcosmetics/storefront-api/controllers/cart"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

type UserFilter struct {
	Search string
	Owner  *bool
}

func (f UserFilter) scope(db *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}
	if f.Owner != nil {
		db = db.Where("is_owner = ?", *f.Owner)
	}
	return db
}

func ListUsers(db *gorm.DB, f UserFilter, page params.Page) ([]models.User, int64, error) {
	var total int64
	if err := db.Model(&models.User{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := db.Scopes(f.scope).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GET /admin/users
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := UserFilter{
			Search: c.Query("search"),
			Owner:  params.Bool(c, "isOwner"),
		}
		page := params.PageFrom(c)

		users, total, err := ListUsers(db, f, page)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list users"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":      users,
			"pagination": page.Of(total),
		})
	}
}

func loadUser(db *gorm.DB, id uint) (models.User, error) {
	var user models.User
	err := db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, apperr.E(apperr.NotFound, "User not found")
	}
	if err != nil {
		return user, apperr.Wrap(err, "load user")
	}
	return user, nil
}

// GET /admin/users/:id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "User")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		user, err := loadUser(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var orderCount int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", id).Count(&orderCount).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "count user orders"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "orderCount": orderCount})
	}
}

// GET /admin/users/:id/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "User")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if _, err := loadUser(db, id); err != nil {
			apperr.Respond(c, err)
			return
		}

		cart, err := cartControllers.GetCart(db, id)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load user cart"))
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

type UpdateUserInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsOwner   *bool   `json:"isOwner"`
}

func UpdateUser(db *gorm.DB, userID uint, in UpdateUserInput) error {
	updates := map[string]interface{}{}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.IsOwner != nil {
		updates["is_owner"] = *in.IsOwner
	}
	if len(updates) == 0 {
		return apperr.E(apperr.Validation, "No fields to update")
	}

	res := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return apperr.Wrap(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return apperr.E(apperr.NotFound, "User not found")
	}
	return nil
}

// PATCH /admin/users/:id
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "User")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}
		if err := UpdateUser(db, id, input); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// DeleteUser removes a customer and their cart. Owners cannot delete
// themselves and users with orders are kept.
func DeleteUser(db *gorm.DB, callerID, userID uint) error {
	if callerID == userID {
		return apperr.E(apperr.SelfDelete, "Cannot delete the currently authenticated owner")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadUser(tx, userID); err != nil {
			return err
		}

		var orders int64
		if err := tx.Model(&models.Order{}).Where("user_id = ?", userID).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return apperr.E(apperr.HasOrders, "Cannot delete user with existing orders")
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// DELETE /admin/users/:id
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "User")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		caller := auth.MustIdentity(c)
		if err := DeleteUser(db, caller.UserID, id); err != nil {
			respond(c, err, "delete user")
			return
		}

		log.Printf("🗑️ User %d deleted by %s", id, caller.Email)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
