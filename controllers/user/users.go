package userControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
}

func (in UpdateProfileInput) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("phone", in.Phone)
	set("address", in.Address)
	set("city", in.City)
	set("zip_code", in.ZipCode)

	if len(updates) == 0 {
		return nil, apperr.E(apperr.Validation, "No fields to update")
	}
	// Names are required at signup and stay required.
	for _, col := range []string{"first_name", "last_name"} {
		if v, ok := updates[col]; ok && v == "" {
			return nil, apperr.E(apperr.Validation, "First and last name cannot be empty")
		}
	}
	return updates, nil
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

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadUser(db, auth.MustIdentity(c).UserID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PUT /user/profile
//
// Only the fields present in the body change.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.MustIdentity(c)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}
		updates, err := input.updates()
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := loadUser(db, id.UserID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "update profile"))
			return
		}

		user, err = loadUser(db, id.UserID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}
