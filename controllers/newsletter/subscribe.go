// Package newsletterControllers handles mailing list signups.
package newsletterControllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddSubscriber records email. A repeat signup is not an error.
func AddSubscriber(db *gorm.DB, email string) error {
	email = strings.TrimSpace(email)
	if !auth.ValidEmail(email) {
		return apperr.E(apperr.Validation, "Valid email is required")
	}
	sub := models.Subscriber{Email: email}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
		return apperr.Wrap(err, "add subscriber")
	}
	return nil
}

// POST /subscribe
func Subscribe(db *gorm.DB, sender mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Valid email is required"))
			return
		}
		if err := AddSubscriber(db, input.Email); err != nil {
			apperr.Respond(c, err)
			return
		}

		email := strings.TrimSpace(input.Email)
		if err := sender.Send(mail.SubscriptionConfirmation(email)); err != nil {
			log.Printf("⚠️ subscription mail to %s failed: %v", email, err)
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
	}
}
