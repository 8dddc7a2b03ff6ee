package offerControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OfferInput struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	DiscountPercentage params.Loose `json:"discountPercentage"`
	DiscountAmount     params.Loose `json:"discountAmount"`
	StartDate          string       `json:"startDate"`
	EndDate            string       `json:"endDate"`
	IsActive           params.Loose `json:"isActive"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}

// parseDate accepts RFC3339, datetime-local and plain dates. A plain end date
// covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func positive(l params.Loose) (decimal.Decimal, bool, error) {
	if l == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(string(l))
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, d.IsPositive(), nil
}

func (in OfferInput) apply(o *models.Offer) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return apperr.E(apperr.Validation, "Missing required fields")
	}

	pct, hasPct, err := positive(in.DiscountPercentage)
	if err != nil {
		return apperr.E(apperr.Validation, "Discount percentage must be a number")
	}
	amount, hasAmount, err := positive(in.DiscountAmount)
	if err != nil {
		return apperr.E(apperr.Validation, "Discount amount must be a number")
	}
	if !hasPct && !hasAmount {
		return apperr.E(apperr.Validation, "Either discount percentage or amount is required")
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return apperr.E(apperr.Validation, "Discount percentage cannot exceed 100")
	}

	start, err := parseDate(in.StartDate, false)
	if err != nil {
		return apperr.E(apperr.Validation, "Invalid start date")
	}
	end, err := parseDate(in.EndDate, true)
	if err != nil {
		return apperr.E(apperr.Validation, "Invalid end date")
	}
	if start != nil && end != nil && end.Before(*start) {
		return apperr.E(apperr.Validation, "End date must be after start date")
	}

	o.Title = strings.TrimSpace(in.Title)
	o.Description = strings.TrimSpace(in.Description)
	o.DiscountPercentage = decimal.Zero
	if hasPct {
		o.DiscountPercentage = pct
	}
	o.DiscountAmount = decimal.NullDecimal{}
	if hasAmount {
		o.DiscountAmount = decimal.NewNullDecimal(amount)
	}
	o.StartDate = start
	o.EndDate = end
	o.IsActive = in.IsActive.Truthy()
	return nil
}

// VisibleOffers returns the offers shown publicly at now, newest first.
func VisibleOffers(db *gorm.DB, now time.Time) ([]models.Offer, error) {
	var active []models.Offer
	if err := db.Where("is_active = ?", true).Order("created_at DESC, id DESC").Find(&active).Error; err != nil {
		return nil, err
	}
	visible := make([]models.Offer, 0, len(active))
	for _, o := range active {
		if o.VisibleAt(now) {
			visible = append(visible, o)
		}
	}
	return visible, nil
}

func loadOffer(db *gorm.DB, c *gin.Context) (models.Offer, error) {
	var offer models.Offer
	id, err := params.ID(c, "id", "Offer")
	if err != nil {
		return offer, err
	}
	err = db.First(&offer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return offer, apperr.E(apperr.NotFound, "Offer not found")
	}
	if err != nil {
		return offer, apperr.Wrap(err, "load offer")
	}
	return offer, nil
}

// GET /offers
func GetOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers, err := VisibleOffers(db, time.Now())
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list offers"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"offers": offers})
	}
}

// GET /admin/offers
func GetAllOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers := []models.Offer{}
		if err := db.Order("created_at DESC, id DESC").Find(&offers).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list offers"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"offers": offers})
	}
}

// GET /offers/:id
func GetOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, err := loadOffer(db, c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"offer": offer})
	}
}

// POST /offers
func CreateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input OfferInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}

		var offer models.Offer
		if err := input.apply(&offer); err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Create(&offer).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "create offer"))
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Offer created successfully", "offer": offer})
	}
}

// PUT /offers/:id
func UpdateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, err := loadOffer(db, c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input OfferInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}
		if err := input.apply(&offer); err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := db.Model(&offer).
			Select("title", "description", "discount_percentage", "discount_amount", "start_date", "end_date", "is_active").
			Updates(&offer).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "update offer"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Offer updated successfully", "offer": offer})
	}
}

// DELETE /offers/:id
func DeleteOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, err := loadOffer(db, c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Delete(&offer).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "delete offer"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully"})
	}
}
