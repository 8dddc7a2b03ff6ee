package database

import (
	"errors"
	"log"

	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

var seedCategories = []models.Category{
	{Name: "Lipsticks", Description: "Bold and beautiful lip colors"},
	{Name: "Lip Liners", Description: "Define and shape your lips"},
	{Name: "Foundation", Description: "Flawless base for every skin tone"},
	{Name: "Eyeshadow", Description: "Palettes and singles for every look"},
	{Name: "Mascara", Description: "Length and volume for your lashes"},
	{Name: "Blush", Description: "A natural flush of color"},
}

type seedUser struct {
	email, password, first, last string
	owner                        bool
}

var seedUsers = []seedUser{
	{"owner@glamourcosmetics.com", "Owner123!", "Store", "Owner", true},
	{"user@example.com", "User123!", "Jane", "Doe", false},
}

// Seed inserts the default categories and accounts. Rows that already exist
// are left alone so it can run on every start.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range seedCategories {
			c := c
			if err := tx.Where(models.Category{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
		}

		for _, su := range seedUsers {
			var existing models.User
			err := tx.Where("email = ?", su.email).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			hash, err := auth.HashPassword(su.password)
			if err != nil {
				return err
			}
			u := models.User{
				Email:     su.email,
				Password:  hash,
				FirstName: su.first,
				LastName:  su.last,
				IsOwner:   su.owner,
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			log.Printf("🌱 Seeded user %s", su.email)
		}
		return nil
	})
}
