package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Profile   `gorm:"embedded"` // Embeds contact fields directly
	IsOwner   bool              `json:"isOwner"`

	ResetToken        *string    `gorm:"index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// Profile holds optional contact details embedded in User
type Profile struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
