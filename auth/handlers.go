package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
}

// POST /auth/signup
func Signup(db *gorm.DB, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}
		input.Email = strings.TrimSpace(input.Email)

		if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
			apperr.Respond(c, apperr.E(apperr.Validation, "Email, password, first name, and last name are required"))
			return
		}
		if !ValidEmail(input.Email) {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid email format"))
			return
		}
		if len(input.Password) < MinPasswordLength {
			apperr.Respond(c, apperr.E(apperr.Validation, "Password must be at least 6 characters long"))
			return
		}

		conflict := apperr.E(apperr.Conflict, "User with this email already exists. Please use the login page instead.")

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "check existing user"))
			return
		}
		if count > 0 {
			apperr.Respond(c, conflict)
			return
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "hash password"))
			return
		}

		user := models.User{
			Email:     input.Email,
			Password:  hash,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Profile: models.Profile{
				Phone:   input.Phone,
				Address: input.Address,
				City:    input.City,
				ZipCode: input.ZipCode,
			},
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, conflict)
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "create user"))
			return
		}

		token, err := tokens.Issue(user)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "issue token"))
			return
		}

		log.Printf("👤 New account %s (id=%d)", user.Email, user.ID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user":    user,
			"token":   token,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/login
func Login(db *gorm.DB, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
			apperr.Respond(c, apperr.E(apperr.Validation, "Email and password are required"))
			return
		}

		bad := apperr.E(apperr.Unauthenticated, "Invalid email or password")

		var user models.User
		err := db.Where("email = ?", strings.TrimSpace(input.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, bad)
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load user"))
			return
		}
		if !CheckPassword(user.Password, input.Password) {
			apperr.Respond(c, bad)
			return
		}

		token, err := tokens.Issue(user)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "issue token"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// GET /auth/me
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := MustIdentity(c)

		var user models.User
		err := db.First(&user, id.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load user"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// POST /auth/change-password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := MustIdentity(c)

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil || input.CurrentPassword == "" || input.NewPassword == "" {
			apperr.Respond(c, apperr.E(apperr.Validation, "Current password and new password are required"))
			return
		}
		if len(input.NewPassword) < MinPasswordLength {
			apperr.Respond(c, apperr.E(apperr.Validation, "New password must be at least 6 characters long"))
			return
		}

		var user models.User
		err := db.First(&user, id.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load user"))
			return
		}

		if !CheckPassword(user.Password, input.CurrentPassword) {
			apperr.Respond(c, apperr.E(apperr.Validation, "Current password is incorrect"))
			return
		}

		hash, err := HashPassword(input.NewPassword)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "hash password"))
			return
		}
		if err := db.Model(&user).Update("password", hash).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "update password"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// ResetOptions controls the forgot-password flow.
type ResetOptions struct {
	TTL     time.Duration
	BaseURL string // falls back to the request host when empty
}

const forgotPasswordReply = "If that email exists, a reset link has been sent."

// POST /auth/forgot-password
//
// The reply is the same whether or not the account exists.
func ForgotPassword(db *gorm.DB, sender mail.Sender, opts ResetOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Email) == "" {
			apperr.Respond(c, apperr.E(apperr.Validation, "Email is required"))
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.TrimSpace(input.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load user"))
			return
		}

		token, err := newResetToken()
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "generate reset token"))
			return
		}
		expires := time.Now().Add(opts.TTL)

		if err := db.Model(&user).Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_token_expires": expires,
		}).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "store reset token"))
			return
		}

		resetURL := baseURL(c, opts.BaseURL) + "/reset-password?token=" + token
		if err := sender.Send(mail.PasswordReset(user.Email, resetURL)); err != nil {
			log.Printf("⚠️ Failed to send reset email to %s: %v", user.Email, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
	}
}

type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// POST /auth/reset-password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" || input.Password == "" {
			apperr.Respond(c, apperr.E(apperr.Validation, "Token and password are required"))
			return
		}
		if len(input.Password) < MinPasswordLength {
			apperr.Respond(c, apperr.E(apperr.Validation, "Password must be at least 6 characters long"))
			return
		}

		invalid := apperr.E(apperr.Validation, "Invalid or expired token")

		var user models.User
		err := db.Where("reset_token = ?", input.Token).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, invalid)
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "load reset token"))
			return
		}
		if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
			apperr.Respond(c, invalid)
			return
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "hash password"))
			return
		}

		// Clearing the token makes it single use.
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password":            hash,
			"reset_token":         nil,
			"reset_token_expires": nil,
		}).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "reset password"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
	}
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func baseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return configured
	}
	host := c.Request.Host
	scheme := "https"
	if strings.Contains(host, "localhost") || strings.HasPrefix(host, "127.") {
		scheme = "http"
	}
	return scheme + "://" + host
}
