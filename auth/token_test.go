package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/glamourcosmetics/storefront-api/models"
)

func TestIssueValidate(t *testing.T) {
	tokens := NewTokens("secret", 7*24*time.Hour)
	raw, err := tokens.Issue(models.User{ID: 42, Email: "a@b.co", IsOwner: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tokens.Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@b.co" || !claims.IsOwner {
		t.Errorf("claims = %+v", claims)
	}
	if d := time.Until(claims.ExpiresAt.Time); d < 6*24*time.Hour || d > 7*24*time.Hour {
		t.Errorf("expiry in %v, want about 7 days", d)
	}
}

func TestValidateCollapsesFailures(t *testing.T) {
	good := NewTokens("secret", time.Hour)
	expired, _ := NewTokens("secret", -time.Hour).Issue(models.User{ID: 1})
	forged, _ := NewTokens("nope", time.Hour).Issue(models.User{ID: 1})

	for name, raw := range map[string]string{
		"malformed": "abc.def.ghi",
		"expired":   expired,
		"forged":    forged,
		"empty":     "",
	} {
		if _, err := good.Validate(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestPassword(t *testing.T) {
	Cost = 4
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
