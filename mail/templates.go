package mail

import (
	"fmt"
	"html"
)

func PasswordReset(to, resetURL string) Message {
	u := html.EscapeString(resetURL)
	return Message{
		To:      to,
		Subject: "Reset your password",
		Text:    fmt.Sprintf("Reset your password:\n%s\nThis link expires in 60 minutes.", resetURL),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Reset your password</h2>
  <p>We received a request to reset your password. Click the link below to set a new password. This link will expire in 60 minutes.</p>
  <p><a href="%[1]s" style="background:#ec4899;color:#fff;padding:10px 16px;border-radius:6px;text-decoration:none;">Reset Password</a></p>
  <p>If the button doesn't work, copy and paste this URL into your browser:</p>
  <p><a href="%[1]s">%[1]s</a></p>
  <p>If you didn't request this, you can ignore this email.</p>
</div>`, u),
	}
}

func SubscriptionConfirmation(to string) Message {
	return Message{
		To:      to,
		Subject: "You are subscribed to " + SiteName,
		Text:    fmt.Sprintf("Thanks for subscribing to %s! We'll send you our best deals and updates.", SiteName),
		HTML:    fmt.Sprintf("<p>Thanks for subscribing to <strong>%s</strong>! We'll send you our best deals and updates.</p>", SiteName),
	}
}
