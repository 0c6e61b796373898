package service

import (
	"fmt"
	"html"
	"time"

	"farm-market-session/model"
	"farm-market-session/util"

	"gopkg.in/gomail.v2"
)

// EmailService mails a notice whenever a new session is established
type EmailService struct {
	dialer *gomail.Dialer
	sender string
}

func NewEmailService(cfg util.SMTPConfig) *EmailService {
	return &EmailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		sender: cfg.SenderName,
	}
}

// NotifySignIn sends the sign-in notice to the user
func (s *EmailService) NotifySignIn(user model.User, at time.Time) error {
	return s.dialer.DialAndSend(s.signInMessage(user, at))
}

func (s *EmailService) signInMessage(user model.User, at time.Time) *gomail.Message {
	m := gomail.NewMessage()

	// Example: "Farm Market <no-reply@farm-market.example>"
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.sender, s.dialer.Username))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "New sign-in to your Farm Market account")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>Hello %s,</h2>
			<p>Your account was signed in on %s.</p>
			<p>If this was not you, sign out everywhere and contact support.</p>
		</div>
	`, html.EscapeString(user.DisplayName()), at.UTC().Format(time.RFC1123))
	m.SetBody("text/html", body)

	return m
}
