package mail

import (
	"fmt"

	"arguefc/backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SendOTP delivers a one-time password to the given address. Callers fire this
// from a goroutine and log failures; a lost email never fails the request that
// triggered it.
func SendOTP(email, code string) error {
	cfg := config.AppConfig

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your Email Verification Number")
	m.SetBody("text/plain", fmt.Sprintf("Your otp is %s. Ignore this email if you did not request a verification code.", code))

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return d.DialAndSend(m)
}
