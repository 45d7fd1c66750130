package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// SendPasswordResetEmail mails a reset link. Async so the login flow is not
// delayed by SMTP latency.
func SendPasswordResetEmail(to, token string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			log.Println("SMTP_HOST not set, skipping password reset email")
			return
		}
		port := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("PORTAL_BASE_URL"), token)

		e := email.NewEmail()
		e.From = from
		e.To = []string{to}
		e.Subject = "Festival portal password reset"
		e.Text = []byte("A password reset was requested for your festival portal account.\n\n" +
			"Reset link: " + resetLink + "\n\n" +
			"The link expires in 30 minutes. If you did not request this, ignore this email.")

		if err := e.Send(host+":"+port, smtp.PlainAuth("", username, password, host)); err != nil {
			log.Printf("password reset email to %s failed: %v", to, err)
		}
	}()
}

// FlagMailer sends flag-comment notifications to the moderation inbox.
type FlagMailer struct {
	To string
}

func NewFlagMailer() *FlagMailer {
	return &FlagMailer{To: os.Getenv("MODERATION_INBOX")}
}

func (m *FlagMailer) Send(subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" || m.To == "" {
		return fmt.Errorf("flag mailer not configured")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", os.Getenv("SMTP_FROM"))
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(msg)
}
