package channels

import (
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the account an EmailClient sends through.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// EmailClient sends plain notification emails through one SMTP account.
type EmailClient struct {
	cfg SMTPConfig
}

// NewEmailClient creates an EmailClient for cfg.
func NewEmailClient(cfg SMTPConfig) *EmailClient {
	return &EmailClient{cfg: cfg}
}

// Send delivers one email to every recipient. No-op when the recipient
// list is empty.
func (c *EmailClient) Send(recipients []string, subject string, body string) error {
	if len(recipients) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", c.cfg.From)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.User, c.cfg.Pass)
	return dialer.DialAndSend(msg)
}
