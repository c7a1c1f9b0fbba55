package receipt

import (
	"fmt"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
	"gopkg.in/gomail.v2"
)

// SMTPDispatcher emails receipts through an SMTP relay.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPDispatcher(host string, port int, username, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (d *SMTPDispatcher) Send(sale models.Sale) error {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", sale.CustomerEmail)
	m.SetHeader("Subject", Subject(sale))
	m.SetBody("text/plain", Body(sale))

	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt for sale %d: %w", sale.ID, err)
	}
	return nil
}
