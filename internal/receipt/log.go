package receipt

import (
	"log"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

// LogDispatcher writes receipts to the process log. It is the fallback when
// no SMTP relay is configured, so sales still work in local setups.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Send(sale models.Sale) error {
	log.Printf("📧 receipt for sale %d to %s:\n%s", sale.ID, sale.CustomerEmail, Body(sale))
	return nil
}
