// Package receipt turns completed sales into customer-facing receipt messages
// and delivers them. The caller does not observe delivery success or failure.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/models"
)

// Dispatcher delivers a receipt for a completed sale. Implementations must be
// safe to invoke repeatedly for the same sale (resend).
type Dispatcher interface {
	Send(sale models.Sale) error
}

// Subject builds the receipt subject line for a sale.
func Subject(sale models.Sale) string {
	return fmt.Sprintf("Receipt from Adoma's Boutique - Order #%d", sale.ID)
}

// Body builds the plain-text receipt body for a sale.
func Body(sale models.Sale) string {
	customer := sale.CustomerName
	if customer == "" {
		customer = "Valued Customer"
	}

	date := sale.Date
	if ts, err := time.Parse(time.RFC3339, sale.Date); err == nil {
		date = ts.Format("01/02/2006")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", customer)
	b.WriteString("Thank you for your purchase!\n\n")
	b.WriteString("ORDER DETAILS:\n")
	fmt.Fprintf(&b, "Order Number: %d\n", sale.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", date)
	b.WriteString("ITEMS:\n")
	fmt.Fprintf(&b, "- %s x %d\n", sale.ProductName, sale.Quantity)
	fmt.Fprintf(&b, "  Price: $%.2f each\n\n", sale.Price)
	fmt.Fprintf(&b, "TOTAL: $%.2f\n\n", sale.Total)
	if sale.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n\n", sale.Notes)
	}
	b.WriteString("Thank you for shopping with us!\n\n")
	b.WriteString("Best regards,\nBoutique Luxe Team")
	return b.String()
}
