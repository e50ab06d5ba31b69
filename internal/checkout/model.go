// Package checkout implements order submission: form validation, totals
// with the free-shipping rule, order number generation, and the PostgreSQL
// repository writing an order and its items in one transaction.
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending         = "pending"
	PaymentCashOnDelivery = "cash_on_delivery"
)

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	PostalCode      string          `json:"postal_code,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Form is the shipping/contact information collected at checkout.
// swagger:model CheckoutForm
type Form struct {
	CustomerName    string `json:"customer_name"    example:"Amina Benali"`
	CustomerEmail   string `json:"customer_email"   example:"amina@example.com"`
	CustomerPhone   string `json:"customer_phone"   example:"+212612345678"`
	ShippingAddress string `json:"shipping_address" example:"12 Rue des Orangers"`
	City            string `json:"city"             example:"Casablanca"`
	PostalCode      string `json:"postal_code"      example:"20000"`
	Notes           string `json:"notes"`
}

// ValidationError reports missing or malformed form fields.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("invalid checkout form: %s", strings.Join(keys, ", "))
}

// Validate checks the required fields. Postal code and notes are optional.
func (f Form) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(f.CustomerName) == "" {
		fields["customer_name"] = "required"
	}
	email := strings.TrimSpace(f.CustomerEmail)
	if email == "" {
		fields["customer_email"] = "required"
	} else if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		fields["customer_email"] = "invalid email"
	}
	if strings.TrimSpace(f.CustomerPhone) == "" {
		fields["customer_phone"] = "required"
	}
	if strings.TrimSpace(f.ShippingAddress) == "" {
		fields["shipping_address"] = "required"
	}
	if strings.TrimSpace(f.City) == "" {
		fields["city"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// NewOrderNumber generates a human-referenceable order number. The uuid
// suffix keeps two submissions in the same millisecond from colliding.
func NewOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("CMD-%d-%s", time.Now().UnixMilli(), suffix)
}
