package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/parapharma/storefront/internal/cart"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderPlaced is the event published after an order commits.
type OrderPlaced struct {
	OrderNumber string    `json:"order_number"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher pushes order events to the broker. A nil Publisher disables
// publishing.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlaced) error
}

type Service struct {
	repo Repository
	pub  Publisher
}

func NewService(repo Repository, pub Publisher) *Service {
	return &Service{repo: repo, pub: pub}
}

// Submit runs the checkout flow: guard empty cart, validate the form,
// compute totals, then write the order and its items transactionally.
// On any error the cart is left for the caller to retry with; the caller
// clears it only after Submit returns the created order.
func (s *Service) Submit(ctx context.Context, form Form, lines []cart.Item) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	totals := ComputeTotals(lines)
	o := &Order{
		ID:              uuid.NewString(),
		OrderNumber:     NewOrderNumber(),
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		ShippingAddress: form.ShippingAddress,
		City:            form.City,
		PostalCode:      form.PostalCode,
		TotalAmount:     totals.Total,
		Status:          StatusPending,
		PaymentMethod:   PaymentCashOnDelivery,
		Notes:           form.Notes,
	}

	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ID:           uuid.NewString(),
			OrderID:      o.ID,
			ProductID:    l.ProductID,
			ProductName:  l.Name,
			ProductPrice: l.Price,
			Quantity:     l.Quantity,
			Subtotal:     l.Subtotal(),
		})
	}

	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.pub != nil {
		// Best-effort, after the transaction commits.
		if err := s.pub.PublishOrderPlaced(ctx, OrderPlaced{
			OrderNumber: o.OrderNumber,
			TotalAmount: o.TotalAmount.String(),
			ItemCount:   len(items),
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			log.Printf("[checkout] publish order event failed order=%s err=%v", o.OrderNumber, err)
		}
	}
	return o, nil
}
