package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spaethfarms/storefront/internal/cart"
	"github.com/spaethfarms/storefront/pkg/messaging"
	"github.com/spaethfarms/storefront/pkg/messaging/events"
)

// ErrEmptyCart indicates a checkout was submitted for a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// CustomerDto is the shipping form collected at checkout.
type CustomerDto struct {
	Email                string `json:"email"                 validate:"required,email"`
	FirstName            string `json:"first_name"            validate:"required,max=100"`
	LastName             string `json:"last_name"             validate:"required,max=100"`
	Phone                string `json:"phone"                 validate:"max=30"`
	Address              string `json:"address"               validate:"required,max=200"`
	Apartment            string `json:"apartment"             validate:"max=100"`
	City                 string `json:"city"                  validate:"required,max=100"`
	State                string `json:"state"                 validate:"required,max=50"`
	ZipCode              string `json:"zip_code"              validate:"required,max=20"`
	DeliveryInstructions string `json:"delivery_instructions" validate:"max=500"`
}

// ConfirmationDto is returned once an order is accepted.
type ConfirmationDto struct {
	OrderNumber string `json:"order_number"`
	Totals      Totals `json:"totals"`
}

// Submission is everything handed to the OrderSubmitter: the cart snapshot
// with server-side prices, the customer form, and the derived totals.
type Submission struct {
	OrderNumber string
	Items       []cart.LineItem
	Customer    CustomerDto
	Totals      Totals
}

// OrderSubmitter is the external boundary an order crosses on submit (a
// payment processor in a real deployment). Implementations must honor ctx
// cancellation: an abandoned submission completes nowhere and mutates
// nothing.
type OrderSubmitter interface {
	Submit(ctx context.Context, submission Submission) error
}

// SimulatedSubmitter stands in for a payment processor: it waits the
// configured delay and succeeds. Explicitly a stub; swap in a real
// OrderSubmitter to take payments.
type SimulatedSubmitter struct {
	Delay time.Duration
}

// Submit waits the configured delay, honoring cancellation.
func (s *SimulatedSubmitter) Submit(ctx context.Context, _ Submission) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Service defines checkout operations.
type Service interface {
	// Quote derives totals for a subtotal using the current rates.
	Quote(subtotalCents int64) Totals

	// Rates returns the currently configured rates.
	Rates() Rates

	// Submit places an order for the cart's current lines. The cart is
	// cleared only after the submitter accepts the order; any failure
	// leaves the cart intact. Returns ErrEmptyCart for a cart with no
	// lines.
	Submit(ctx context.Context, cartStore *cart.Store, customer CustomerDto) (*ConfirmationDto, error)
}

type checkoutService struct {
	submitter OrderSubmitter
	publisher messaging.Publisher
	rates     func() Rates
	logger    *slog.Logger
}

// NewService creates a checkout Service. rates is read on every use so
// settings edits take effect without a restart.
func NewService(submitter OrderSubmitter, publisher messaging.Publisher, rates func() Rates, logger *slog.Logger) Service {
	return &checkoutService{
		submitter: submitter,
		publisher: publisher,
		rates:     rates,
		logger:    logger.With("component", "checkout"),
	}
}

func (s *checkoutService) Quote(subtotalCents int64) Totals {
	return ComputeTotals(subtotalCents, s.rates())
}

func (s *checkoutService) Rates() Rates {
	return s.rates()
}

func (s *checkoutService) Submit(ctx context.Context, cartStore *cart.Store, customer CustomerDto) (*ConfirmationDto, error) {
	items := cartStore.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	totals := ComputeTotals(cartStore.SubtotalCents(), s.rates())
	submission := Submission{
		OrderNumber: newOrderNumber(),
		Items:       items,
		Customer:    customer,
		Totals:      totals,
	}

	if err := s.submitter.Submit(ctx, submission); err != nil {
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	// Confirmation events are best-effort; a broker outage must not undo
	// an accepted order.
	event := events.OrderConfirmedEvent{
		OrderNumber:   submission.OrderNumber,
		CustomerEmail: customer.Email,
		SubtotalCents: totals.SubtotalCents,
		ShippingCents: totals.ShippingCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		ConfirmedAt:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order confirmed event", "order_number", submission.OrderNumber, "error", err)
	}

	cartStore.Clear(ctx)
	s.logger.InfoContext(ctx, "order confirmed", "order_number", submission.OrderNumber, "total_cents", totals.TotalCents)

	return &ConfirmationDto{OrderNumber: submission.OrderNumber, Totals: totals}, nil
}

// newOrderNumber generates a short human-readable order reference.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return "SF-" + suffix
}
