package events

import (
	"encoding/json"
	"time"

	"github.com/spaethfarms/storefront/pkg/messaging"
)

type OrderConfirmedEvent struct {
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	SubtotalCents int64     `json:"subtotal_cents"`
	ShippingCents int64     `json:"shipping_cents"`
	TaxCents      int64     `json:"tax_cents"`
	TotalCents    int64     `json:"total_cents"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

func (o OrderConfirmedEvent) Subject() string {
	return messaging.OrdersConfirmedSubject
}

func (o OrderConfirmedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
