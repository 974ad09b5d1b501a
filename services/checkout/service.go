package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// The checkout is a mock: orders are validated and confirmed but never
// persisted or charged, it exists so the purchase flow can be exercised
// end to end against real catalog data.

type Item struct {
	ProductId string  `json:"productId" validate:"required"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type Delivery struct {
	Marina   string `json:"marina"`
	BoatName string `json:"boatName"`
	Slip     string `json:"slip"`
}

type Pickup struct {
	PickupPoint string `json:"pickupPoint"`
}

type Order struct {
	Items    []Item    `json:"items" validate:"required,min=1,dive"`
	Method   string    `json:"method" validate:"required,oneof=DELIVERY PICKUP"`
	Delivery *Delivery `json:"delivery"`
	Pickup   *Pickup   `json:"pickup"`
	Notes    string    `json:"notes" validate:"max=500"`
}

// ValidateMethodFields enforces the requirements the struct tags cannot
// express: which address fields are mandatory depends on the method.
func ValidateMethodFields(order Order) error {
	switch order.Method {
	case "DELIVERY":
		if order.Delivery == nil ||
			strings.TrimSpace(order.Delivery.Marina) == "" ||
			strings.TrimSpace(order.Delivery.BoatName) == "" ||
			strings.TrimSpace(order.Delivery.Slip) == "" {
			return fmt.Errorf("delivery orders require marina, boat name and slip")
		}
	case "PICKUP":
		if order.Pickup == nil || strings.TrimSpace(order.Pickup.PickupPoint) == "" {
			return fmt.Errorf("pickup orders require a pickup point")
		}
	}
	return nil
}

// NewConfirmationId generates an order confirmation id like "YD-1A2B3C".
func NewConfirmationId() (string, error) {
	raw := make([]byte, 3)
	_, err := rand.Read(raw)
	if err != nil {
		return "", err
	}
	return "YD-" + strings.ToUpper(hex.EncodeToString(raw)), nil
}
