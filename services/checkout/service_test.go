package checkout

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func validOrder() Order {
	return Order{
		Items:  []Item{{ProductId: "nh_abc12345", Qty: 2, UnitPrice: 29.9}},
		Method: "DELIVERY",
		Delivery: &Delivery{
			Marina:   "Port Camille Rayon",
			BoatName: "Sirocco",
			Slip:     "B-14",
		},
	}
}

func TestValidateMethodFields(t *testing.T) {
	require.Nil(t, ValidateMethodFields(validOrder()))

	missingSlip := validOrder()
	missingSlip.Delivery.Slip = "   "
	require.NotNil(t, ValidateMethodFields(missingSlip))

	noDelivery := validOrder()
	noDelivery.Delivery = nil
	require.NotNil(t, ValidateMethodFields(noDelivery))

	pickup := Order{
		Items:  validOrder().Items,
		Method: "PICKUP",
		Pickup: &Pickup{PickupPoint: "Quai des Milliardaires"},
	}
	require.Nil(t, ValidateMethodFields(pickup))

	pickup.Pickup.PickupPoint = ""
	require.NotNil(t, ValidateMethodFields(pickup))

	// delivery fields are irrelevant for pickup orders and vice versa
	mixed := validOrder()
	mixed.Pickup = &Pickup{}
	require.Nil(t, ValidateMethodFields(mixed))
}

func TestNewConfirmationId(t *testing.T) {
	pattern := regexp.MustCompile(`^YD-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := NewConfirmationId()
		require.Nil(t, err)
		require.Regexp(t, pattern, id)
		seen[id] = true
	}
	require.Greater(t, len(seen), 1)
}
