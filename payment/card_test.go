package payment_test

import (
	"testing"

	"storefront/payment"

	"github.com/stretchr/testify/assert"
)

func TestValidateCard(t *testing.T) {
	testCases := []struct {
		cardNumber string
		valid      bool
	}{
		{cardNumber: "4111111111111111", valid: true},
		{cardNumber: "4111111111111112", valid: false},
		{cardNumber: "4242424242424242", valid: true},
		{cardNumber: "4000000000000002", valid: true},
		{cardNumber: "79927398713", valid: true},
		{cardNumber: "79927398710", valid: false},
		{cardNumber: "0", valid: true},
		{cardNumber: "4111-1111", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.cardNumber, func(t *testing.T) {
			assert.Equal(t, tc.valid, payment.ValidateCard(tc.cardNumber))
		})
	}
}
