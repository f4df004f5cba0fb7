package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod is the method a shopper picks at checkout.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "Cash on Delivery"
	PaymentMethodWallet PaymentMethod = "Wallet"
	PaymentMethodPayPal PaymentMethod = "PayPal"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodWallet,
	PaymentMethodPayPal,
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PaymentMethod.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// RefundsToWallet reports whether cancelling or returning an order paid with
// this method credits the shopper's wallet.
func (m PaymentMethod) RefundsToWallet() bool {
	return m == PaymentMethodWallet || m == PaymentMethodPayPal
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validPaymentMethods {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
