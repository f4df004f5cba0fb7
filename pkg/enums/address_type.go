package enums

import (
	"fmt"
	"strings"
)

// AddressType labels a saved shipping address.
type AddressType string

const (
	AddressTypeHome AddressType = "home"
	AddressTypeWork AddressType = "work"
)

var validAddressTypes = []AddressType{AddressTypeHome, AddressTypeWork}

func (a AddressType) String() string {
	return string(a)
}

func (a AddressType) IsValid() bool {
	for _, candidate := range validAddressTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddressType converts raw input into an AddressType. Empty input maps to home.
func ParseAddressType(value string) (AddressType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return AddressTypeHome, nil
	}
	for _, candidate := range validAddressTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid address type %q", value)
}
