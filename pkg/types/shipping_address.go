package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is the by-value copy of a saved address stored on an order.
// It survives deletion of the address it was copied from.
type ShippingAddress struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Pincode  string `json:"pincode"`
	Locality string `json:"locality"`
	City     string `json:"city"`
	State    string `json:"state"`
	Landmark string `json:"landmark,omitempty"`
	Type     string `json:"type"`
}

// Validate reports the first missing required field.
func (a ShippingAddress) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"mobile", a.Mobile},
		{"pincode", a.Pincode},
		{"city", a.City},
		{"state", a.State},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("shipping address: missing %s", field.name)
		}
	}
	return nil
}

// Value marshals the snapshot into JSON for the jsonb column.
func (a ShippingAddress) Value() (driver.Value, error) {
	buf, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes the jsonb column.
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("shipping address: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*a = ShippingAddress{}
		return nil
	}
	return json.Unmarshal(raw, a)
}
