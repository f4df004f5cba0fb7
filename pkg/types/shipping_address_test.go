package types

import "testing"

func TestShippingAddressRoundTripsThroughScanner(t *testing.T) {
	addr := ShippingAddress{
		Name:     "Asha",
		Mobile:   "9876543210",
		Pincode:  "682001",
		Locality: "Fort Kochi",
		City:     "Kochi",
		State:    "Kerala",
		Type:     "home",
	}
	value, err := addr.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned ShippingAddress
	if err := scanned.Scan([]byte(value.(string))); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned != addr {
		t.Fatalf("expected %+v, got %+v", addr, scanned)
	}
}

func TestShippingAddressScanRejectsUnknownType(t *testing.T) {
	var scanned ShippingAddress
	if err := scanned.Scan(42); err == nil {
		t.Fatal("expected error for int input")
	}
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("nil scan should reset, got %v", err)
	}
}

func TestShippingAddressValidate(t *testing.T) {
	addr := ShippingAddress{Name: "Asha", Mobile: "1", Pincode: "2", City: "Kochi"}
	if err := addr.Validate(); err == nil || err.Error() != "shipping address: missing state" {
		t.Fatalf("expected missing state error, got %v", err)
	}
	addr.State = "Kerala"
	if err := addr.Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
