package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func TestStoreMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	m.OrderPlaced("Wallet")
	m.OrderPlaced("Wallet")
	m.OrderTransition("cancelled")
	m.OrderRejected("cod_limit")
	m.WalletMovement("credit", decimal.RequireFromString("250.50"))
	m.CouponReleased()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	checks := []struct {
		name, label, value string
		want               float64
	}{
		{"orders_placed_total", "payment_method", "Wallet", 2},
		{"orders_transition_total", "transition", "cancelled", 1},
		{"order_rejections_total", "reason", "cod_limit", 1},
		{"wallet_movements_total", "type", "credit", 1},
		{"wallet_movement_amount_sum", "type", "credit", 250.5},
	}
	for _, c := range checks {
		got, err := fetchCounterValue(mfs, c.name, c.label, c.value)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}

	mf := findMetricFamily(mfs, "cart_coupon_releases_total")
	if mf == nil || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one coupon release")
	}
}

func TestStoreMetricsNilSafe(t *testing.T) {
	var m *StoreMetrics
	m.OrderPlaced("Wallet")
	m.WalletMovement("debit", decimal.NewFromInt(1))
	NewStoreMetrics(nil).CouponReleased()
}

func TestOutboxMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutboxMetrics(reg)
	m.Published("order.placed")
	m.Failed("order.placed", true)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_published_total", "event_type", "order.placed"); err != nil || got != 1 {
		t.Fatalf("published: got %v err %v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_failed_total", "terminal", "true"); err != nil || got != 1 {
		t.Fatalf("failed: got %v err %v", got, err)
	}
}
