package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// StoreMetrics counts storefront business events: orders, wallet movements
// and coupon releases.
type StoreMetrics struct {
	ordersPlaced   *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	walletMoves    *prometheus.CounterVec
	walletAmount   *prometheus.CounterVec
	couponReleases prometheus.Counter
}

// NewStoreMetrics registers the storefront collectors on reg. A nil
// registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	m := &StoreMetrics{
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders placed, by payment method.",
		}, []string{"payment_method"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_transition_total",
			Help: "Order status transitions after placement.",
		}, []string{"transition"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_rejections_total",
			Help: "Checkout attempts rejected before an order was written.",
		}, []string{"reason"}),
		walletMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_movements_total",
			Help: "Wallet debits and credits.",
		}, []string{"type"}),
		walletAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_movement_amount_sum",
			Help: "Sum of wallet movement amounts in rupees.",
		}, []string{"type"}),
		couponReleases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_coupon_releases_total",
			Help: "Coupons released because the cart changed.",
		}),
	}
	reg.MustRegister(m.ordersPlaced, m.transitions, m.rejections, m.walletMoves, m.walletAmount, m.couponReleases)
	return m
}

func (m *StoreMetrics) OrderPlaced(paymentMethod string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(label(paymentMethod)).Inc()
}

// OrderTransition records "cancelled" or "returned".
func (m *StoreMetrics) OrderTransition(transition string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(label(transition)).Inc()
}

func (m *StoreMetrics) OrderRejected(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(label(reason)).Inc()
}

func (m *StoreMetrics) WalletMovement(kind string, amount decimal.Decimal) {
	if m == nil || m.walletMoves == nil {
		return
	}
	m.walletMoves.WithLabelValues(label(kind)).Inc()
	m.walletAmount.WithLabelValues(label(kind)).Add(amount.InexactFloat64())
}

func (m *StoreMetrics) CouponReleased() {
	if m == nil || m.couponReleases == nil {
		return
	}
	m.couponReleases.Inc()
}
