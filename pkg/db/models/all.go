package models

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Brand{},
		&Product{},
		&Address{},
		&Coupon{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Wallet{},
		&WalletTransaction{},
		&OutboxEvent{},
		&OutboxDLQ{},
	}
}
