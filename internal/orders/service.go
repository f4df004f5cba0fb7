package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/internal/cart"
	"github.com/C00lPIXER/aperture/internal/wallet"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/logger"
	"github.com/C00lPIXER/aperture/pkg/metrics"
	"github.com/C00lPIXER/aperture/pkg/outbox"
	"github.com/C00lPIXER/aperture/pkg/outbox/payloads"
	"github.com/C00lPIXER/aperture/pkg/pagination"
	"github.com/C00lPIXER/aperture/pkg/types"
)

const (
	msgCartEmpty          = "Cart is empty"
	msgInvalidAddress     = "Invalid shipping address"
	msgInvalidMethod      = "Invalid payment method"
	msgInsufficientWallet = "Insufficient wallet balance"
	msgPlaced             = "Order placed successfully"
	msgOrderNotFound      = "Order not found"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type walletMover interface {
	Debit(ctx context.Context, tx *gorm.DB, m wallet.Movement) (decimal.Decimal, error)
	Credit(ctx context.Context, tx *gorm.DB, m wallet.Movement) (decimal.Decimal, error)
}

// Service places orders and drives the Placed -> Cancelled/Returned machine.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (PlaceResult, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (types.StatusResult, error)
	Return(ctx context.Context, userID, orderID uuid.UUID) (types.StatusResult, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Page) (*OrderList, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo      Repository
	carts     *cart.Repository
	addresses *address.Repository
	wallet    walletMover
	tx        txRunner
	outbox    outbox.Emitter
	metrics   *metrics.StoreMetrics
	logg      *logger.Logger
	codLimit  decimal.Decimal
	now       func() time.Time
}

// ServiceParams bundles the collaborators of the order service.
type ServiceParams struct {
	Repo      Repository
	Carts     *cart.Repository
	Addresses *address.Repository
	Wallet    walletMover
	Tx        txRunner
	Outbox    outbox.Emitter
	Metrics   *metrics.StoreMetrics
	Logger    *logger.Logger
	Store     config.StoreConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if params.Wallet == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	limit := params.Store.CODLimit
	if limit <= 0 {
		limit = 5000
	}
	return &service{
		repo:      params.Repo,
		carts:     params.Carts,
		addresses: params.Addresses,
		wallet:    params.Wallet,
		tx:        params.Tx,
		outbox:    params.Outbox,
		metrics:   params.Metrics,
		logg:      params.Logger,
		codLimit:  decimal.NewFromInt(int64(limit)),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// rejection aborts the placement transaction with a shopper facing message.
type rejection struct {
	reason  string
	message string
}

func (r *rejection) Error() string { return r.message }

func reject(reason, message string) error {
	return &rejection{reason: reason, message: message}
}

func (s *service) codLimitMessage() string {
	return fmt.Sprintf("Cash on Delivery is not available for orders above ₹%s", s.codLimit.String())
}

// Place converts the cart into an order. The order row, wallet debit, stock
// decrements, cart delete and order.placed event commit together or not at all.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (PlaceResult, error) {
	if input.UserID == uuid.Nil {
		return PlaceResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.TotalPrice.IsNegative() {
		return PlaceResult{}, pkgerrors.New(pkgerrors.CodeValidation, "totalPrice must not be negative")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.PaymentMethod == string(enums.PaymentMethodCOD) && input.TotalPrice.GreaterThan(s.codLimit) {
			return reject("cod_limit", s.codLimitMessage())
		}

		c, err := s.carts.WithTx(tx).FindByUser(ctx, input.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if c == nil || len(c.Items) == 0 {
			return reject("cart_empty", msgCartEmpty)
		}

		addr, err := s.addresses.WithTx(tx).FindForUser(ctx, input.UserID, input.ShippingAddressID)
		if err != nil {
			if address.IsNotFound(err) {
				return reject("invalid_address", msgInvalidAddress)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
		}

		method, err := enums.ParsePaymentMethod(input.PaymentMethod)
		if err != nil {
			return reject("invalid_payment_method", msgInvalidMethod)
		}

		order := buildOrder(input, c, addr, method)
		order.PlacedAt = s.now()
		repo := s.repo.WithTx(tx)

		if method == enums.PaymentMethodWallet {
			// A zero total is settled without a history row.
			if !input.TotalPrice.IsZero() {
				_, err := s.wallet.Debit(ctx, tx, wallet.Movement{
					UserID:      input.UserID,
					Amount:      input.TotalPrice,
					Description: fmt.Sprintf("Payment for order %s", order.ID),
					OrderID:     &order.ID,
				})
				if errors.Is(err, wallet.ErrInsufficientBalance) {
					return reject("insufficient_wallet", msgInsufficientWallet)
				}
				if err != nil {
					return err
				}
			}
			order.PaymentStatus = enums.PaymentStatusCompleted
		}

		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		for _, item := range order.Items {
			ok, err := repo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return reject("insufficient_stock", fmt.Sprintf("Insufficient stock for %s", item.Name))
			}
		}

		if err := s.carts.WithTx(tx).Delete(ctx, c.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
		}

		if err := s.outbox.Emit(ctx, tx, placedEvent(order)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit order placed")
		}
		placed = order
		return nil
	})

	var rej *rejection
	if errors.As(err, &rej) {
		s.metrics.OrderRejected(rej.reason)
		return PlaceResult{Success: false, Message: rej.message}, nil
	}
	if err != nil {
		return PlaceResult{}, err
	}

	s.metrics.OrderPlaced(placed.PaymentMethod.String())
	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, placed.ID.String())
		s.logg.Info(s.logg.WithField(logCtx, "payment_method", placed.PaymentMethod.String()), "order placed")
	}
	orderID := placed.ID
	return PlaceResult{Success: true, Message: msgPlaced, OrderID: &orderID}, nil
}

func buildOrder(input PlaceOrderInput, c *models.Cart, addr *models.Address, method enums.PaymentMethod) *models.Order {
	order := &models.Order{
		ID:              uuid.New(),
		UserID:          input.UserID,
		ShippingAddress: address.Snapshot(addr),
		PaymentMethod:   method,
		TotalPrice:      input.TotalPrice,
		Discount:        c.Discount,
		CouponCode:      c.CouponCode,
		OrderStatus:     enums.OrderStatusPlaced,
		PaymentStatus:   enums.PaymentStatusPending,
	}
	for _, item := range c.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return order
}

func placedEvent(order *models.Order) outbox.DomainEvent {
	lines := make([]payloads.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, payloads.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return outbox.DomainEvent{
		EventType:     enums.EventOrderPlaced,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: order.UserID},
		Data: payloads.OrderPlacedEvent{
			OrderID:       order.ID,
			UserID:        order.UserID,
			PaymentMethod: order.PaymentMethod,
			TotalPrice:    order.TotalPrice,
			Discount:      order.Discount,
			CouponCode:    order.CouponCode,
			Items:         lines,
		},
	}
}

func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (types.StatusResult, error) {
	return s.transition(ctx, userID, orderID, enums.OrderStatusCancelled)
}

func (s *service) Return(ctx context.Context, userID, orderID uuid.UUID) (types.StatusResult, error) {
	return s.transition(ctx, userID, orderID, enums.OrderStatusReturned)
}

// transition moves a Placed order to target exactly once. Repeats report the
// state already reached and never refund twice.
func (s *service) transition(ctx context.Context, userID, orderID uuid.UUID, target enums.OrderStatus) (types.StatusResult, error) {
	var result types.StatusResult
	transitioned := false
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindForUser(ctx, userID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = types.StatusResult{Status: false, Message: msgOrderNotFound}
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.OrderStatus.IsTerminal() {
			result = alreadyResult(order.OrderStatus, target)
			return nil
		}

		refund := order.PaymentMethod.RefundsToWallet()
		change := StatusChange{Status: target, At: s.now()}
		if refund {
			refunded := enums.PaymentStatusRefunded
			change.PaymentStatus = &refunded
		}
		ok, err := repo.TransitionFromPlaced(ctx, order.ID, change)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !ok {
			current, err := repo.FindForUser(ctx, userID, orderID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
			}
			result = alreadyResult(current.OrderStatus, target)
			return nil
		}

		refundedAmount := decimal.Zero
		if refund && !order.TotalPrice.IsZero() {
			if _, err := s.wallet.Credit(ctx, tx, wallet.Movement{
				UserID:      userID,
				Amount:      order.TotalPrice,
				Description: fmt.Sprintf("Refund for order %s", order.ID),
				OrderID:     &order.ID,
			}); err != nil {
				return err
			}
			refundedAmount = order.TotalPrice
		}

		for _, item := range order.Items {
			if err := repo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore stock")
			}
		}

		paymentStatus := order.PaymentStatus
		if change.PaymentStatus != nil {
			paymentStatus = *change.PaymentStatus
		}
		eventType := enums.EventOrderCancelled
		if target == enums.OrderStatusReturned {
			eventType = enums.EventOrderReturned
		}
		event := outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Data: payloads.OrderStatusEvent{
				OrderID:       order.ID,
				UserID:        userID,
				Status:        target,
				PaymentStatus: paymentStatus,
				Refunded:      refundedAmount,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit order transition")
		}

		transitioned = true
		result = types.StatusResult{Status: true, Message: "Order " + statusWord(target)}
		return nil
	})
	if err != nil {
		return types.StatusResult{}, err
	}
	if transitioned {
		s.metrics.OrderTransition(statusWord(target))
	}
	return result, nil
}

// alreadyResult reports a repeat of the same transition as success and a
// conflicting terminal state as failure.
func alreadyResult(current, target enums.OrderStatus) types.StatusResult {
	return types.StatusResult{
		Status:  current == target,
		Message: "Order already " + statusWord(current),
	}
}

func statusWord(status enums.OrderStatus) string {
	switch status {
	case enums.OrderStatusCancelled:
		return "cancelled"
	case enums.OrderStatusReturned:
		return "returned"
	default:
		return "placed"
	}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Page) (*OrderList, error) {
	if page.Number < 1 {
		page.Number = 1
	}
	page.Limit = pagination.NormalizeLimit(page.Limit)
	rows, total, err := s.repo.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return &OrderList{
		Orders:      out,
		Total:       total,
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
	}, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := FromModel(*order)
	return &dto, nil
}
