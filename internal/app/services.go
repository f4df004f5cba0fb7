// Package app assembles the storefront services from their repositories so
// the API binary and the router tests share one wiring.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/internal/auth"
	"github.com/C00lPIXER/aperture/internal/cart"
	"github.com/C00lPIXER/aperture/internal/catalog"
	"github.com/C00lPIXER/aperture/internal/coupons"
	"github.com/C00lPIXER/aperture/internal/orders"
	"github.com/C00lPIXER/aperture/internal/reports"
	"github.com/C00lPIXER/aperture/internal/users"
	"github.com/C00lPIXER/aperture/internal/wallet"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/logger"
	"github.com/C00lPIXER/aperture/pkg/metrics"
	"github.com/C00lPIXER/aperture/pkg/outbox"
)

// SessionStore issues, rotates and checks refresh sessions.
type SessionStore interface {
	Generate(ctx context.Context, accessID string, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (uuid.UUID, string, string, error)
	Revoke(ctx context.Context, accessID string) error
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Sessions SessionStore
	Metrics  *metrics.StoreMetrics
}

type Services struct {
	Auth          auth.Service
	Register      auth.RegisterService
	AdminRegister auth.AdminRegisterService
	Catalog       catalog.Service
	Cart          cart.Service
	Coupons       coupons.Service
	Orders        orders.Service
	Wallet        wallet.Service
	Addresses     address.Service
	Reports       reports.Service
	Exporter      *reports.Exporter
}

func Build(p Params) (*Services, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("config required")
	}
	if p.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if p.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	conn := p.DB.DB()
	cfg := p.Config

	userRepo := users.NewRepository(conn)
	addressRepo := address.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	emitter := outbox.NewService(outbox.NewRepository(conn), p.Logger)

	var (
		out Services
		err error
	)
	if out.Auth, err = auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: p.Sessions,
		JWTConfig:      cfg.JWT,
	}); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	if out.Register, err = auth.NewRegisterService(auth.RegisterServiceParams{
		Users:          userRepo,
		PasswordConfig: cfg.Password,
	}); err != nil {
		return nil, fmt.Errorf("register service: %w", err)
	}
	if out.AdminRegister, err = auth.NewAdminRegisterService(auth.AdminRegisterServiceParams{
		Users:          userRepo,
		PasswordConfig: cfg.Password,
	}); err != nil {
		return nil, fmt.Errorf("admin register service: %w", err)
	}
	if out.Catalog, err = catalog.NewService(catalog.NewRepository(conn), cfg.Store); err != nil {
		return nil, fmt.Errorf("catalog service: %w", err)
	}
	if out.Addresses, err = address.NewService(addressRepo); err != nil {
		return nil, fmt.Errorf("address service: %w", err)
	}
	if out.Coupons, err = coupons.NewService(coupons.NewRepository(conn), p.DB, p.Metrics); err != nil {
		return nil, fmt.Errorf("coupon service: %w", err)
	}
	if out.Cart, err = cart.NewService(cart.ServiceParams{
		Repo:      cartRepo,
		Tx:        p.DB,
		Coupons:   out.Coupons,
		Addresses: out.Addresses,
		Store:     cfg.Store,
	}); err != nil {
		return nil, fmt.Errorf("cart service: %w", err)
	}
	if out.Wallet, err = wallet.NewService(wallet.ServiceParams{
		Repo:    wallet.NewRepository(conn),
		Outbox:  emitter,
		Metrics: p.Metrics,
	}); err != nil {
		return nil, fmt.Errorf("wallet service: %w", err)
	}
	if out.Orders, err = orders.NewService(orders.ServiceParams{
		Repo:      orders.NewRepository(conn),
		Carts:     cartRepo,
		Addresses: addressRepo,
		Wallet:    out.Wallet,
		Tx:        p.DB,
		Outbox:    emitter,
		Metrics:   p.Metrics,
		Logger:    p.Logger,
		Store:     cfg.Store,
	}); err != nil {
		return nil, fmt.Errorf("order service: %w", err)
	}
	if out.Reports, err = reports.NewService(reports.NewRepository(conn), userRepo, cfg.Reports); err != nil {
		return nil, fmt.Errorf("report service: %w", err)
	}
	out.Exporter = reports.NewExporter(cfg.Reports)
	return &out, nil
}
