package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

type emailLookup interface {
	FindEmails(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type Service interface {
	Generate(ctx context.Context, req Request) (*Report, error)
}

type service struct {
	repo  *Repository
	users emailLookup
	loc   *time.Location
	now   func() time.Time
}

func NewService(repo *Repository, users emailLookup, cfg config.ReportsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user lookup required")
	}
	return &service{repo: repo, users: users, loc: cfg.Location(), now: time.Now}, nil
}

func (s *service) Generate(ctx context.Context, req Request) (*Report, error) {
	start, end, err := Range(enums.ParseReportType(req.ReportType), req.StartDate, req.EndDate, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.PlacedBetween(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report orders")
	}
	emails, err := s.users.FindEmails(ctx, customerIDs(orders))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report customers")
	}

	rows := make([]OrderRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, OrderRow{
			ID:          order.ID,
			Customer:    emails[order.UserID],
			Items:       len(order.Items),
			TotalPrice:  order.TotalPrice,
			Discount:    order.Discount,
			CouponCode:  order.CouponCode,
			OrderStatus: order.OrderStatus,
			PlacedAt:    order.PlacedAt.In(s.loc),
		})
	}
	return &Report{Orders: rows, ReportData: Summarize(rows), Start: start, End: end}, nil
}

func customerIDs(orders []models.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		ids = append(ids, order.UserID)
	}
	return ids
}
