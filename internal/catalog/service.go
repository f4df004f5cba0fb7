package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

// Service serves the read-only storefront pages.
type Service interface {
	Home(ctx context.Context) ([]ProductDTO, error)
	Shop(ctx context.Context, query ShopQuery) (*ShopPage, error)
	ProductDetail(ctx context.Context, idOrSlug string) (*ProductDetail, error)
}

type service struct {
	repo   *Repository
	limits config.StoreConfig
}

func NewService(repo *Repository, limits config.StoreConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if limits.PageLimit <= 0 {
		limits.PageLimit = 12
	}
	if limits.RelatedLimit <= 0 {
		limits.RelatedLimit = 8
	}
	if limits.HomeLimit <= 0 {
		limits.HomeLimit = 12
	}
	return &service{repo: repo, limits: limits}, nil
}

func (s *service) Home(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, s.limits.HomeLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return productsFromModels(rows), nil
}

func (s *service) Shop(ctx context.Context, query ShopQuery) (*ShopPage, error) {
	page := query.Page
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Limit < 1 {
		page.Limit = s.limits.PageLimit
	}

	brandNames := splitNames(query.Brand)
	categoryNames := splitNames(query.Category)

	brandIDs, err := s.repo.BrandIDsByName(ctx, brandNames)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve brands")
	}
	categoryIDs, err := s.repo.CategoryIDsByName(ctx, categoryNames)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve categories")
	}

	filter := listFilter{
		Terms:       searchTerms(query.Search),
		CategoryIDs: categoryIDs,
		BrandIDs:    brandIDs,
	}
	rows, total, err := s.repo.ListProducts(ctx, filter, sortOrder(query.Sort), page.Offset(), page.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}

	return &ShopPage{
		Products:           productsFromModels(rows),
		TotalProducts:      total,
		CurrentPage:        page.Number,
		TotalPages:         page.TotalPages(total),
		Limit:              page.Limit,
		Categories:         categoriesToDTO(categories),
		Brands:             brandsToDTO(brands),
		Search:             strings.TrimSpace(query.Search),
		Sort:               query.Sort,
		SelectedBrands:     brandNames,
		SelectedCategories: categoryNames,
	}, nil
}

func (s *service) ProductDetail(ctx context.Context, idOrSlug string) (*ProductDetail, error) {
	key := strings.TrimSpace(idOrSlug)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	product, err := s.repo.FindProduct(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	related, err := s.repo.ListRelated(ctx, product, s.limits.RelatedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related products")
	}
	return &ProductDetail{
		Product:         productFromModel(*product),
		RelatedProducts: productsFromModels(related),
	}, nil
}

func categoriesToDTO(rows []models.Category) []NamedDTO {
	out := make([]NamedDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NamedDTO{ID: row.ID, Name: row.Name, Slug: row.Slug})
	}
	return out
}

func brandsToDTO(rows []models.Brand) []NamedDTO {
	out := make([]NamedDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NamedDTO{ID: row.ID, Name: row.Name, Slug: row.Slug})
	}
	return out
}
