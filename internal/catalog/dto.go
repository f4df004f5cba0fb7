package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/pagination"
)

const (
	SortPopularity = "popularity"
	SortNewness    = "newness"
	SortPriceAsc   = "priceAsc"
	SortPriceDesc  = "priceDesc"
	SortNameAsc    = "nameAsc"
	SortNameDesc   = "nameDesc"
)

// ShopQuery carries the shop page filters as received from the query string.
type ShopQuery struct {
	Search   string
	Brand    string
	Category string
	Sort     string
	Page     pagination.Page
}

// ProductDTO is the catalog card and detail shape.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Ratings     decimal.Decimal `json:"ratings"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NamedDTO is a category or brand listed in the shop filters.
type NamedDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ShopPage is one page of the shop listing with its filter context.
type ShopPage struct {
	Products           []ProductDTO `json:"products"`
	TotalProducts      int64        `json:"totalProducts"`
	CurrentPage        int          `json:"currentPage"`
	TotalPages         int          `json:"totalPages"`
	Limit              int          `json:"limit"`
	Categories         []NamedDTO   `json:"categories"`
	Brands             []NamedDTO   `json:"brands"`
	Search             string       `json:"search"`
	Sort               string       `json:"sort"`
	SelectedBrands     []string     `json:"selectedBrands"`
	SelectedCategories []string     `json:"selectedCategories"`
}

// ProductDetail is a product plus same-category suggestions.
type ProductDetail struct {
	Product         ProductDTO   `json:"product"`
	RelatedProducts []ProductDTO `json:"relatedProducts"`
}

func productFromModel(p models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Ratings:     p.Ratings,
		CreatedAt:   p.CreatedAt,
	}
	if p.Category != nil {
		dto.Category = p.Category.Name
	}
	if p.Brand != nil {
		dto.Brand = p.Brand.Name
	}
	return dto
}

func productsFromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out
}
