package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db/dbtest"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB, *dbtest.Fixtures) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), config.StoreConfig{PageLimit: 12, RelatedLimit: 8, HomeLimit: 12})
	require.NoError(t, err)
	return svc, conn, dbtest.NewFixtures(t, conn)
}

func TestShopSearchMatchesWholeWords(t *testing.T) {
	svc, _, fx := newTestService(t)
	fx.Product("Steel Pan", 500, 3)
	fx.Product("Panasonic Mixer", 2500, 3)
	fx.Product("Pressure Cooker", 1800, 3)

	page, err := svc.Shop(context.Background(), ShopQuery{Search: "PAN", Page: pagination.Page{Number: 1, Limit: 12}})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Steel Pan", page.Products[0].Name)

	page, err = svc.Shop(context.Background(), ShopQuery{Search: "pan cooker", Sort: SortNameAsc, Page: pagination.Page{Number: 1, Limit: 12}})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.Equal(t, "Pressure Cooker", page.Products[0].Name)
	require.Equal(t, "Steel Pan", page.Products[1].Name)
}

func TestShopPaginatesAndSorts(t *testing.T) {
	svc, _, fx := newTestService(t)
	fx.Product("Alpha", 300, 1)
	fx.Product("Bravo", 100, 1)
	fx.Product("Charlie", 200, 1)

	page, err := svc.Shop(context.Background(), ShopQuery{Sort: SortPriceAsc, Page: pagination.Page{Number: 2, Limit: 2}})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.TotalProducts)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Alpha", page.Products[0].Name)
	require.Len(t, page.Categories, 1)
	require.Len(t, page.Brands, 1)

	page, err = svc.Shop(context.Background(), ShopQuery{Sort: SortNameDesc})
	require.NoError(t, err)
	require.Equal(t, 12, page.Limit)
	require.Equal(t, 1, page.CurrentPage)
	require.Equal(t, "Charlie", page.Products[0].Name)
}

func TestShopFiltersByBrandAndCategoryNames(t *testing.T) {
	svc, conn, fx := newTestService(t)
	fx.Product("Kettle", 900, 2)
	other := &models.Brand{Name: "Hawkins", IsActive: true}
	require.NoError(t, conn.Create(other).Error)
	hawkins := &models.Product{
		Name:       "Hawkins Cooker",
		Price:      decimal.NewFromInt(1500),
		Stock:      2,
		CategoryID: fx.Category().ID,
		BrandID:    other.ID,
		IsActive:   true,
	}
	require.NoError(t, conn.Create(hawkins).Error)

	page, err := svc.Shop(context.Background(), ShopQuery{Brand: "Hawkins"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Hawkins Cooker", page.Products[0].Name)
	require.Equal(t, []string{"Hawkins"}, page.SelectedBrands)

	page, err = svc.Shop(context.Background(), ShopQuery{Brand: "Unknown", Category: "Kitchen"})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
}

func TestShopSkipsInactiveProducts(t *testing.T) {
	svc, conn, fx := newTestService(t)
	fx.Product("Visible", 100, 1)
	hidden := fx.Product("Hidden", 100, 1)
	require.NoError(t, conn.Model(hidden).Update("is_active", false).Error)

	page, err := svc.Shop(context.Background(), ShopQuery{})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Visible", page.Products[0].Name)
}

func TestHomeRequiresActiveBrandAndCategory(t *testing.T) {
	svc, conn, fx := newTestService(t)
	fx.Product("Shown", 100, 1)
	retired := &models.Brand{Name: "Retired", IsActive: true}
	require.NoError(t, conn.Create(retired).Error)
	require.NoError(t, conn.Model(retired).Update("is_active", false).Error)
	require.NoError(t, conn.Create(&models.Product{
		Name:       "Not Shown",
		Price:      decimal.NewFromInt(100),
		Stock:      1,
		CategoryID: fx.Category().ID,
		BrandID:    retired.ID,
		IsActive:   true,
	}).Error)

	products, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Shown", products[0].Name)
	require.Equal(t, "Prestige", products[0].Brand)
	require.Equal(t, "Kitchen", products[0].Category)
}

func TestProductDetailByIDAndSlug(t *testing.T) {
	svc, _, fx := newTestService(t)
	tawa := fx.Product("Tawa", 400, 5)
	fx.Product("Kadai", 600, 5)
	fx.Product("Idli Stand", 300, 5)

	detail, err := svc.ProductDetail(context.Background(), tawa.ID.String())
	require.NoError(t, err)
	require.Equal(t, tawa.ID, detail.Product.ID)
	require.Len(t, detail.RelatedProducts, 2)
	for _, related := range detail.RelatedProducts {
		require.NotEqual(t, tawa.ID, related.ID)
	}

	bySlug, err := svc.ProductDetail(context.Background(), tawa.Slug)
	require.NoError(t, err)
	require.Equal(t, tawa.ID, bySlug.Product.ID)

	_, err = svc.ProductDetail(context.Background(), "missing-product")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
