package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/internal/coupons"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/db/dbtest"
	"github.com/C00lPIXER/aperture/pkg/db/models"
)

type cartEnv struct {
	svc  Service
	conn *gorm.DB
	fx   *dbtest.Fixtures
	user *models.User
}

func newCartEnv(t *testing.T) cartEnv {
	t.Helper()
	client, conn := dbtest.Client(t)
	couponSvc, err := coupons.NewService(coupons.NewRepository(conn), client, nil)
	require.NoError(t, err)
	addressSvc, err := address.NewService(address.NewRepository(conn))
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Tx:        client,
		Coupons:   couponSvc,
		Addresses: addressSvc,
		Store:     config.StoreConfig{MaxItemQuantity: 5},
	})
	require.NoError(t, err)
	fx := dbtest.NewFixtures(t, conn)
	return cartEnv{svc: svc, conn: conn, fx: fx, user: fx.User("cart@example.com")}
}

func (e cartEnv) quantity(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	var item models.CartItem
	require.NoError(t, e.conn.Where("product_id = ?", productID).First(&item).Error)
	return item.Quantity
}

func TestAddInformsGuestsAndSoldOut(t *testing.T) {
	env := newCartEnv(t)
	product := env.fx.Product("Kettle", 100, 3)
	soldOut := env.fx.Product("Toaster", 100, 0)
	ctx := context.Background()

	res, err := env.svc.Add(ctx, nil, product.ID)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Please log in to continue adding items to your cart", res.Info)

	res, err = env.svc.Add(ctx, &env.user.ID, soldOut.ID)
	require.NoError(t, err)
	require.Equal(t, "Item curently out of stock ", res.Info)

	var carts int64
	require.NoError(t, env.conn.Model(&models.Cart{}).Count(&carts).Error)
	require.Zero(t, carts)
}

func TestAddCreatesCartAndDoesNotIncrement(t *testing.T) {
	env := newCartEnv(t)
	product := env.fx.Product("Kettle", 100, 3)
	ctx := context.Background()

	res, err := env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Item added to cart", res.Message)

	res, err = env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Item already in cart", res.Info)
	require.Equal(t, 1, env.quantity(t, product.ID))
}

func TestChangeQuantityStaysWithinBounds(t *testing.T) {
	env := newCartEnv(t)
	product := env.fx.Product("Kettle", 100, 2)
	ctx := context.Background()
	_, err := env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)

	res, err := env.svc.ChangeQuantity(ctx, env.user.ID, product.ID, true)
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = env.svc.ChangeQuantity(ctx, env.user.ID, product.ID, true)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Cannot exceed maximum quantity or stock limit", res.Message)
	require.Equal(t, 2, env.quantity(t, product.ID))

	_, err = env.svc.ChangeQuantity(ctx, env.user.ID, product.ID, false)
	require.NoError(t, err)
	res, err = env.svc.ChangeQuantity(ctx, env.user.ID, product.ID, false)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Quantity cannot be less than 1", res.Message)
	require.Equal(t, 1, env.quantity(t, product.ID))

	res, err = env.svc.ChangeQuantity(ctx, env.user.ID, uuid.New(), true)
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestChangeQuantityCapsAtFive(t *testing.T) {
	env := newCartEnv(t)
	product := env.fx.Product("Plates", 100, 50)
	ctx := context.Background()
	_, err := env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := env.svc.ChangeQuantity(ctx, env.user.ID, product.ID, true)
		require.NoError(t, err)
	}
	require.Equal(t, 5, env.quantity(t, product.ID))
}

func TestRemoveIsUnconditional(t *testing.T) {
	env := newCartEnv(t)
	product := env.fx.Product("Kettle", 100, 3)
	ctx := context.Background()

	res, err := env.svc.Remove(ctx, env.user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Item removed", res.Message)

	_, err = env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)
	_, err = env.svc.Remove(ctx, env.user.ID, product.ID)
	require.NoError(t, err)

	var items int64
	require.NoError(t, env.conn.Model(&models.CartItem{}).Count(&items).Error)
	require.Zero(t, items)
}

func TestLoadPurgesSoldOutAndReleasesCoupon(t *testing.T) {
	env := newCartEnv(t)
	kettle := env.fx.Product("Kettle", 100, 3)
	toaster := env.fx.Product("Toaster", 250, 3)
	env.fx.Coupon("SAVE50", 50)
	ctx := context.Background()

	_, err := env.svc.Add(ctx, &env.user.ID, kettle.ID)
	require.NoError(t, err)
	_, err = env.svc.Add(ctx, &env.user.ID, toaster.ID)
	require.NoError(t, err)
	_, err = env.svc.ChangeQuantity(ctx, env.user.ID, kettle.ID, true)
	require.NoError(t, err)

	couponSvc, err := coupons.NewService(coupons.NewRepository(env.conn), db.NewFromConn(env.conn), nil)
	require.NoError(t, err)
	applied, err := couponSvc.Apply(ctx, env.user.ID, "SAVE50")
	require.NoError(t, err)
	require.True(t, applied.Success)

	require.NoError(t, env.conn.Model(&models.Product{}).Where("id = ?", toaster.ID).Update("stock", 0).Error)
	require.NoError(t, env.conn.Model(&models.Product{}).Where("id = ?", kettle.ID).Update("price", decimal.NewFromInt(120)).Error)

	view, err := env.svc.Load(ctx, env.user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, kettle.ID, view.Items[0].ProductID)
	require.True(t, view.TotalPrice.Equal(decimal.NewFromInt(240)), "total %s", view.TotalPrice)
	require.Nil(t, view.CouponCode)
	require.True(t, view.Discount.IsZero())

	var coupon models.Coupon
	require.NoError(t, env.conn.First(&coupon, "code = ?", "SAVE50").Error)
	require.Equal(t, 0, coupon.UsedCount)
}

func TestLoadMissingCart(t *testing.T) {
	env := newCartEnv(t)
	view, err := env.svc.Load(context.Background(), env.user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.True(t, view.TotalPrice.IsZero())
}

func TestCheckoutRedirectsEmptyCartAndKeepsCoupon(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	view, err := env.svc.Checkout(ctx, env.user.ID)
	require.NoError(t, err)
	require.Equal(t, "/cart", view.Redirect)

	product := env.fx.Product("Kettle", 100, 3)
	env.fx.Address(env.user.ID)
	_, err = env.svc.Add(ctx, &env.user.ID, product.ID)
	require.NoError(t, err)
	code := "SAVE10"
	require.NoError(t, env.conn.Model(&models.Cart{}).Where("user_id = ?", env.user.ID).Updates(map[string]any{"coupon_code": code, "discount": decimal.NewFromInt(10)}).Error)

	view, err = env.svc.Checkout(ctx, env.user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Redirect)
	require.Len(t, view.Addresses, 1)
	require.NotNil(t, view.Cart.CouponCode)
	require.True(t, view.Cart.Discount.Equal(decimal.NewFromInt(10)))
	require.True(t, view.Cart.TotalPrice.Equal(decimal.NewFromInt(100)))
}
