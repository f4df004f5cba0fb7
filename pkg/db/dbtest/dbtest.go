// Package dbtest opens throwaway SQLite databases migrated with every model.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
)

// Open returns a fresh in-memory database shared by the connections of one pool.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:aperture_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	conn, err := gorm.Open(db.SQLiteDialector(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// One connection keeps the in-memory database alive between statements.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Client wraps Open in a db.Client for services that need WithTx.
func Client(t testing.TB) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := Open(t)
	return db.NewFromConn(conn), conn
}

// Fixtures creates the rows most storefront tests need.
type Fixtures struct {
	t    testing.TB
	conn *gorm.DB
	cat  *models.Category
	br   *models.Brand
}

func NewFixtures(t testing.TB, conn *gorm.DB) *Fixtures {
	return &Fixtures{t: t, conn: conn}
}

func (f *Fixtures) User(email string) *models.User {
	f.t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Name: "Test Shopper", IsActive: true}
	if err := f.conn.Create(user).Error; err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *Fixtures) Category() *models.Category {
	f.t.Helper()
	if f.cat == nil {
		f.cat = &models.Category{Name: "Kitchen", IsActive: true}
		if err := f.conn.Create(f.cat).Error; err != nil {
			f.t.Fatalf("create category: %v", err)
		}
	}
	return f.cat
}

func (f *Fixtures) Brand() *models.Brand {
	f.t.Helper()
	if f.br == nil {
		f.br = &models.Brand{Name: "Prestige", IsActive: true}
		if err := f.conn.Create(f.br).Error; err != nil {
			f.t.Fatalf("create brand: %v", err)
		}
	}
	return f.br
}

// Product creates an active product in the fixture category and brand.
func (f *Fixtures) Product(name string, price int64, stock int) *models.Product {
	f.t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		CategoryID: f.Category().ID,
		BrandID:    f.Brand().ID,
		IsActive:   true,
	}
	if err := f.conn.Create(product).Error; err != nil {
		f.t.Fatalf("create product: %v", err)
	}
	return product
}

func (f *Fixtures) Address(userID uuid.UUID) *models.Address {
	f.t.Helper()
	address := &models.Address{
		UserID:   userID,
		Name:     "Asha",
		Mobile:   "9876543210",
		Pincode:  "682001",
		Locality: "Fort Kochi",
		City:     "Kochi",
		State:    "Kerala",
		Type:     enums.AddressTypeHome,
	}
	if err := f.conn.Create(address).Error; err != nil {
		f.t.Fatalf("create address: %v", err)
	}
	return address
}

func (f *Fixtures) Coupon(code string, discount int64) *models.Coupon {
	f.t.Helper()
	coupon := &models.Coupon{Code: code, Discount: decimal.NewFromInt(discount)}
	if err := f.conn.Create(coupon).Error; err != nil {
		f.t.Fatalf("create coupon: %v", err)
	}
	return coupon
}

// Stock reads the current stock of a product.
func (f *Fixtures) Stock(productID uuid.UUID) int {
	f.t.Helper()
	var product models.Product
	if err := f.conn.First(&product, "id = ?", productID).Error; err != nil {
		f.t.Fatalf("load product: %v", err)
	}
	return product.Stock
}
