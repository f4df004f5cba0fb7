package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCatalogMigrationGuardsStock(t *testing.T) {
	assertContains(t, readMigration(t, "create_catalog"), []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CHECK (stock >= 0)",
		"FOREIGN KEY (category_id) REFERENCES categories(id)",
		"FOREIGN KEY (brand_id) REFERENCES brands(id)",
		"DROP TABLE IF EXISTS products",
	})
}

func TestCartMigrationKeepsOneLinePerProduct(t *testing.T) {
	assertContains(t, readMigration(t, "create_carts_and_coupons"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_cart_product ON cart_items (cart_id, product_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_id ON carts (user_id)",
		"CHECK (used_count >= 0)",
		"CHECK (quantity >= 1)",
	})
}

func TestOrdersMigrationConstrainsStatuses(t *testing.T) {
	assertContains(t, readMigration(t, "create_orders"), []string{
		"shipping_address jsonb NOT NULL",
		"CHECK (order_status IN ('Placed', 'Cancelled', 'Returned'))",
		"CHECK (payment_status IN ('Pending', 'Completed', 'Refunded'))",
		"CHECK (payment_method IN ('Cash on Delivery', 'Wallet', 'PayPal'))",
	})
}

func TestWalletMigrationIsAppendOnly(t *testing.T) {
	assertContains(t, readMigration(t, "create_wallets"), []string{
		"CONSTRAINT chk_wallets_balance CHECK (balance >= 0)",
		"BEFORE UPDATE OR DELETE ON wallet_transactions",
		"DROP TABLE IF EXISTS wallet_transactions",
	})
}

func TestOutboxMigrationIndexesUnpublished(t *testing.T) {
	assertContains(t, readMigration(t, "create_outbox"), []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"WHERE published_at IS NULL",
		"CREATE TABLE IF NOT EXISTS outbox_dlq",
	})
}
