package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/wishlist-ai/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestConversionMigrationEnforcesOneScorePerEntry(t *testing.T) {
	content := readMigration(t, "*_create_conversion_records_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS conversion_records",
		"REFERENCES wishlist_entries (id) ON DELETE CASCADE",
		"CHECK (score BETWEEN 0 AND 100)",
		"CREATE UNIQUE INDEX IF NOT EXISTS conversion_records_wishlist_id_key",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWishlistMigrationHasCompositeKey(t *testing.T) {
	content := readMigration(t, "*_create_wishlist_entries_table.sql")
	if !strings.Contains(content, "ON wishlist_entries (store_id, customer_id, product_id)") {
		t.Fatal("expected unique index over store/customer/product")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Score Index")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_score_index.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
