package postgres

import (
	"errors"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

func TestCartRepository_PostgresUpsertAndTotal(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	seedUserForIntegrationTest(t, store, "user-1", "user1@example.com")
	seedProductForIntegrationTest(t, store, "p1", 1000)
	seedProductForIntegrationTest(t, store, "p2", 500)
	seedVariantForIntegrationTest(t, store, "v1", "p1")

	repo := NewCartRepository(store)

	cart, err := repo.GetOrCreate("user-1")
	if err != nil {
		t.Fatalf("get or create cart: %v", err)
	}
	again, err := repo.GetOrCreate("user-1")
	if err != nil {
		t.Fatalf("repeat get or create: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("expected stable cart id, got %s and %s", cart.ID, again.ID)
	}

	if err := repo.UpsertLine(cart.ID, "p1", domain.SomeVariant("v1"), 2); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertLine(cart.ID, "p1", domain.SomeVariant("v1"), 3); err != nil {
		t.Fatalf("merge upsert: %v", err)
	}
	if err := repo.UpsertLine(cart.ID, "p1", domain.NoVariant(), 1); err != nil {
		t.Fatalf("variantless upsert: %v", err)
	}
	if err := repo.UpsertLine(cart.ID, "p2", domain.NoVariant(), 1); err != nil {
		t.Fatalf("second product upsert: %v", err)
	}

	lines, err := repo.ListLines(cart.ID)
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Quantity != 5 || !lines[0].Variant.Valid {
		t.Fatalf("expected merged variant line with qty 5, got %+v", lines[0])
	}
	if lines[0].ProductName == "" || lines[0].UnitPriceMinor != 1000 {
		t.Fatalf("catalog join missing: %+v", lines[0])
	}

	total, err := repo.Total(cart.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	// 5×1000 + 1×1000 + 1×500
	if total != 6500 {
		t.Fatalf("total = %d, want 6500", total)
	}
}

func TestCartRepository_PostgresConcurrentUpsert(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	seedUserForIntegrationTest(t, store, "user-1", "user1@example.com")
	seedProductForIntegrationTest(t, store, "p1", 1000)

	repo := NewCartRepository(store)
	cart, err := repo.GetOrCreate("user-1")
	if err != nil {
		t.Fatalf("get or create cart: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.UpsertLine(cart.ID, "p1", domain.NoVariant(), 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert: %v", err)
		}
	}

	lines, err := repo.ListLines(cart.ID)
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != workers {
		t.Fatalf("quantity = %d, want %d", lines[0].Quantity, workers)
	}
}

func TestCartRepository_PostgresSetQuantityRemoveClear(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	seedUserForIntegrationTest(t, store, "user-1", "user1@example.com")
	seedProductForIntegrationTest(t, store, "p1", 1000)

	repo := NewCartRepository(store)
	cart, _ := repo.GetOrCreate("user-1")
	_ = repo.UpsertLine(cart.ID, "p1", domain.NoVariant(), 1)

	lines, _ := repo.ListLines(cart.ID)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	if err := repo.SetQuantity(lines[0].ID, 7); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := repo.SetQuantity("missing", 7); !errors.Is(err, domain.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}

	if err := repo.RemoveLine("missing"); err != nil {
		t.Fatalf("removing missing line should be no-op: %v", err)
	}
	if err := repo.Clear(cart.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	total, err := repo.Total(cart.ID)
	if err != nil {
		t.Fatalf("total after clear: %v", err)
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
}
