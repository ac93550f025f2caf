package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopease/internal/storage/postgres"
)

// repositories — набор хранилищ, собранный под выбранный драйвер.
type repositories struct {
	Carts     domain.CartRepository
	Orders    domain.OrderRepository
	Payments  domain.PaymentRepository
	Users     domain.UserRepository
	Catalog   domain.CatalogRepository
	Outbox    domain.OutboxRepository
	Wishlists domain.WishlistRepository
	Addresses domain.AddressRepository

	// store не nil только для postgres-драйвера.
	store *postgres.Store
}

// Close освобождает ресурсы хранилища.
func (r *repositories) Close() {
	if r == nil || r.store == nil {
		return
	}
	_ = r.store.Close()
}

// Ping проверяет доступность хранилища; memory-драйвер всегда доступен.
func (r *repositories) Ping(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	return r.store.Ping(ctx)
}

// initStorage собирает репозитории под драйвер из конфигурации.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*repositories, error) {
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		return initPostgresStorage(ctx, cfg, logger)
	case StorageDriverMemory, "":
		return initMemoryStorage(logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func initPostgresStorage(ctx context.Context, cfg Config, logger *log.Entry) (*repositories, error) {
	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres schema is up to date")
	}

	logger.Info("postgres storage initialized")
	return &repositories{
		Carts:     postgres.NewCartRepository(store),
		Orders:    postgres.NewOrderRepository(store),
		Payments:  postgres.NewPaymentRepository(store),
		Users:     postgres.NewUserRepository(store),
		Catalog:   postgres.NewCatalogRepository(store),
		Outbox:    postgres.NewOutboxRepository(store),
		Wishlists: postgres.NewWishlistRepository(store),
		Addresses: postgres.NewAddressRepository(store),
		store:     store,
	}, nil
}

func initMemoryStorage(logger *log.Entry) *repositories {
	catalog := memory.NewCatalogRepository()
	seedDemoCatalog(catalog)

	orders := memory.NewOrderRepository()
	logger.Info("in-memory storage initialized")
	return &repositories{
		Carts:     memory.NewCartRepository(catalog),
		Orders:    orders,
		Payments:  memory.NewPaymentRepository(orders),
		Users:     memory.NewUserRepository(),
		Catalog:   catalog,
		Outbox:    memory.NewOutboxRepository(),
		Wishlists: memory.NewWishlistRepository(catalog),
		Addresses: memory.NewAddressRepository(),
	}
}

// seedDemoCatalog наполняет memory-каталог тем же демо-набором,
// что и seed-миграция postgres.
func seedDemoCatalog(catalog *memory.CatalogRepositoryInMemory) {
	now := time.Now().UTC()
	catalog.PutProduct(domain.Product{
		ID:          "prod-classic-tee",
		Name:        "Classic Tee",
		Description: "Plain cotton t-shirt",
		PriceMinor:  1999,
		ImageURL:    "/images/classic-tee.jpg",
		CreatedAt:   now,
	})
	catalog.PutProduct(domain.Product{
		ID:          "prod-running-shoes",
		Name:        "Running Shoes",
		Description: "Lightweight trainers",
		PriceMinor:  8999,
		ImageURL:    "/images/running-shoes.jpg",
		CreatedAt:   now,
	})
	catalog.PutProduct(domain.Product{
		ID:          "prod-canvas-bag",
		Name:        "Canvas Bag",
		Description: "Everyday tote bag",
		PriceMinor:  2499,
		ImageURL:    "/images/canvas-bag.jpg",
		CreatedAt:   now,
	})
	catalog.PutVariant(domain.Variant{ID: "var-classic-tee-s", ProductID: "prod-classic-tee", Name: "S", Stock: 50})
	catalog.PutVariant(domain.Variant{ID: "var-classic-tee-m", ProductID: "prod-classic-tee", Name: "M", Stock: 50})
	catalog.PutVariant(domain.Variant{ID: "var-classic-tee-l", ProductID: "prod-classic-tee", Name: "L", AdditionalPriceMinor: 200, Stock: 30})
	catalog.PutVariant(domain.Variant{ID: "var-running-shoes-42", ProductID: "prod-running-shoes", Name: "42", Stock: 20})
	catalog.PutVariant(domain.Variant{ID: "var-running-shoes-43", ProductID: "prod-running-shoes", Name: "43", Stock: 15})
}
