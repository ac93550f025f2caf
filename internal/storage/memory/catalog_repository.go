package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// CatalogRepositoryInMemory — in-memory каталог товаров для разработки и тестов.
type CatalogRepositoryInMemory struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	variants map[string]domain.Variant
}

// NewCatalogRepository возвращает пустой in-memory каталог.
func NewCatalogRepository() *CatalogRepositoryInMemory {
	return &CatalogRepositoryInMemory{
		products: make(map[string]domain.Product),
		variants: make(map[string]domain.Variant),
	}
}

// PutProduct добавляет или заменяет товар (используется в тестах и при сидинге).
func (r *CatalogRepositoryInMemory) PutProduct(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
}

// PutVariant добавляет или заменяет вариант товара.
func (r *CatalogRepositoryInMemory) PutVariant(variant domain.Variant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[variant.ID] = variant
}

// GetProduct возвращает товар или ErrProductNotFound.
func (r *CatalogRepositoryInMemory) GetProduct(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetVariant возвращает вариант или ErrVariantNotFound.
func (r *CatalogRepositoryInMemory) GetVariant(id string) (domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.variants[id]
	if !ok {
		return domain.Variant{}, domain.ErrVariantNotFound
	}
	return variant, nil
}

// ListProducts возвращает товары, упорядоченные по имени.
func (r *CatalogRepositoryInMemory) ListProducts(limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, product)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

var _ domain.CatalogRepository = (*CatalogRepositoryInMemory)(nil)
