package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// wishlistRepositoryInMemory — in-memory реализация WishlistRepository.
// Каталог нужен, чтобы подставлять актуальные карточки товаров при чтении,
// как это делает SQL-реализация.
type wishlistRepositoryInMemory struct {
	mu      sync.Mutex
	catalog domain.CatalogRepository
	items   map[string]domain.WishlistItem
}

// NewWishlistRepository возвращает in-memory репозиторий избранного.
func NewWishlistRepository(catalog domain.CatalogRepository) domain.WishlistRepository {
	return &wishlistRepositoryInMemory{
		catalog: catalog,
		items:   make(map[string]domain.WishlistItem),
	}
}

// Add сохраняет запись; повтор (user, product) сливается в
// ErrWishlistDuplicate так же, как уникальный индекс в SQL-реализации.
func (r *wishlistRepositoryInMemory) Add(item domain.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return domain.ErrWishlistDuplicate
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *wishlistRepositoryInMemory) Get(itemID string) (domain.WishlistItem, error) {
	r.mu.Lock()
	item, ok := r.items[itemID]
	r.mu.Unlock()

	if !ok {
		return domain.WishlistItem{}, domain.ErrWishlistItemNotFound
	}
	return r.withCatalogFields(item)
}

// ListByUser возвращает избранное в порядке добавления с актуальными
// каталожными данными.
func (r *wishlistRepositoryInMemory) ListByUser(userID string) ([]domain.WishlistItem, error) {
	r.mu.Lock()
	result := make([]domain.WishlistItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].AddedAt.Equal(result[j].AddedAt) {
			return result[i].AddedAt.Before(result[j].AddedAt)
		}
		return result[i].ID < result[j].ID
	})

	for i := range result {
		item, err := r.withCatalogFields(result[i])
		if err != nil {
			return nil, err
		}
		result[i] = item
	}
	return result, nil
}

func (r *wishlistRepositoryInMemory) Remove(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return domain.ErrWishlistItemNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *wishlistRepositoryInMemory) withCatalogFields(item domain.WishlistItem) (domain.WishlistItem, error) {
	product, err := r.catalog.GetProduct(item.ProductID)
	if err != nil {
		return domain.WishlistItem{}, err
	}
	item.ProductName = product.Name
	item.PriceMinor = product.PriceMinor
	item.ImageURL = product.ImageURL
	return item, nil
}

var _ domain.WishlistRepository = (*wishlistRepositoryInMemory)(nil)
