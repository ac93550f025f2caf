package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// cartLineRecord хранит позицию без денормализованных каталожных полей:
// они подставляются при чтении, как это делает SQL join.
type cartLineRecord struct {
	id        string
	cartID    string
	productID string
	variant   domain.VariantKey
	quantity  int32
	addedAt   time.Time
}

// cartRepositoryInMemory — in-memory реализация CartRepository для
// локальной разработки и тестов. Каталог нужен, чтобы подставлять
// актуальные цены при чтении, как это делает SQL-реализация.
type cartRepositoryInMemory struct {
	mu      sync.Mutex
	catalog domain.CatalogRepository
	carts   map[string]domain.Cart // userID -> cart
	lines   map[string]*cartLineRecord
}

// NewCartRepository возвращает in-memory репозиторий корзин.
func NewCartRepository(catalog domain.CatalogRepository) domain.CartRepository {
	return &cartRepositoryInMemory{
		catalog: catalog,
		carts:   make(map[string]domain.Cart),
		lines:   make(map[string]*cartLineRecord),
	}
}

// GetOrCreate возвращает корзину пользователя, создавая её при отсутствии.
func (r *cartRepositoryInMemory) GetOrCreate(userID string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		return cart, nil
	}

	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	r.carts[userID] = cart
	return cart, nil
}

// ListLines возвращает позиции корзины в порядке добавления с актуальными
// каталожными данными. Поля записей копируются под мьютексом: конкурентный
// UpsertLine/SetQuantity меняет quantity тех же записей.
func (r *cartRepositoryInMemory) ListLines(cartID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	result := r.snapshotLines(cartID)
	r.mu.Unlock()

	for i := range result {
		product, err := r.catalog.GetProduct(result[i].ProductID)
		if err != nil {
			return nil, err
		}
		result[i].ProductName = product.Name
		result[i].UnitPriceMinor = product.PriceMinor
		result[i].ImageURL = product.ImageURL
	}
	return result, nil
}

// UpsertLine добавляет позицию или увеличивает количество существующей.
// Мьютекс сериализует конкурентные добавления так же, как уникальный
// индекс с upsert-ом в SQL-реализации.
func (r *cartRepositoryInMemory) UpsertLine(cartID, productID string, variant domain.VariantKey, quantity int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.lines {
		if rec.cartID == cartID && rec.productID == productID && rec.variant.Equal(variant) {
			rec.quantity += quantity
			return nil
		}
	}

	rec := &cartLineRecord{
		id:        uuid.NewString(),
		cartID:    cartID,
		productID: productID,
		variant:   variant,
		quantity:  quantity,
		addedAt:   time.Now().UTC(),
	}
	r.lines[rec.id] = rec
	return nil
}

// SetQuantity выставляет абсолютное количество позиции.
func (r *cartRepositoryInMemory) SetQuantity(lineID string, quantity int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lines[lineID]
	if !ok {
		return domain.ErrLineNotFound
	}
	rec.quantity = quantity
	return nil
}

// RemoveLine удаляет позицию; отсутствие позиции не считается ошибкой.
func (r *cartRepositoryInMemory) RemoveLine(lineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, lineID)
	return nil
}

// Clear удаляет все позиции корзины.
func (r *cartRepositoryInMemory) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.lines {
		if rec.cartID == cartID {
			delete(r.lines, id)
		}
	}
	return nil
}

// Total возвращает сумму корзины по актуальным ценам каталога.
func (r *cartRepositoryInMemory) Total(cartID string) (int64, error) {
	lines, err := r.ListLines(cartID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, line := range lines {
		total += line.LineTotalMinor()
	}
	return total, nil
}

// snapshotLines вызывается строго под r.mu.
func (r *cartRepositoryInMemory) snapshotLines(cartID string) []domain.CartLine {
	records := make([]*cartLineRecord, 0)
	for _, rec := range r.lines {
		if rec.cartID == cartID {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].addedAt.Equal(records[j].addedAt) {
			return records[i].addedAt.Before(records[j].addedAt)
		}
		return records[i].id < records[j].id
	})

	result := make([]domain.CartLine, 0, len(records))
	for _, rec := range records {
		result = append(result, domain.CartLine{
			ID:        rec.id,
			CartID:    rec.cartID,
			ProductID: rec.productID,
			Variant:   rec.variant,
			Quantity:  rec.quantity,
		})
	}
	return result
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
