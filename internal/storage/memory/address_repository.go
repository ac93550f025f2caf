package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// addressRepositoryInMemory — in-memory реализация AddressRepository.
type addressRepositoryInMemory struct {
	mu        sync.Mutex
	addresses map[string]domain.Address
}

// NewAddressRepository возвращает in-memory адресную книгу.
func NewAddressRepository() domain.AddressRepository {
	return &addressRepositoryInMemory{
		addresses: make(map[string]domain.Address),
	}
}

// Create сохраняет адрес; мьютекс даёт ту же атомарность снятия
// default-флага с остальных адресов, что и транзакция в SQL-реализации.
func (r *addressRepositoryInMemory) Create(addr domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if addr.IsDefault {
		r.clearDefault(addr.UserID, addr.ID)
	}
	r.addresses[addr.ID] = addr
	return nil
}

func (r *addressRepositoryInMemory) Get(id string) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr, ok := r.addresses[id]
	if !ok {
		return domain.Address{}, domain.ErrAddressNotFound
	}
	return addr, nil
}

// ListByUser возвращает адреса: сначала default, далее в порядке создания.
func (r *addressRepositoryInMemory) ListByUser(userID string) ([]domain.Address, error) {
	r.mu.Lock()
	result := make([]domain.Address, 0)
	for _, addr := range r.addresses {
		if addr.UserID == userID {
			result = append(result, addr)
		}
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *addressRepositoryInMemory) Update(addr domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[addr.ID]; !ok {
		return domain.ErrAddressNotFound
	}
	if addr.IsDefault {
		r.clearDefault(addr.UserID, addr.ID)
	}
	addr.UpdatedAt = time.Now().UTC()
	r.addresses[addr.ID] = addr
	return nil
}

func (r *addressRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(r.addresses, id)
	return nil
}

// clearDefault вызывается строго под r.mu.
func (r *addressRepositoryInMemory) clearDefault(userID, exceptID string) {
	for id, addr := range r.addresses {
		if addr.UserID == userID && addr.IsDefault && id != exceptID {
			addr.IsDefault = false
			r.addresses[id] = addr
		}
	}
}

var _ domain.AddressRepository = (*addressRepositoryInMemory)(nil)
