package wishlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// Service управляет избранным покупателя.
type Service interface {
	// List возвращает избранное пользователя в порядке добавления.
	List(auth domain.AuthContext) ([]domain.WishlistItem, error)
	// Add добавляет товар в избранное. Повтор возвращает ErrWishlistDuplicate.
	Add(auth domain.AuthContext, productID string) (domain.WishlistItem, error)
	// Remove удаляет запись избранного пользователя.
	Remove(auth domain.AuthContext, itemID string) error
}

type service struct {
	items   domain.WishlistRepository
	catalog domain.CatalogRepository
	logger  *log.Entry
}

// NewService создаёт сервис избранного.
func NewService(items domain.WishlistRepository, catalog domain.CatalogRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "wishlist")
	}
	return &service{items: items, catalog: catalog, logger: logger}
}

func (s *service) List(auth domain.AuthContext) ([]domain.WishlistItem, error) {
	if auth.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.items.ListByUser(auth.UserID)
}

func (s *service) Add(auth domain.AuthContext, productID string) (domain.WishlistItem, error) {
	if auth.UserID == "" {
		return domain.WishlistItem{}, domain.ErrUnauthenticated
	}

	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return domain.WishlistItem{}, err
	}

	item := domain.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    auth.UserID,
		ProductID: product.ID,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.items.Add(item); err != nil {
		return domain.WishlistItem{}, err
	}

	item.ProductName = product.Name
	item.PriceMinor = product.PriceMinor
	item.ImageURL = product.ImageURL

	s.logger.WithFields(log.Fields{
		"user_id":    auth.UserID,
		"product_id": product.ID,
	}).Debug("wishlist item added")

	return item, nil
}

func (s *service) Remove(auth domain.AuthContext, itemID string) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}

	item, err := s.items.Get(itemID)
	if err != nil {
		return err
	}
	// Чужая запись неотличима от несуществующей.
	if !auth.Owns(item.UserID) {
		return domain.ErrWishlistItemNotFound
	}

	if err := s.items.Remove(itemID); err != nil {
		// Конкурентное удаление той же записи не ошибка.
		if errors.Is(err, domain.ErrWishlistItemNotFound) {
			return nil
		}
		return err
	}
	return nil
}

var _ Service = (*service)(nil)
