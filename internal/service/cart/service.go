package cart

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// Service описывает операции над корзиной покупателя.
type Service interface {
	// GetCart возвращает корзину пользователя вместе с позициями и суммой.
	GetCart(auth domain.AuthContext, userID string) (View, error)
	// AddItem добавляет товар в корзину, сливая дубликаты по (товар, вариант).
	AddItem(auth domain.AuthContext, productID string, variantID string, quantity int32) error
	// SetQuantity выставляет абсолютное количество позиции.
	SetQuantity(auth domain.AuthContext, lineID string, quantity int32) error
	// RemoveItem удаляет позицию корзины.
	RemoveItem(auth domain.AuthContext, lineID string) error
	// Clear опустошает корзину пользователя.
	Clear(auth domain.AuthContext) error
}

// View — корзина с позициями и пересчитанной суммой.
type View struct {
	Cart       domain.Cart
	Lines      []domain.CartLine
	TotalMinor int64
}

type service struct {
	carts   domain.CartRepository
	catalog domain.CatalogRepository
	logger  *log.Entry
}

// NewService создаёт сервис корзины.
func NewService(carts domain.CartRepository, catalog domain.CatalogRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &service{carts: carts, catalog: catalog, logger: logger}
}

func (s *service) GetCart(auth domain.AuthContext, userID string) (View, error) {
	if auth.UserID == "" {
		return View{}, domain.ErrUnauthenticated
	}
	// Чужую корзину видит только администратор.
	if !auth.Owns(userID) && !auth.IsAdmin() {
		return View{}, domain.ErrForbidden
	}

	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return View{}, err
	}
	lines, err := s.carts.ListLines(cart.ID)
	if err != nil {
		return View{}, err
	}
	total, err := s.carts.Total(cart.ID)
	if err != nil {
		return View{}, err
	}

	return View{Cart: cart, Lines: lines, TotalMinor: total}, nil
}

func (s *service) AddItem(auth domain.AuthContext, productID string, variantID string, quantity int32) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	if _, err := s.catalog.GetProduct(productID); err != nil {
		return err
	}

	variant := domain.NoVariant()
	if variantID != "" {
		v, err := s.catalog.GetVariant(variantID)
		if err != nil {
			return err
		}
		if v.ProductID != productID {
			return domain.ErrVariantNotFound
		}
		variant = domain.SomeVariant(variantID)
	}

	cart, err := s.carts.GetOrCreate(auth.UserID)
	if err != nil {
		return err
	}

	if err := s.carts.UpsertLine(cart.ID, productID, variant, quantity); err != nil {
		return err
	}

	s.logger.WithFields(log.Fields{
		"user_id":    auth.UserID,
		"product_id": productID,
		"quantity":   quantity,
	}).Debug("cart item added")

	return nil
}

func (s *service) SetQuantity(auth domain.AuthContext, lineID string, quantity int32) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if err := s.ownsLine(auth, lineID); err != nil {
		return err
	}
	return s.carts.SetQuantity(lineID, quantity)
}

func (s *service) RemoveItem(auth domain.AuthContext, lineID string) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.ownsLine(auth, lineID); err != nil {
		// Несуществующая позиция — идемпотентное удаление.
		if err == domain.ErrLineNotFound {
			return nil
		}
		return err
	}
	return s.carts.RemoveLine(lineID)
}

func (s *service) Clear(auth domain.AuthContext) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}
	cart, err := s.carts.GetOrCreate(auth.UserID)
	if err != nil {
		return err
	}
	return s.carts.Clear(cart.ID)
}

// ownsLine проверяет, что позиция принадлежит корзине пользователя.
func (s *service) ownsLine(auth domain.AuthContext, lineID string) error {
	cart, err := s.carts.GetOrCreate(auth.UserID)
	if err != nil {
		return err
	}
	lines, err := s.carts.ListLines(cart.ID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.ID == lineID {
			return nil
		}
	}
	return domain.ErrLineNotFound
}

var _ Service = (*service)(nil)
