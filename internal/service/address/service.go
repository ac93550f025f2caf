package address

import (
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// Service управляет адресной книгой покупателя.
type Service interface {
	// List возвращает адреса пользователя, адрес по умолчанию первым.
	List(auth domain.AuthContext) ([]domain.Address, error)
	// Create сохраняет новый адрес и возвращает его.
	Create(auth domain.AuthContext, input domain.Address) (domain.Address, error)
	// Update перезаписывает адрес пользователя и возвращает результат.
	Update(auth domain.AuthContext, input domain.Address) (domain.Address, error)
	// Delete удаляет адрес пользователя.
	Delete(auth domain.AuthContext, addressID string) error
}

type service struct {
	addresses domain.AddressRepository
	logger    *log.Entry
}

// NewService создаёт сервис адресной книги.
func NewService(addresses domain.AddressRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "address")
	}
	return &service{addresses: addresses, logger: logger}
}

func (s *service) List(auth domain.AuthContext) ([]domain.Address, error) {
	if auth.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.addresses.ListByUser(auth.UserID)
}

func (s *service) Create(auth domain.AuthContext, input domain.Address) (domain.Address, error) {
	if auth.UserID == "" {
		return domain.Address{}, domain.ErrUnauthenticated
	}

	addr := normalize(input)
	addr.ID = uuid.NewString()
	addr.UserID = auth.UserID
	now := time.Now().UTC()
	addr.CreatedAt = now
	addr.UpdatedAt = now

	if err := addr.Validate(); err != nil {
		return domain.Address{}, err
	}
	if err := s.addresses.Create(addr); err != nil {
		return domain.Address{}, err
	}

	s.logger.WithFields(log.Fields{
		"user_id":    auth.UserID,
		"address_id": addr.ID,
	}).Debug("address added")

	return addr, nil
}

func (s *service) Update(auth domain.AuthContext, input domain.Address) (domain.Address, error) {
	if auth.UserID == "" {
		return domain.Address{}, domain.ErrUnauthenticated
	}

	existing, err := s.addresses.Get(input.ID)
	if err != nil {
		return domain.Address{}, err
	}
	// Чужой адрес неотличим от несуществующего.
	if !auth.Owns(existing.UserID) {
		return domain.Address{}, domain.ErrAddressNotFound
	}

	addr := normalize(input)
	addr.ID = existing.ID
	addr.UserID = existing.UserID
	addr.CreatedAt = existing.CreatedAt
	addr.UpdatedAt = time.Now().UTC()

	if err := addr.Validate(); err != nil {
		return domain.Address{}, err
	}
	if err := s.addresses.Update(addr); err != nil {
		return domain.Address{}, err
	}

	return addr, nil
}

func (s *service) Delete(auth domain.AuthContext, addressID string) error {
	if auth.UserID == "" {
		return domain.ErrUnauthenticated
	}

	existing, err := s.addresses.Get(addressID)
	if err != nil {
		return err
	}
	if !auth.Owns(existing.UserID) {
		return domain.ErrAddressNotFound
	}

	return s.addresses.Delete(addressID)
}

func normalize(addr domain.Address) domain.Address {
	addr.RecipientName = strings.TrimSpace(addr.RecipientName)
	addr.Phone = strings.TrimSpace(addr.Phone)
	addr.Line1 = strings.TrimSpace(addr.Line1)
	addr.Line2 = strings.TrimSpace(addr.Line2)
	addr.City = strings.TrimSpace(addr.City)
	addr.State = strings.TrimSpace(addr.State)
	addr.PostalCode = strings.TrimSpace(addr.PostalCode)
	addr.Country = strings.TrimSpace(addr.Country)
	return addr
}

var _ Service = (*service)(nil)
