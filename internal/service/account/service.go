package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// Service управляет учётными записями покупателей.
type Service interface {
	// Register создаёт учётную запись. Email нормализуется к нижнему регистру.
	Register(email, password, name string) (domain.User, error)
	// Login проверяет пару email/пароль и возвращает пользователя.
	Login(email, password string) (domain.User, error)
	// GetByID возвращает пользователя по идентификатору.
	GetByID(id string) (domain.User, error)
}

var (
	// ErrWeakPassword возвращается при пароле короче минимума.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrEmailRequired возвращается при пустом email.
	ErrEmailRequired = errors.New("email is required")
)

const minPasswordLen = 8

type service struct {
	users  domain.UserRepository
	logger *log.Entry
}

// NewService создаёт сервис учётных записей.
func NewService(users domain.UserRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "account")
	}
	return &service{users: users, logger: logger}
}

func (s *service) Register(email, password, name string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, ErrEmailRequired
	}
	if len(password) < minPasswordLen {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return domain.User{}, err
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func (s *service) Login(email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Не раскрываем, существует ли учётная запись.
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *service) GetByID(id string) (domain.User, error) {
	return s.users.GetByID(id)
}

var _ Service = (*service)(nil)
