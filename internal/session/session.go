package session

import (
	"context"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// DefaultTTL — время жизни сессии по умолчанию.
const DefaultTTL = 24 * time.Hour

// ErrNotFound возвращается, когда сессия не существует или истекла.
var ErrNotFound = errors.New("session: not found")

// Session — серверное состояние аутентифицированного пользователя.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Auth возвращает идентичность сессии для передачи в сервисы.
func (s Session) Auth() domain.AuthContext {
	return domain.AuthContext{UserID: s.UserID, Role: s.Role}
}

// Expired сообщает, истекла ли сессия.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store описывает хранилище сессий.
type Store interface {
	// Create сохраняет новую сессию с заданным TTL.
	Create(ctx context.Context, userID string, role domain.Role, ttl time.Duration) (Session, error)
	// Get возвращает сессию или ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Delete удаляет сессию; удаление несуществующей не ошибка.
	Delete(ctx context.Context, id string) error
}
