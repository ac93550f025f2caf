package domain

import "time"

// Role определяет уровень доступа пользователя.
type Role string

const (
	// RoleCustomer — обычный покупатель.
	RoleCustomer Role = "customer"
	// RoleAdmin — администратор магазина.
	RoleAdmin Role = "admin"
)

// User описывает учётную запись покупателя или администратора.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
}

// AuthContext — явная идентичность аутентифицированного пользователя,
// передаваемая в операции вместо mutable-состояния сессии.
type AuthContext struct {
	UserID string
	Role   Role
}

// IsAdmin сообщает, обладает ли пользователь правами администратора.
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns проверяет, принадлежит ли ресурс с данным владельцем пользователю.
func (a AuthContext) Owns(ownerID string) bool {
	return a.UserID != "" && a.UserID == ownerID
}
