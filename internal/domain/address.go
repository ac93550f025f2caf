package domain

import (
	"strings"
	"time"
)

// Address — адрес доставки из адресной книги пользователя. У пользователя
// не более одного адреса с флагом IsDefault.
type Address struct {
	ID            string
	UserID        string
	RecipientName string
	Phone         string
	Line1         string
	Line2         string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate проверяет минимально необходимые для доставки поля.
func (a Address) Validate() error {
	if strings.TrimSpace(a.RecipientName) == "" ||
		strings.TrimSpace(a.Line1) == "" ||
		strings.TrimSpace(a.City) == "" {
		return ErrAddressIncomplete
	}
	return nil
}
