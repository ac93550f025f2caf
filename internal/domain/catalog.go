package domain

import "time"

// Product описывает товар каталога. Цены хранятся в минимальных
// денежных единицах (центы), как и во всех остальных сущностях.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceMinor  int64
	ImageURL    string
	CategoryID  string
	CreatedAt   time.Time
}

// Variant описывает вариант товара (размер, цвет и т.п.).
type Variant struct {
	ID string
	// ProductID — товар, к которому относится вариант.
	ProductID string
	Name      string
	// AdditionalPriceMinor — надбавка к базовой цене товара.
	AdditionalPriceMinor int64
	Stock                int32
}

// VariantKey — явная ссылка на вариант товара: либо конкретный ID,
// либо «без варианта». Сравнивается структурно, что убирает
// трёхзначную логику SQL NULL из доменного кода.
type VariantKey struct {
	ID    string
	Valid bool
}

// SomeVariant возвращает ключ конкретного варианта.
func SomeVariant(id string) VariantKey {
	return VariantKey{ID: id, Valid: true}
}

// NoVariant возвращает ключ «без варианта».
func NoVariant() VariantKey {
	return VariantKey{}
}

// Equal сравнивает два ключа: два «пустых» ключа равны между собой.
func (k VariantKey) Equal(other VariantKey) bool {
	if !k.Valid && !other.Valid {
		return true
	}
	return k.Valid == other.Valid && k.ID == other.ID
}

// StorageKey возвращает строковое представление для уникального индекса
// хранилища: пустая строка означает «без варианта».
func (k VariantKey) StorageKey() string {
	if !k.Valid {
		return ""
	}
	return k.ID
}
