package domain

import "time"

// Cart — корзина покупателя. У каждого пользователя ровно одна корзина,
// создаётся лениво при первом обращении.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// CartLine представляет одну позицию корзины: товар, опциональный вариант
// и количество. Поля ProductName/UnitPriceMinor/ImageURL денормализованы —
// они заполняются join-ом с каталогом при чтении и всегда отражают
// актуальную цену, а не снимок на момент добавления.
type CartLine struct {
	ID        string
	CartID    string
	ProductID string
	Variant   VariantKey
	Quantity  int32

	ProductName    string
	UnitPriceMinor int64
	ImageURL       string
}

// LineTotalMinor возвращает стоимость позиции по актуальной цене каталога.
func (l CartLine) LineTotalMinor() int64 {
	return int64(l.Quantity) * l.UnitPriceMinor
}

// Matches проверяет, описывают ли две позиции один и тот же
// (товар, вариант)-кортеж в пределах одной корзины.
func (l CartLine) Matches(productID string, variant VariantKey) bool {
	return l.ProductID == productID && l.Variant.Equal(variant)
}

// ValidateQuantity проверяет, что количество позиции не меньше единицы.
func (l CartLine) ValidateQuantity() error {
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
