package domain

import "time"

// WishlistItem — товар, отложенный пользователем в избранное. Поля
// ProductName/PriceMinor/ImageURL денормализованы: заполняются join-ом
// с каталогом при чтении и всегда отражают актуальную карточку товара.
type WishlistItem struct {
	ID        string
	UserID    string
	ProductID string
	AddedAt   time.Time

	ProductName string
	PriceMinor  int64
	ImageURL    string
}
