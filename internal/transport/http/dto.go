package http

import (
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/service/cart"
)

// JSON-представления доменных сущностей. Транспортный слой не отдаёт
// доменные структуры напрямую: хэш пароля и внутренние поля наружу не выходят.

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u domain.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceMinor  int64  `json:"price_minor"`
	ImageURL    string `json:"image_url,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceMinor:  p.PriceMinor,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
	}
}

type cartItemView struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id,omitempty"`
	Quantity       int32  `json:"quantity"`
	ProductName    string `json:"product_name"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	LineTotalMinor int64  `json:"line_total_minor"`
	ImageURL       string `json:"image_url,omitempty"`
}

type cartView struct {
	CartID     string         `json:"cart_id"`
	UserID     string         `json:"user_id"`
	Items      []cartItemView `json:"items"`
	TotalMinor int64          `json:"total_minor"`
}

func newCartView(v cart.View) cartView {
	items := make([]cartItemView, 0, len(v.Lines))
	for _, line := range v.Lines {
		items = append(items, cartItemView{
			ID:             line.ID,
			ProductID:      line.ProductID,
			VariantID:      line.Variant.StorageKey(),
			Quantity:       line.Quantity,
			ProductName:    line.ProductName,
			UnitPriceMinor: line.UnitPriceMinor,
			LineTotalMinor: line.LineTotalMinor(),
			ImageURL:       line.ImageURL,
		})
	}
	return cartView{
		CartID:     v.Cart.ID,
		UserID:     v.Cart.UserID,
		Items:      items,
		TotalMinor: v.TotalMinor,
	}
}

type orderItemView struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id,omitempty"`
	Quantity       int32  `json:"quantity"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	LineTotalMinor int64  `json:"line_total_minor"`
}

type orderView struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Status     string          `json:"status"`
	TotalMinor int64           `json:"total_minor"`
	Items      []orderItemView `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func newOrderView(o domain.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ID:             item.ID,
			ProductID:      item.ProductID,
			VariantID:      item.Variant.StorageKey(),
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
			LineTotalMinor: int64(item.Quantity) * item.UnitPriceMinor,
		})
	}
	return orderView{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalMinor: o.TotalMinor,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func newOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

type wishlistItemView struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	PriceMinor  int64     `json:"price_minor"`
	ImageURL    string    `json:"image_url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

func newWishlistItemView(item domain.WishlistItem) wishlistItemView {
	return wishlistItemView{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		PriceMinor:  item.PriceMinor,
		ImageURL:    item.ImageURL,
		AddedAt:     item.AddedAt,
	}
}

func newWishlistItemViews(items []domain.WishlistItem) []wishlistItemView {
	views := make([]wishlistItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newWishlistItemView(item))
	}
	return views
}

type addressView struct {
	ID            string    `json:"id"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone,omitempty"`
	Line1         string    `json:"line1"`
	Line2         string    `json:"line2,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Country       string    `json:"country,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newAddressView(a domain.Address) addressView {
	return addressView{
		ID:            a.ID,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func newAddressViews(addresses []domain.Address) []addressView {
	views := make([]addressView, 0, len(addresses))
	for _, a := range addresses {
		views = append(views, newAddressView(a))
	}
	return views
}

type paymentView struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Method         string    `json:"method"`
	Status         string    `json:"status"`
	TransactionRef string    `json:"transaction_ref"`
	AmountMinor    int64     `json:"amount_minor"`
	CreatedAt      time.Time `json:"created_at"`
}

func newPaymentView(p domain.Payment) paymentView {
	return paymentView{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Method:         p.Method,
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
		AmountMinor:    p.AmountMinor,
		CreatedAt:      p.CreatedAt,
	}
}
