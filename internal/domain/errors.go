package domain

import "errors"

var (
	// ErrInvalidQuantity возвращается при количестве товара меньше единицы.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrEmptyOrder — попытка оформить заказ без единой позиции.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrAmountMismatch — сумма заказа не совпадает с суммой позиций.
	ErrAmountMismatch = errors.New("order total does not match items sum")
	// ErrAmountNegative — отрицательная сумма заказа или позиции.
	ErrAmountNegative = errors.New("amount must be non-negative")
	// ErrUnauthenticated — запрос без действующей сессии.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden — пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("access denied")
	// ErrCartNotFound возвращается, если корзина не найдена в репозитории.
	ErrCartNotFound = errors.New("cart not found")
	// ErrLineNotFound возвращается, если позиция корзины не найдена.
	ErrLineNotFound = errors.New("cart item not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariantNotFound возвращается, если вариант товара отсутствует в каталоге.
	ErrVariantNotFound = errors.New("product variant not found")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrWishlistItemNotFound возвращается, если запись избранного не найдена.
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	// ErrWishlistDuplicate — товар уже есть в избранном пользователя.
	ErrWishlistDuplicate = errors.New("product is already in the wishlist")
	// ErrAddressNotFound возвращается, если адрес не найден в адресной книге.
	ErrAddressNotFound = errors.New("address not found")
	// ErrAddressIncomplete — в адресе не заполнены обязательные поля.
	ErrAddressIncomplete = errors.New("recipient name, address line and city are required")
	// ErrEmailTaken — регистрация с уже занятым email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials — неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrOrderStateConflict — недопустимый переход статуса заказа.
	ErrOrderStateConflict = errors.New("illegal order status transition")
	// ErrPaymentDeclined — платёж отклонён шлюзом (бизнес-ошибка, заказ остаётся pending).
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrPaymentMethodRequired — не указан способ оплаты.
	ErrPaymentMethodRequired = errors.New("payment method is required")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsStateConflict проверяет, является ли ошибка конфликтом статуса заказа.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrOrderStateConflict)
}
