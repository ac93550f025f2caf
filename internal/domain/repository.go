package domain

// CartRepository описывает требования к хранилищу корзин.
type CartRepository interface {
	// GetOrCreate возвращает корзину пользователя, создавая её при отсутствии.
	// Для валидного userID никогда не возвращает пустой результат без ошибки.
	GetOrCreate(userID string) (Cart, error)
	// ListLines возвращает позиции корзины, упорядоченные по моменту добавления,
	// с актуальными каталожными ценой/названием/картинкой из join-а.
	ListLines(cartID string) ([]CartLine, error)
	// UpsertLine атомарно добавляет позицию или увеличивает количество
	// существующей с тем же (product, variant)-ключом. Закрывает гонку
	// check-then-act двух конкурентных добавлений.
	UpsertLine(cartID, productID string, variant VariantKey, quantity int32) error
	// SetQuantity выставляет абсолютное количество позиции.
	// Возвращает ErrLineNotFound, если позиции нет.
	SetQuantity(lineID string, quantity int32) error
	// RemoveLine удаляет позицию. Удаление несуществующей позиции не ошибка.
	RemoveLine(lineID string) error
	// Clear удаляет все позиции корзины; идемпотентна.
	Clear(cartID string) error
	// Total возвращает сумму quantity × актуальная цена по всем позициям.
	// Для пустой корзины возвращает 0.
	Total(cartID string) (int64, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ и все его позиции как единое целое:
	// либо всё, либо ничего.
	Create(order Order) error
	// Get возвращает заказ с позициями или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByUser возвращает заказы пользователя от новых к старым,
	// каждый с полным набором позиций.
	ListByUser(userID string, limit int) ([]Order, error)
	// ListAll возвращает все заказы (админский путь), от новых к старым.
	ListAll(limit int) ([]Order, error)
	// UpdateStatus переводит заказ из статуса from в статус to.
	// Возвращает true, если строка изменилась; false — если заказ уже
	// не в статусе from.
	UpdateStatus(orderID string, from, to OrderStatus) (bool, error)
}

// PaymentRepository описывает требования к хранилищу платежей.
type PaymentRepository interface {
	// RecordSettlement в одной транзакции сохраняет платёж и переводит заказ
	// из from в to. Если заказ уже не в статусе from, транзакция откатывается
	// и возвращается ErrOrderStateConflict.
	RecordSettlement(payment Payment, from, to OrderStatus) error
	// GetByOrder возвращает платёж по заказу или ErrOrderNotFound.
	GetByOrder(orderID string) (Payment, error)
}

// CatalogRepository — read-only доступ к каталогу товаров.
type CatalogRepository interface {
	// GetProduct возвращает товар или ErrProductNotFound.
	GetProduct(id string) (Product, error)
	// GetVariant возвращает вариант товара или ErrVariantNotFound.
	GetVariant(id string) (Variant, error)
	// ListProducts возвращает товары каталога, ограничивая выборку limit (если >0).
	ListProducts(limit int) ([]Product, error)
}

// WishlistRepository описывает требования к хранилищу избранного.
type WishlistRepository interface {
	// Add сохраняет запись избранного. Повтор пары (user, product)
	// возвращает ErrWishlistDuplicate.
	Add(item WishlistItem) error
	// Get возвращает запись избранного или ErrWishlistItemNotFound.
	Get(itemID string) (WishlistItem, error)
	// ListByUser возвращает избранное пользователя в порядке добавления,
	// с актуальными каталожными названием/ценой/картинкой из join-а.
	ListByUser(userID string) ([]WishlistItem, error)
	// Remove удаляет запись или возвращает ErrWishlistItemNotFound.
	Remove(itemID string) error
}

// AddressRepository описывает требования к адресной книге.
type AddressRepository interface {
	// Create сохраняет адрес. Если адрес помечен IsDefault, флаг атомарно
	// снимается с остальных адресов пользователя.
	Create(addr Address) error
	// Get возвращает адрес или ErrAddressNotFound.
	Get(id string) (Address, error)
	// ListByUser возвращает адреса пользователя: сначала адрес по умолчанию,
	// далее в порядке создания.
	ListByUser(userID string) ([]Address, error)
	// Update перезаписывает адрес с той же инвариантой единственного
	// IsDefault. Возвращает ErrAddressNotFound, если адреса нет.
	Update(addr Address) error
	// Delete удаляет адрес или возвращает ErrAddressNotFound.
	Delete(id string) error
}

// UserRepository описывает требования к хранилищу пользователей.
type UserRepository interface {
	// Create сохраняет нового пользователя. Возвращает ErrEmailTaken,
	// если email уже занят.
	Create(user User) error
	// GetByEmail возвращает пользователя или ErrUserNotFound.
	GetByEmail(email string) (User, error)
	// GetByID возвращает пользователя или ErrUserNotFound.
	GetByID(id string) (User, error)
}
