package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository создаёт PostgreSQL-реализацию WishlistRepository.
func NewWishlistRepository(store *Store) domain.WishlistRepository {
	return &wishlistRepository{db: store.DB()}
}

func (r *wishlistRepository) Add(item domain.WishlistItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, user_id, product_id, added_at)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.UserID, item.ProductID, item.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWishlistDuplicate
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) Get(itemID string) (domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.WishlistItem
	err := r.db.QueryRowContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.added_at,
		       p.name, p.price_minor, p.image_url
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.id = $1
	`, itemID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.AddedAt,
		&item.ProductName, &item.PriceMinor, &item.ImageURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WishlistItem{}, domain.ErrWishlistItemNotFound
		}
		return domain.WishlistItem{}, fmt.Errorf("select wishlist item: %w", err)
	}

	return item, nil
}

func (r *wishlistRepository) ListByUser(userID string) ([]domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.added_at,
		       p.name, p.price_minor, p.image_url
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.added_at ASC, w.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.AddedAt,
			&item.ProductName, &item.PriceMinor, &item.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist items: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) Remove(itemID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrWishlistItemNotFound
	}

	return nil
}

var _ domain.WishlistRepository = (*wishlistRepository)(nil)
