package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

type addressRepository struct {
	db *sql.DB
}

// NewAddressRepository создаёт PostgreSQL-реализацию AddressRepository.
func NewAddressRepository(store *Store) domain.AddressRepository {
	return &addressRepository{db: store.DB()}
}

// Create сохраняет адрес. Снятие флага по умолчанию с остальных адресов
// идёт в той же транзакции, поэтому у пользователя не бывает двух default-ов.
func (r *addressRepository) Create(addr domain.Address) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if addr.IsDefault {
		if _, err = tx.ExecContext(ctx, `
			UPDATE user_addresses SET is_default = FALSE, updated_at = NOW()
			WHERE user_id = $1 AND is_default
		`, addr.UserID); err != nil {
			return fmt.Errorf("clear default address: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_addresses (
			id, user_id, recipient_name, phone, line1, line2,
			city, state, postal_code, country, is_default, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		addr.ID, addr.UserID, addr.RecipientName, addr.Phone, addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.IsDefault,
		addr.CreatedAt, addr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit address insert: %w", err)
	}

	return nil
}

func (r *addressRepository) Get(id string) (domain.Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var addr domain.Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, recipient_name, phone, line1, line2,
		       city, state, postal_code, country, is_default, created_at, updated_at
		FROM user_addresses
		WHERE id = $1
	`, id).Scan(
		&addr.ID, &addr.UserID, &addr.RecipientName, &addr.Phone, &addr.Line1, &addr.Line2,
		&addr.City, &addr.State, &addr.PostalCode, &addr.Country, &addr.IsDefault,
		&addr.CreatedAt, &addr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Address{}, domain.ErrAddressNotFound
		}
		return domain.Address{}, fmt.Errorf("select address: %w", err)
	}

	return addr, nil
}

func (r *addressRepository) ListByUser(userID string) ([]domain.Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, recipient_name, phone, line1, line2,
		       city, state, postal_code, country, is_default, created_at, updated_at
		FROM user_addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(
			&addr.ID, &addr.UserID, &addr.RecipientName, &addr.Phone, &addr.Line1, &addr.Line2,
			&addr.City, &addr.State, &addr.PostalCode, &addr.Country, &addr.IsDefault,
			&addr.CreatedAt, &addr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) Update(addr domain.Address) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if addr.IsDefault {
		if _, err = tx.ExecContext(ctx, `
			UPDATE user_addresses SET is_default = FALSE, updated_at = NOW()
			WHERE user_id = $1 AND is_default AND id <> $2
		`, addr.UserID, addr.ID); err != nil {
			return fmt.Errorf("clear default address: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE user_addresses
		SET recipient_name = $1, phone = $2, line1 = $3, line2 = $4,
		    city = $5, state = $6, postal_code = $7, country = $8,
		    is_default = $9, updated_at = NOW()
		WHERE id = $10
	`,
		addr.RecipientName, addr.Phone, addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country,
		addr.IsDefault, addr.ID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrAddressNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit address update: %w", err)
	}

	return nil
}

func (r *addressRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM user_addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAddressNotFound
	}

	return nil
}

var _ domain.AddressRepository = (*addressRepository)(nil)
