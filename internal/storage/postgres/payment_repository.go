package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository создаёт PostgreSQL-реализацию PaymentRepository.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{db: store.DB()}
}

// RecordSettlement сохраняет платёж и переводит заказ из from в to в одной
// транзакции. Охранное условие по статусу превращает двойную оплату в
// ErrOrderStateConflict вместо второй записи.
func (r *paymentRepository) RecordSettlement(payment domain.Payment, from, to domain.OrderStatus) error {
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

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = NOW()
		WHERE id = $2
		  AND status = $3
	`, string(to), payment.OrderID, string(from))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var id string
		scanErr := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1`, payment.OrderID).Scan(&id)
		if errors.Is(scanErr, sql.ErrNoRows) {
			err = domain.ErrOrderNotFound
			return err
		}
		if scanErr != nil {
			err = fmt.Errorf("check order exists: %w", scanErr)
			return err
		}
		err = domain.ErrOrderStateConflict
		return err
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (
			id, order_id, method, status, transaction_ref, amount_minor, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		payment.ID, payment.OrderID, payment.Method, string(payment.Status),
		payment.TransactionRef, payment.AmountMinor, payment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = domain.ErrOrderStateConflict
			return err
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetByOrder(orderID string) (domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var payment domain.Payment
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, method, status, transaction_ref, amount_minor, created_at
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(
		&payment.ID, &payment.OrderID, &payment.Method, &status,
		&payment.TransactionRef, &payment.AmountMinor, &payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, domain.ErrOrderNotFound
		}
		return domain.Payment{}, fmt.Errorf("select payment: %w", err)
	}
	payment.Status = domain.PaymentStatus(status)

	return payment, nil
}

var _ domain.PaymentRepository = (*paymentRepository)(nil)
