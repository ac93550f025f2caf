package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/service/account"
	"github.com/vladislavdragonenkov/shopease/internal/service/address"
	"github.com/vladislavdragonenkov/shopease/internal/service/cart"
	"github.com/vladislavdragonenkov/shopease/internal/service/checkout"
	"github.com/vladislavdragonenkov/shopease/internal/service/payment"
	"github.com/vladislavdragonenkov/shopease/internal/service/wishlist"
	"github.com/vladislavdragonenkov/shopease/internal/session"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Repos    *repositories
	Sessions session.Store

	Accounts  account.Service
	Carts     cart.Service
	Checkout  checkout.Service
	Payments  payment.Service
	Wishlists wishlist.Service
	Addresses address.Service

	Logger *log.Entry

	redisSessions *session.RedisStore
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
// NOTE: платёжный шлюз — симулятор; в production его заменяет клиент
// реального провайдера.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	repos, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Repos:  repos,
		Logger: logger,
	}

	// Redis недоступен — сессии деградируют до памяти процесса,
	// приложение остаётся работоспособным.
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, falling back to in-memory sessions")
			deps.Sessions = session.NewMemoryStore()
		} else {
			logger.WithField("addr", cfg.RedisAddr).Info("redis session store initialized")
			deps.Sessions = redisStore
			deps.redisSessions = redisStore
		}
	} else {
		deps.Sessions = session.NewMemoryStore()
	}

	deps.Accounts = account.NewService(repos.Users, logger.WithField("component", "account"))
	deps.Carts = cart.NewService(repos.Carts, repos.Catalog, logger.WithField("component", "cart"))
	deps.Checkout = checkout.NewService(repos.Carts, repos.Orders, repos.Outbox, logger.WithField("component", "checkout"))
	deps.Payments = payment.NewService(repos.Orders, repos.Payments, payment.NewSimulatedGateway(logger), repos.Outbox, logger.WithField("component", "payment"))
	deps.Wishlists = wishlist.NewService(repos.Wishlists, repos.Catalog, logger.WithField("component", "wishlist"))
	deps.Addresses = address.NewService(repos.Addresses, logger.WithField("component", "address"))

	return deps, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() {
	if d == nil {
		return
	}
	if d.redisSessions != nil {
		if err := d.redisSessions.Close(); err != nil {
			d.Logger.WithError(err).Warn("close redis sessions failed")
		}
	}
	d.Repos.Close()
}
