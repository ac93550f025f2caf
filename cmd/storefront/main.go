package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
// Уровень можно переопределить через SHOPEASE_LOG_LEVEL.
func setupLogger(levelValue string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(parseLogLevel(levelValue))
}

func parseLogLevel(value string) log.Level {
	if value == "" {
		return log.InfoLevel
	}

	level, err := log.ParseLevel(value)
	if err != nil {
		log.WithField("value", value).Warn("неизвестный уровень логирования, используем info")
		return log.InfoLevel
	}
	return level
}

func main() {
	// .env необязателен: в контейнере конфигурация приходит через окружение.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("не удалось прочитать .env файл")
	}

	setupLogger(os.Getenv("SHOPEASE_LOG_LEVEL"))
	cfg := app.LoadConfigFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
	}).Info("запускаем ShopEase storefront")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("ShopEase storefront остановлен")
}
