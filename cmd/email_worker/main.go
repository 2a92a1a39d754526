package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to rabbitmq")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := &mailer.Dispatcher{
		Sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		Logger: logger,
	}
	if err := consumer.Run(ctx, dispatcher); err != nil {
		logger.WithError(err).Error("consumer stopped")
		return
	}
	logger.Info("email worker exited properly")
}
