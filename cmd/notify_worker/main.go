package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/config"
	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
	"github.com/oksasatya/go-recipe-profile/pkg/mailer"
)

// notify_worker consumes profile events and mails the owner. With
// NOTIFY_EMAIL_ENABLED=false events are logged and acked without sending.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env)

	var mg *mailer.Mailgun
	if cfg.NotifyEmailEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("Mailgun not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Info("NOTIFY_EMAIL_ENABLED=false; events are logged only")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQProfileQueue, true, false, false, false, nil); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}
	msgs, err := ch.Consume(cfg.RabbitMQProfileQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, logger, mg, cfg.AppName, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQProfileQueue).Info("notify worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func handle(ctx context.Context, logger *logrus.Logger, mg *mailer.Mailgun, appName string, msg amqp.Delivery) {
	var ev entity.ProfileEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}
	log := logger.WithFields(logrus.Fields{"user_id": ev.UserID, "type": ev.Type})

	if mg == nil {
		log.WithField("changes", ev.Changes).Info("profile event")
		_ = msg.Ack(false)
		return
	}

	job, err := mailer.ProfileUpdatedJob(appName, ev)
	if err != nil {
		log.WithError(err).Error("render profile_updated failed")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mg.SendJob(c, job); err != nil {
		log.WithError(err).Warn("send failed")
		// an empty recipient never succeeds, so only requeue real failures
		_ = msg.Nack(false, job.To != "")
		return
	}
	log.Info("profile update mail sent")
	_ = msg.Ack(false)
}
