// Package kafka runs the packaging job event consumer.
package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/appbridge/migration-backend/events/modules/jobs"
	"github.com/appbridge/migration-backend/internal/config"
	"github.com/appbridge/migration-backend/model"
	"github.com/cenkalti/backoff"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

const (
	connectAttempts   = 3
	connectRetryDelay = 2 * time.Second
	maxRetryInterval  = time.Minute
)

// NewDialer returns a dialer for the configured cluster. SASL/PLAIN over TLS
// is used only when credentials are provided.
func NewDialer(cfg config.Kafka) *kafka.Dialer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		dialer.SASLMechanism = plain.Mechanism{
			Username: cfg.APIKey,
			Password: cfg.APISecret,
		}
		dialer.TLS = &tls.Config{}
	}
	return dialer
}

// NewTransport returns a writer transport with the same security settings as NewDialer
func NewTransport(cfg config.Kafka) *kafka.Transport {
	transport := &kafka.Transport{DialTimeout: 10 * time.Second}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.APIKey,
			Password: cfg.APISecret,
		}
		transport.TLS = &tls.Config{}
	}
	return transport
}

// RunEventProcessor checks connectivity and starts consuming job terminal
// events in the background until ctx is cancelled.
func RunEventProcessor(ctx context.Context, cfg config.Kafka, service jobs.LifecycleService, logger *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	dialer := NewDialer(cfg)

	var err error
	for i := 1; i <= connectAttempts; i++ {
		logger.Sugar().Infof("Kafka connection attempt %d/%d...", i, connectAttempts)
		var conn *kafka.Conn
		conn, err = dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < connectAttempts {
			time.Sleep(connectRetryDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()
		logger.Sugar().Infof("Kafka Event Processor started. Listening for job events on %s...", cfg.Topic)
		consume(ctx, reader, service, logger)
	}()

	return nil
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// consume handles messages one at a time and commits each once handled.
// Transient failures are retried with backoff until ctx is done, and a message
// abandoned on shutdown is left uncommitted for redelivery. Invalid events and
// events for unknown jobs are logged and committed.
func consume(ctx context.Context, reader messageReader, service jobs.LifecycleService, logger *zap.Logger) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Failed to fetch kafka message", zap.Error(err))
			continue
		}

		if err := handleMessage(ctx, msg, service, logger); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Dropping job event",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Failed to commit kafka message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafka.Message, service jobs.LifecycleService, logger *zap.Logger) error {
	operation := func() error {
		err := jobs.HandleJobTerminalWithService(ctx, msg.Value, service, logger)
		var invalid *jobs.InvalidEventError
		if errors.As(err, &invalid) || errors.Is(err, model.ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = maxRetryInterval
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		logger.Sugar().Warnf("Job event handling failed, retrying in %s: %v", wait, err)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify)
}
