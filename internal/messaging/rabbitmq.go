// Package messaging carries real-time change events to subscribers over a
// RabbitMQ topic exchange.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type RabbitMQClient struct {
	config     *RabbitMQConfig
	log        *zap.Logger
	connection *amqp.Connection
	channel    *amqp.Channel
	mu         sync.RWMutex
	isClosing  bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewRabbitMQClient(config *RabbitMQConfig, log *zap.Logger) *RabbitMQClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &RabbitMQClient{
		config: config,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (r *RabbitMQClient) Connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for i := 0; i < r.config.RetryCount; i++ {
		r.connection, err = amqp.Dial(r.config.ConnectionURL())
		if err != nil {
			r.log.Warn("rabbitmq connection error",
				zap.Int("attempt", i+1),
				zap.Int("max_attempts", r.config.RetryCount),
				zap.Error(err))
			if i < r.config.RetryCount-1 {
				time.Sleep(r.config.RetryDelay)
				continue
			}
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}

		r.channel, err = r.connection.Channel()
		if err != nil {
			r.connection.Close()
			return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
		}

		err = r.channel.ExchangeDeclare(
			r.config.Exchange, // name
			"topic",           // type
			true,              // durable
			false,             // auto-deleted
			false,             // internal
			false,             // no-wait
			nil,               // arguments
		)
		if err != nil {
			r.channel.Close()
			r.connection.Close()
			return fmt.Errorf("failed to declare exchange: %w", err)
		}

		r.log.Info("connected to RabbitMQ", zap.String("host", r.config.Host))

		go r.handleReconnection()

		return nil
	}

	return err
}

func (r *RabbitMQClient) handleReconnection() {
	notifyClose := make(chan *amqp.Error)
	r.connection.NotifyClose(notifyClose)

	select {
	case err := <-notifyClose:
		if !r.isClosing {
			r.log.Warn("rabbitmq connection lost, reconnecting", zap.Error(err))
			time.Sleep(time.Second * 2)
			if reconnectErr := r.Connect(); reconnectErr != nil {
				r.log.Error("rabbitmq reconnect failed", zap.Error(reconnectErr))
			}
		}
	case <-r.ctx.Done():
		return
	}
}

func (r *RabbitMQClient) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

func (r *RabbitMQClient) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connection != nil && !r.connection.IsClosed()
}

func (r *RabbitMQClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isClosing {
		return nil
	}
	r.isClosing = true
	r.cancel()

	var closeErr error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			closeErr = fmt.Errorf("channel close error: %w", err)
		}
	}
	if r.connection != nil {
		if err := r.connection.Close(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; connection close error: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("connection close error: %w", err)
			}
		}
	}

	if closeErr == nil {
		r.log.Info("rabbitmq connection closed")
	}
	return closeErr
}
