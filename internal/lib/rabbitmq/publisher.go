// Package rabbitmq публикует события сервиса в обменник RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/streadway/amqp"
)

// Channel — часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует JSON-сообщения в один обменник.
type Publisher struct {
	mu       sync.Mutex
	conn     io.Closer
	ch       Channel
	exchange string
}

// NewPublisher оборачивает готовый канал. conn может быть nil.
func NewPublisher(conn io.Closer, ch Channel, exchange string) *Publisher {
	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
	}
}

// Publish публикует message с ключом маршрутизации routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение. Соединение закрывается, даже если
// закрыть канал не удалось.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// NopPublisher используется, когда брокер отключён в конфиге.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// Close ничего не делает.
func (NopPublisher) Close() error { return nil }
