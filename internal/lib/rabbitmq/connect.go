package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Connect подключается к брокеру и объявляет topic-обменник exchange.
func Connect(url, exchange string) (*Publisher, error) {
	const op = "rabbitmq.Connect"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: failed to declare exchange %s: %w", op, exchange, err)
	}

	return NewPublisher(conn, ch, exchange), nil
}
