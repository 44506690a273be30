package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Handler processes one decoded event. A returned error is logged and the
// delivery is dropped, so a failing handler cannot spin on redeliveries.
type Handler func(ctx context.Context, evt UserEvent) error

// Consume reads deliveries until the channel closes or ctx is done.
// Undecodable messages are dropped.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, handle Handler, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-deliveries:
			if !ok {
				return
			}
			var evt UserEvent
			if err := json.Unmarshal(msg.Body, &evt); err != nil {
				logger.WithError(err).Warn("dropping malformed user event")
				_ = msg.Nack(false, false)
				continue
			}
			if err := handle(ctx, evt); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{"user_id": evt.UserID, "event": evt.Type}).Error("user event handler failed, dropping")
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Subscribe opens a consumer on queue with the given prefetch.
func Subscribe(url, queue string, prefetch int) (<-chan amqp.Delivery, func(), error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, nil, err
	}
	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("qos: %w", err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("consume: %w", err)
	}
	return msgs, closeAll, nil
}
