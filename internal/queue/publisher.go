package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishBookingPaid pushes ev onto the booking.paid queue.  The
// payment has already been recorded by the time this runs, so errors
// are returned for the caller to log rather than failing the request.
func PublishBookingPaid(ctx context.Context, ev BookingPaidEvent) error {
	msg, err := newBookingPaidMessage(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.PublishWithContext(ctx, "", bookingQueueName, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// newBookingPaidMessage marks the payload persistent so a paid event
// survives a broker restart.
func newBookingPaidMessage(ev BookingPaidEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
