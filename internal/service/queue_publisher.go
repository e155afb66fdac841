// Package queue_publisher provides functions to publish domain events
// to RabbitMQ.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/campusgrid/school-seat-reservation/internal/queue"
)

// publish marshals the event and delivers it to the named queue on
// the default exchange.  The queue is declared durable every time
// (idempotent) and messages are marked persistent.  A connection is
// dialed per publish; booking volume does not justify a pooled
// channel here.
func publish(ctx context.Context, queueName string, event interface{}) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}

// PublishAllocationCompleted publishes an AllocationCompletedEvent.
func PublishAllocationCompleted(ctx context.Context, event q.AllocationCompletedEvent) error {
    return publish(ctx, q.AllocationQueueName, event)
}

// Events adapts the publisher to the booking engines' EventPublisher
// interface.  Failures are swallowed; eventing is best-effort.
type Events struct{}

// BookingConfirmed publishes a confirmed lifecycle event.
func (Events) BookingConfirmed(ctx context.Context, kind string, bookingID, studentID uint64) {
    _ = publish(ctx, q.BookingQueueName, q.BookingEvent{
        Kind:       kind,
        Action:     "confirmed",
        BookingID:  bookingID,
        StudentID:  studentID,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
}

// BookingReleased publishes a released lifecycle event.
func (Events) BookingReleased(ctx context.Context, kind string, bookingID, studentID uint64) {
    _ = publish(ctx, q.BookingQueueName, q.BookingEvent{
        Kind:       kind,
        Action:     "released",
        BookingID:  bookingID,
        StudentID:  studentID,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
}
