package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const bookingLogPath = "logs/bookings.log"

// StartBookingConsumer connects to RabbitMQ and consumes both booking
// queues, appending one human-readable line per event to
// logs/bookings.log.  It runs a reconnect loop with exponential
// backoff and never returns under normal operation; callers run it in
// a goroutine.  Failed messages are nacked without requeue so a bad
// payload cannot wedge the queue.
func StartBookingConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{BookingCreatedQueue, BookingCancelledQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	created, err := ch.Consume(BookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", BookingCreatedQueue, err)
	}
	cancelled, err := ch.Consume(BookingCancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", BookingCancelledQueue, err)
	}

	for {
		var d amqp.Delivery
		var kind string
		var ok bool
		select {
		case d, ok = <-created:
			kind = "created"
		case d, ok = <-cancelled:
			kind = "cancelled"
		}
		if !ok {
			return fmt.Errorf("delivery channel closed")
		}
		if err := handleMessage(kind, d.Body); err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func handleMessage(kind string, body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("%s booking=%d %s guest=%d room=%s(%d) %s..%s status=%s\n",
		time.Now().UTC().Format(time.RFC3339), ev.BookingID, kind, ev.GuestID,
		ev.RoomNumber, ev.RoomID, ev.CheckInDate, ev.CheckOutDate, ev.Status)
	return appendLog(line)
}

func appendLog(line string) error {
	if err := os.MkdirAll(filepath.Dir(bookingLogPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(bookingLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteString(line)
	return err
}
