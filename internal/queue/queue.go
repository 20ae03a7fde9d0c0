package queue

import (
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"
)

// EventsQueue is the queue carrying inbound booking events from the webhook
// endpoint to the processing worker.
const EventsQueue = "booking_events"

// Publisher hands a raw JSON payload to a named queue.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// AMQPQueue is the RabbitMQ-backed publisher/consumer.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Close() {
	q.ch.Close()
	q.conn.Close()
}

func (q *AMQPQueue) Publish(topic string, payload []byte) error {
	queue, err := q.ch.QueueDeclare(topic, true, false, false, false, nil)
	if err != nil {
		return err
	}
	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}

// Consume processes messages from topic with manual acks. Failing messages
// are requeued up to three times via the x-retry-count header, then dropped.
func (q *AMQPQueue) Consume(topic string, handler func(payload []byte) error) error {
	queue, err := q.ch.QueueDeclare(topic, true, false, false, false, nil)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for d := range msgs {
		if err := handler(d.Body); err != nil {
			log.Println("failed to process message:", err)

			var retryCount int32
			if v, ok := d.Headers["x-retry-count"].(int32); ok {
				retryCount = v
			}
			if retryCount < 3 {
				d.Nack(false, true) // requeue
				continue
			}
		}
		d.Ack(false)
	}
	return nil
}

// InMemoryQueue dispatches synchronously to registered handlers; used when
// no broker is configured and in tests.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload []byte) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload []byte) error),
	}
}

func (q *InMemoryQueue) Publish(topic string, payload []byte) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}
	for _, handler := range handlers {
		if err := handler(payload); err != nil {
			return err
		}
	}
	return nil
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload []byte) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[topic] = append(q.handlers[topic], handler)
}
