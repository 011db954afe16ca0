package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"campus-hub/pkg/config"
	"campus-hub/pkg/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DocumentEventsQueue    = "document_events"
	DocumentEventsExchange = "documents"
)

// DocumentCreated is the message published once per document created in a
// watched collection.
type DocumentCreated struct {
	EventID    string                 `json:"event_id"`
	Collection string                 `json:"collection"`
	DocumentID string                 `json:"document_id"`
	Fields     map[string]interface{} `json:"fields"`
	CreatedAt  time.Time              `json:"created_at"`
}

var ErrInvalidMessage = errors.New("invalid document event")

// RoutingKey returns the topic routing key for documents created in collection.
func RoutingKey(collection string) string {
	return collection + ".created"
}

func decodeDocumentCreated(body []byte) (DocumentCreated, error) {
	var ev DocumentCreated
	if err := json.Unmarshal(body, &ev); err != nil {
		return DocumentCreated{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if ev.Collection == "" || ev.DocumentID == "" {
		return DocumentCreated{}, fmt.Errorf("%w: collection and document_id are required", ErrInvalidMessage)
	}
	if ev.Fields == nil {
		ev.Fields = map[string]interface{}{}
	}
	return ev, nil
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		DocumentEventsExchange, // name
		"topic",                // type
		true,                   // durable
		false,                  // auto-deleted
		false,                  // internal
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		DocumentEventsQueue, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

// BindCollections routes "<collection>.created" messages into the document events queue.
func (c *Client) BindCollections(collections []string) error {
	for _, collection := range collections {
		if err := c.channel.QueueBind(
			DocumentEventsQueue,    // queue name
			RoutingKey(collection), // routing key
			DocumentEventsExchange, // exchange
			false,
			nil,
		); err != nil {
			return fmt.Errorf("failed to bind %s: %w", collection, err)
		}
	}
	return nil
}

// Close waits for in-flight deliveries and closes the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	c.wg.Wait()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishDocumentCreated publishes ev with a generated event id when none is set.
func (c *Client) PublishDocumentCreated(ctx context.Context, ev DocumentCreated) (string, error) {
	if ev.Collection == "" || ev.DocumentID == "" {
		return "", fmt.Errorf("%w: collection and document_id are required", ErrInvalidMessage)
	}
	if ev.EventID == "" {
		ev.EventID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document event: %w", err)
	}

	key := RoutingKey(ev.Collection)
	err = c.channel.PublishWithContext(ctx,
		DocumentEventsExchange, // exchange
		key,                    // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    ev.EventID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.CreatedAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", DocumentEventsExchange, key, err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published document event %s to exchange=%s, routing_key=%s", ev.EventID, DocumentEventsExchange, key)
	return ev.EventID, nil
}

// Handler processes one decoded document event. A returned error requeues the message.
type Handler func(ctx context.Context, ev DocumentCreated) error

// ConsumeDocumentEvents starts workers goroutines draining the queue. It
// returns once the consumer is registered; workers stop when ctx is done or
// the channel closes.
func (c *Client) ConsumeDocumentEvents(ctx context.Context, workers int, handler Handler) error {
	if workers < 1 {
		workers = 1
	}
	if err := c.channel.Qos(workers, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := c.channel.ConsumeWithContext(ctx,
		DocumentEventsQueue, // queue
		"",                  // consumer
		false,               // auto-ack (we'll manually ack after processing)
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,                 // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from %s with %d workers", DocumentEventsQueue, workers)

	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			for msg := range msgs {
				c.processDelivery(ctx, msg, handler)
			}
		}()
	}

	return nil
}

func (c *Client) processDelivery(ctx context.Context, msg amqp.Delivery, handler Handler) {
	ev, err := decodeDocumentCreated(msg.Body)
	if err != nil {
		c.logger.Error("[RABBITMQ] Rejecting message %s: %v, body=%s", msg.MessageId, err, string(msg.Body))
		msg.Nack(false, false) // Reject and don't requeue
		return
	}
	if ev.EventID == "" {
		ev.EventID = msg.MessageId
	}

	if err := handler(ctx, ev); err != nil {
		c.logger.Error("[RABBITMQ] Handler failed for %s/%s: %v", ev.Collection, ev.DocumentID, err)
		msg.Nack(false, true) // Reject and requeue
		return
	}

	msg.Ack(false)
}

// GetQueueLength returns the number of messages waiting in the queue.
func (c *Client) GetQueueLength() (int, error) {
	q, err := c.channel.QueueDeclarePassive(DocumentEventsQueue, true, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return q.Messages, nil
}
