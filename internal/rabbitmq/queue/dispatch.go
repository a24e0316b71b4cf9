package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/model"
)

const (
	ExchangeName        = "dispatch-exchange"
	MainQueueName       = "dispatch-queue"
	RetryShortQueueName = "dispatch-retry-60s"
	RetryLongQueueName  = "dispatch-retry-300s"
	DLQName             = "dispatch-dlq"

	RoutingKey    = "dispatch"
	RetryShortKey = "dispatch.retry.short"
	RetryLongKey  = "dispatch.retry.long"
	DeadLetterKey = "dispatch.dead"
)

// Retry countdowns. Jobs signal "retry after N seconds"; the broker
// owns the timer via TTL queues that dead-letter back into the main
// queue, so no worker sleeps while waiting.
const (
	RetryShortDelay = 60 * time.Second
	RetryLongDelay  = 300 * time.Second
)

// JobMessage is the wire form of a bulk dispatch job. It carries the
// full recipient payload so execution needs no external lookup.
type JobMessage struct {
	ID         uuid.UUID         `json:"id"`
	Channel    model.Channel     `json:"channel"`
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Recipients []model.Recipient `json:"recipients"`
	Attempt    int               `json:"attempt"`
}

// DispatchQueue owns the broker topology for bulk dispatch jobs: one
// main queue, two TTL retry queues and a dead-letter queue for jobs
// that exhausted their attempts.
type DispatchQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

func NewDispatchQueue(ch *rabbitmq.Channel) (*DispatchQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	dlq, err := qm.DeclareQueue(DLQName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	// Expired retry messages fall back into the main queue through the
	// default exchange.
	retryArgs := func(ttl time.Duration) map[string]interface{} {
		return map[string]interface{}{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": MainQueueName,
			"x-message-ttl":             int32(ttl / time.Millisecond),
		}
	}

	shortQ, err := qm.DeclareQueue(RetryShortQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs(RetryShortDelay),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare short retry queue: %w", err)
	}

	longQ, err := qm.DeclareQueue(RetryLongQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs(RetryLongDelay),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare long retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DLQName,
	}

	mainQ, err := qm.DeclareQueue(MainQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	bindings := map[string]string{
		mainQ.Name:  RoutingKey,
		shortQ.Name: RetryShortKey,
		longQ.Name:  RetryLongKey,
		dlq.Name:    DeadLetterKey,
	}

	for queueName, key := range bindings {
		if err := ch.QueueBind(queueName, key, exchange.Name(), false, nil); err != nil {
			return nil, fmt.Errorf("failed to bind queue %s: %w", queueName, err)
		}
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &DispatchQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish enqueues a job for immediate execution.
func (q *DispatchQueue) Publish(msg JobMessage, strategy retry.Strategy) error {
	return q.publish(msg, RoutingKey, strategy)
}

// Requeue schedules a job for re-execution after the given countdown.
// The countdown is mapped onto the closest TTL queue.
func (q *DispatchQueue) Requeue(msg JobMessage, after time.Duration, strategy retry.Strategy) error {
	key := RetryShortKey
	if after >= RetryLongDelay {
		key = RetryLongKey
	}

	return q.publish(msg, key, strategy)
}

// PublishDead moves a terminally failed job onto the dead-letter queue
// so it stays inspectable instead of vanishing.
func (q *DispatchQueue) PublishDead(msg JobMessage, strategy retry.Strategy) error {
	return q.publish(msg, DeadLetterKey, strategy)
}

func (q *DispatchQueue) publish(msg JobMessage, key string, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, key, "application/json", strategy)
}

// Consume decodes main-queue messages into out until the consumer stops.
func (q *DispatchQueue) Consume(out chan<- JobMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var msg JobMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal message")
				continue
			}

			out <- msg
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
