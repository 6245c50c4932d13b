package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fact-check-board/internal/config"
	"github.com/fact-check-board/internal/models"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// VoteEvent is emitted after a vote has been committed
type VoteEvent struct {
	NewsID         string            `json:"news_id"`
	ClientID       string            `json:"client_id"`
	Vote           models.VoteChoice `json:"vote"`
	PreviousStatus models.Status     `json:"previous_status"`
	Status         models.Status     `json:"status"`
	FakeVotes      int               `json:"fake_votes"`
	NotFakeVotes   int               `json:"not_fake_votes"`
	TotalVotes     int               `json:"total_votes"`
	WithComment    bool              `json:"with_comment"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// StatusChanged reports whether the vote flipped the item's verdict
func (e *VoteEvent) StatusChanged() bool {
	return e.PreviousStatus != e.Status
}

// Publisher delivers vote events to downstream consumers
type Publisher interface {
	PublishVote(ctx context.Context, event VoteEvent) error
	Close() error
}

// New returns a Kafka publisher when brokers are configured, otherwise a no-op
func New(cfg config.EventsConfig, log zerolog.Logger) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info().Msg("No Kafka brokers configured, vote events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
}

// messageWriter is the subset of *kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes vote events to a Kafka topic keyed by news ID
type KafkaPublisher struct {
	writer messageWriter
	log    zerolog.Logger
}

// NewKafkaPublisher creates a publisher for topic on brokers
func NewKafkaPublisher(brokers []string, topic string, log zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireOne,
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("Kafka vote publisher configured")
	return newKafkaPublisher(writer, log)
}

func newKafkaPublisher(w messageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		log:    log.With().Str("component", "events").Logger(),
	}
}

// PublishVote encodes and writes a single event
func (p *KafkaPublisher) PublishVote(ctx context.Context, event VoteEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal vote event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.NewsID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("vote_registered")},
			{Key: "status_changed", Value: []byte(fmt.Sprintf("%t", event.StatusChanged()))},
		},
		Time: event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write vote event: %w", err)
	}

	p.log.Debug().
		Str("news_id", event.NewsID).
		Str("status", string(event.Status)).
		Msg("Vote event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) PublishVote(context.Context, VoteEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
