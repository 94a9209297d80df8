package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/IBM/sarama"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// Producer публикует события аудита релея в Kafka
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

// NewProducer создаёт новый Kafka producer
func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	applySecurity(cfg, config)

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// applySecurity настраивает SASL/TLS (если указано)
func applySecurity(cfg *Config, config *sarama.Config) {
	if cfg.SecurityProtocol != "SASL_SSL" && cfg.SecurityProtocol != "SASL_PLAINTEXT" {
		return
	}

	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	if cfg.SASLMechanism == "SCRAM-SHA-256" {
		config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
	}
	config.Net.SASL.User = cfg.SASLUsername
	config.Net.SASL.Password = cfg.SASLPassword
	// TLS только для SASL_SSL
	if cfg.SecurityProtocol == "SASL_SSL" {
		config.Net.TLS.Enable = true
	}
}

// SendRelayEvent отправляет событие релея: chat_id и исход - в headers,
// полное событие - в value
func (p *Producer) SendRelayEvent(ctx context.Context, event domain.RelayEvent) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal relay event: %w", err)
	}

	outcome := "relay_succeeded"
	if event.Failure != domain.RelayFailureNone {
		outcome = "relay_failed"
	}

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event"),
			Value: []byte(outcome),
		},
		{
			Key:   []byte("chat_id"),
			Value: []byte(fmt.Sprintf("%d", event.ChatID)),
		},
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.cfg.Topic,
		Key:     sarama.StringEncoder(fmt.Sprintf("%d", event.ChatID)),
		Value:   sarama.ByteEncoder(valueBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", p.cfg.Topic,
			"chat_id", event.ChatID,
		)
		return fmt.Errorf("kafka send failed [topic=%s]: %w", p.cfg.Topic, err)
	}

	p.log.Debug("relay event sent to kafka",
		"topic", p.cfg.Topic,
		"partition", partition,
		"offset", offset,
		"chat_id", event.ChatID,
		"outcome", outcome,
	)

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	return p.producer.Close()
}
