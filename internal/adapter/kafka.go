package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/models"
)

const kafkaWriteTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the sender uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaSender publishes delivery requests to a topic consumed by the
// messaging gateway. Messages are keyed by phone number so that codes for
// one phone stay ordered within a partition.
type kafkaSender struct {
	writer messageWriter
	topic  string

	logger *logger.Logger
}

// NewKafkaSender constructs an [OTPSender] writing JSON encoded
// [models.OTPMessage] values to cfg.Topic.
func NewKafkaSender(cfg config.Kafka, logger *logger.Logger) (OTPSender, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("kafka brokers and topic are required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaSender{writer: writer, topic: cfg.Topic, logger: logger}, nil
}

// SendOTP implements [OTPSender]. The write is bounded so a slow broker does
// not hold the request-otp call indefinitely.
func (k *kafkaSender) SendOTP(ctx context.Context, msg models.OTPMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encoding message: %w", ErrDeliveryFailed, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, kafkaWriteTimeout)
	defer cancel()

	err = k.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(msg.Phone),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*kafkaSender.SendOTP").Str("topic", k.topic).Msg("kafka publish failed")
		return fmt.Errorf("%w: kafka publish: %w", ErrDeliveryFailed, err)
	}

	return nil
}

// Close flushes pending messages and closes broker connections.
func (k *kafkaSender) Close() error {
	return k.writer.Close()
}
