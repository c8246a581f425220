package utils

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the shared broadcast producer
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	topic := os.Getenv("KAFKA_BROADCAST_TOPIC")
	if topic == "" {
		topic = "broadcasts"
	}

	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, broadcast delivery disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Println("✅ Kafka producer initialized")
}

// PublishBroadcast enqueues one broadcast payload for delivery
func PublishBroadcast(ctx context.Context, key string, payload []byte) error {
	if kafkaWriter == nil {
		log.Println("⚠️ Kafka not configured, dropping broadcast message")
		return nil
	}
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// NewBroadcastReader returns a consumer for the broadcast topic
func NewBroadcastReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	topic := os.Getenv("KAFKA_BROADCAST_TOPIC")
	if topic == "" {
		topic = "broadcasts"
	}
	if brokers == "" {
		return nil
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  "broadcast-delivery",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
