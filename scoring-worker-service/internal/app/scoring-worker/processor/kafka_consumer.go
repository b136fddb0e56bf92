package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"
	"wanderlog/scoring-worker-service/internal/app/scoring-worker/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaConsumer обрабатывает события из топика comment_events:
// новый комментарий означает, что рейтинг места устарел
type KafkaConsumer struct {
	reader     *kafka.Reader
	rescoreSvc service.RescoreServiceInterface
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	rescoreSvc service.RescoreServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:     reader,
		rescoreSvc: rescoreSvc,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	log.Println("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	log.Println("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error fetching message: %v", err)
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				log.Printf("Error processing message: %v", err)
				// Не коммитим offset - сообщение будет перечитано
			} else {
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					log.Printf("Error committing message: %v", err)
				}
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka.
// Некорректные сообщения (битый JSON, неизвестный тип события, кривой UUID)
// считаются обработанными: перечитывать их бессмысленно.
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.CommentEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Printf("Skipping malformed event (offset: %d): %v", message.Offset, err)
		return nil
	}

	log.Printf("Received %s event for place %s (offset: %d, partition: %d)",
		event.EventType, event.PlaceID, message.Offset, message.Partition)

	if event.EventType != entity.EventCommentCreated {
		return nil
	}

	placeID, err := uuid.Parse(event.PlaceID)
	if err != nil {
		log.Printf("Skipping event with invalid place id %q: %v", event.PlaceID, err)
		return nil
	}

	if _, err := c.rescoreSvc.RescorePlace(ctx, placeID); err != nil {
		// Гонка: комментарий создан, место уже удалено. Перечитывать нечего.
		if errors.Is(err, service.ErrPlaceNotFound) || errors.Is(err, service.ErrNoComments) {
			log.Printf("Skipping rescore for place %s: %v", event.PlaceID, err)
			return nil
		}
		return fmt.Errorf("failed to rescore place %s: %w", event.PlaceID, err)
	}

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
