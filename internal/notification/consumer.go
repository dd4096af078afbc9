package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gigstage/gigstage-backend/config"
	"github.com/segmentio/kafka-go"
)

// inboundEvent is the payload external producers publish onto the
// notifications topic.
type inboundEvent struct {
	UserID  uint   `json:"user_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// StartKafkaConsumer consumes notification events published by external
// systems and persists them through the normal service path. It is a no-op
// when no brokers are configured. Runs until ctx is cancelled.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ Kafka brokers not configured, skipping notification consumer")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		Topic:   cfg.KafkaTopic,
		GroupID: "gigstage-notifications",
	})

	go func() {
		defer reader.Close()
		log.Printf("🔄 Kafka notification consumer started on topic %s", cfg.KafkaTopic)

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("❌ kafka read error: %v", err)
				continue
			}

			var ev inboundEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("⚠️ skipping malformed notification event: %v", err)
				continue
			}
			if ev.UserID == 0 {
				log.Println("⚠️ skipping notification event without user_id")
				continue
			}
			if !ValidType(ev.Type) {
				ev.Type = TypeSystem
			}

			if err := svc.Notify(ctx, ev.UserID, ev.Type, ev.Title, ev.Message, ev.Link); err != nil {
				log.Printf("❌ failed to persist notification for user %d: %v", ev.UserID, err)
			}
		}
	}()
}
