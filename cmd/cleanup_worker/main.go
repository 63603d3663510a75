package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/travelbuddy/journal-api/config"
	"github.com/travelbuddy/journal-api/internal/cleanup"
	"github.com/travelbuddy/journal-api/internal/infrastructure/assetstore"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// Consumes asset-cleanup jobs published on story deletion and deletes the
// referenced content from the asset store.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQCleanupQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()

	var store assetstore.Store
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("gcs client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		store = assetstore.NewGCSStore(gcsClient, cfg.GCSBucket)
	} else {
		store = assetstore.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQCleanupQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQCleanupQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job cleanup.Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 30*time.Second)
			err := store.Delete(c, job.ImageURL)
			cancel()

			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, assetstore.ErrNotFound):
				// already gone; nothing to redo
				_ = msg.Ack(false)
			default:
				log.Printf("delete %s failed: %v", job.ImageURL, err)
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	log.Printf("cleanup worker listening on queue=%s", cfg.RabbitMQCleanupQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
