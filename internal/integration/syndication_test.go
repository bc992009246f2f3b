//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/gazette-newsroom/internal/adapter/kafka"
	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

const testTopic = "test-gazette-articles"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-broker Kafka in a container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestSyndicationRoundTrip publishes an article through the adapter and
// reads it back, verifying the envelope strips the seed data columns.
func TestSyndicationRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	article := domain.Article{
		ID:              "ART-20250901090000-00aa",
		Title:           "Duck Pond Reopens After Lengthy Consultation",
		Slug:            "duck-pond-reopens-after-lengthy-consultation",
		Body:            "The pond is open again.",
		Summary:         "Pond reopens.",
		PublicationDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		LastUpdated:     time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Author:          "Margaret Holloway",
		Category:        "Local News",
		Status:          domain.StatusPublished,
		StoryStatus:     domain.StoryConcluded,
		TownData:        &domain.SeedTownData{TownName: "Mackney", TownPopulation: 8200},
	}
	require.NoError(t, publisher.Publish(ctx, article))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from articles topic")

	assert.Equal(t, article.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Local News", headers["category"])
	publishedAt, err := time.Parse(time.RFC3339, headers["published_at"])
	require.NoError(t, err, "published_at should be valid RFC3339")
	assert.True(t, publishedAt.Equal(article.LastUpdated))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, article.Title, envelope["title"])
	assert.Equal(t, article.Slug, envelope["slug"])
	assert.Equal(t, article.Author, envelope["author"])
	assert.NotContains(t, envelope, "town_data")
	assert.NotContains(t, envelope, "people_data")
}
