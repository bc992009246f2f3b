// Package kafka publishes generated articles to a syndication topic for
// downstream consumers. The CSV file remains the source of truth.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// Publisher produces article messages to the syndication topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one article and writes it to the syndication topic.
func (p *Publisher) Publish(ctx context.Context, article domain.Article) error {
	msg, err := serializeToMessage(article)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an article into a Kafka message keyed by
// article ID, so all updates to one story land on the same partition.
func serializeToMessage(article domain.Article) (kafkago.Message, error) {
	data, err := json.Marshal(articleEnvelope(article))
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize article: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(article.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(article.Category)},
			{Key: "published_at", Value: []byte(article.LastUpdated.Format(time.RFC3339))},
		},
	}, nil
}

// articleEnvelope is the wire shape for syndicated articles: the article
// itself minus the bulky sampled data columns.
func articleEnvelope(article domain.Article) map[string]any {
	return map[string]any{
		"article_id":       article.ID,
		"title":            article.Title,
		"slug":             article.Slug,
		"body":             article.Body,
		"summary":          article.Summary,
		"publication_date": article.PublicationDate.Format("2006-01-02"),
		"author":           article.Author,
		"category":         article.Category,
		"status":           article.Status,
		"story_status":     article.StoryStatus,
	}
}
