// Package pipeline runs the newsroom: per publication cycle it samples
// story seeds, prompts the model, and appends the results to the articles
// store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/observability"
	"github.com/couchcryptid/gazette-newsroom/internal/seed"
)

// SeedSampler assembles the sampled inputs for one article.
type SeedSampler interface {
	Sample(town *domain.Town, people []domain.Person) (*domain.StorySeed, error)
}

// Completer produces the model's response to one prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ArticleStore persists generated articles.
type ArticleStore interface {
	Append(article domain.Article) error
	Backup() error
	Prune(limit int) (int, error)
}

// Publisher pushes articles to the syndication topic.
type Publisher interface {
	Publish(ctx context.Context, article domain.Article) error
}

// Options sizes one generation batch and the publication cycle.
type Options struct {
	ArticleCount     int
	ArticleDelay     time.Duration
	BackupBeforeSave bool
	ArticleLimit     int
	PublishInterval  time.Duration
}

// Newsroom orchestrates the sample-prompt-persist loop over the generated
// town and population. A nil completer writes placeholder articles; a nil
// publisher disables syndication.
type Newsroom struct {
	town      *domain.Town
	people    []domain.Person
	sampler   SeedSampler
	completer Completer
	store     ArticleStore
	publisher Publisher
	rng       *rand.Rand
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Newsroom over the loaded dataset.
func New(
	town *domain.Town,
	people []domain.Person,
	sampler SeedSampler,
	completer Completer,
	store ArticleStore,
	publisher Publisher,
	rng *rand.Rand,
	opts Options,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Newsroom {
	return &Newsroom{
		town:      town,
		people:    people,
		sampler:   sampler,
		completer: completer,
		store:     store,
		publisher: publisher,
		rng:       rng,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one batch has completed with a
// persisted article.
func (n *Newsroom) CheckReadiness(_ context.Context) error {
	if !n.ready.Load() {
		return errors.New("no article batch has completed yet")
	}
	return nil
}

// Run executes a batch immediately and then once per publication interval
// until the context is cancelled. Batch failures are logged; the next cycle
// retries.
func (n *Newsroom) Run(ctx context.Context) error {
	n.logger.Info("newsroom started",
		"article_count", n.opts.ArticleCount,
		"publish_interval", n.opts.PublishInterval,
	)
	n.metrics.NewsroomRunning.Set(1)
	defer n.metrics.NewsroomRunning.Set(0)

	ticker := time.NewTicker(n.opts.PublishInterval)
	defer ticker.Stop()

	for {
		if _, err := n.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				n.logger.Info("newsroom stopping", "reason", ctx.Err())
				return nil
			}
			n.logger.Error("article batch failed", "error", err)
		}

		select {
		case <-ctx.Done():
			n.logger.Info("newsroom stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce generates one batch of articles and returns how many were
// persisted. Store write failures abort the batch; model failures skip
// only the affected article.
func (n *Newsroom) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()

	if n.opts.BackupBeforeSave {
		if err := n.store.Backup(); err != nil {
			return 0, fmt.Errorf("backup articles: %w", err)
		}
	}

	generated := 0
	for i := 0; i < n.opts.ArticleCount; i++ {
		article, err := n.generateArticle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return generated, ctx.Err()
			}
			n.logger.Warn("article generation failed, skipping",
				"error", err, "article", i+1, "of", n.opts.ArticleCount)
			n.metrics.GenerationErrors.Inc()
			continue
		}

		if err := n.store.Append(*article); err != nil {
			return generated, fmt.Errorf("persist article %s: %w", article.ID, err)
		}
		generated++
		n.metrics.ArticlesGenerated.Inc()
		n.logger.Info("article persisted",
			"article_id", article.ID,
			"category", article.Category,
			"author", article.Author,
		)

		n.syndicate(ctx, *article)

		if i < n.opts.ArticleCount-1 {
			if !sleepWithContext(ctx, n.opts.ArticleDelay) {
				return generated, ctx.Err()
			}
		}
	}

	// Pruning keeps the public file bounded; a failure here only means the
	// next batch prunes a little more.
	if dropped, err := n.store.Prune(n.opts.ArticleLimit); err != nil {
		n.logger.Error("prune articles failed", "error", err)
	} else if dropped > 0 {
		n.metrics.ArticlesPruned.Add(float64(dropped))
		n.logger.Info("pruned old articles", "dropped", dropped, "limit", n.opts.ArticleLimit)
	}

	n.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	if generated > 0 {
		n.ready.Store(true)
	}
	n.logger.Info("article batch complete",
		"generated", generated, "requested", n.opts.ArticleCount)
	return generated, nil
}

func (n *Newsroom) generateArticle(ctx context.Context) (*domain.Article, error) {
	storySeed, err := n.sampler.Sample(n.town, n.people)
	if err != nil {
		return nil, fmt.Errorf("sample story seed: %w", err)
	}

	now := domain.TimeNow().UTC()
	article := &domain.Article{
		ID:              domain.NewArticleID(n.rng),
		PublicationDate: now.Truncate(24 * time.Hour),
		LastUpdated:     now.Truncate(time.Second),
		Author:          storySeed.AuthorName,
		AuthorPersona:   storySeed.AuthorPersona,
		AuthorStyle:     storySeed.AuthorStyle,
		Category:        storySeed.Category,
		TownData:        storySeed.TownData,
		People:          storySeed.People,
	}

	if n.completer == nil {
		fillPlaceholder(article, storySeed.Category)
		return article, nil
	}

	var newspaper *domain.Newspaper
	townName := ""
	if n.town != nil {
		newspaper = n.town.Newspaper
		townName = n.town.Name
	}

	llmStart := time.Now()
	raw, err := n.completer.Complete(ctx,
		seed.SystemPrompt(newspaper, townName, storySeed),
		seed.UserPrompt(storySeed),
	)
	n.metrics.LLMAPIDuration.Observe(time.Since(llmStart).Seconds())
	if err != nil {
		n.metrics.LLMRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("complete article: %w", err)
	}

	draft, err := seed.ParseArticleDraft(raw)
	if err != nil {
		n.metrics.LLMRequests.WithLabelValues("parse_error").Inc()
		return nil, err
	}
	n.metrics.LLMRequests.WithLabelValues("success").Inc()

	article.Title = draft.Title
	article.Slug = draft.Slug
	article.Body = draft.Body
	article.Summary = draft.Summary
	article.Status = domain.StatusPublished
	article.StoryStatus = draft.StoryStatus
	return article, nil
}

// fillPlaceholder writes the stand-in article used when the model is
// disabled, keeping the file format exercised end to end.
func fillPlaceholder(article *domain.Article, category string) {
	article.Title = fmt.Sprintf("Placeholder Title for %s Article", category)
	article.Slug = fmt.Sprintf("placeholder-title-for-%s-article",
		strings.ReplaceAll(strings.ToLower(category), " ", "-"))
	article.Body = "This is a placeholder for the article body."
	article.Summary = "This is a placeholder summary."
	article.Status = domain.StatusDraft
	article.StoryStatus = domain.StoryOngoing
}

func (n *Newsroom) syndicate(ctx context.Context, article domain.Article) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, article); err != nil {
		n.metrics.SyndicationErrors.Inc()
		n.logger.Warn("syndication publish failed", "error", err, "article_id", article.ID)
		return
	}
	n.metrics.ArticlesSyndicated.Inc()
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
