package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/gen"
	"github.com/couchcryptid/gazette-newsroom/internal/observability"
	"github.com/couchcryptid/gazette-newsroom/internal/pipeline"
)

// --- mocks ---

type mockSampler struct {
	err error
}

func (m *mockSampler) Sample(town *domain.Town, people []domain.Person) (*domain.StorySeed, error) {
	if m.err != nil {
		return nil, m.err
	}
	storySeed := &domain.StorySeed{
		Category:      "Local News",
		AuthorName:    "Margaret Holloway",
		AuthorPersona: "Veteran reporter",
		AuthorStyle:   "Measured",
		Tone:          "Play it straight",
	}
	if town != nil {
		storySeed.TownData = &domain.SeedTownData{TownName: town.Name, TownPopulation: town.Population}
	}
	return storySeed, nil
}

type mockCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (m *mockCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return `{"title": "Default Title", "body": "Default body."}`, nil
}

type mockStore struct {
	appended  []domain.Article
	appendErr error
	backups   int
	backupErr error
	pruneArgs []int
	pruneErr  error
	dropped   int
}

func (m *mockStore) Append(article domain.Article) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, article)
	return nil
}

func (m *mockStore) Backup() error {
	m.backups++
	return m.backupErr
}

func (m *mockStore) Prune(limit int) (int, error) {
	m.pruneArgs = append(m.pruneArgs, limit)
	return m.dropped, m.pruneErr
}

type mockPublisher struct {
	published []domain.Article
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, article domain.Article) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, article)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh unregistered set to avoid "already registered" panics.
	return observability.NewMetricsForTesting()
}

func testOpts() pipeline.Options {
	return pipeline.Options{
		ArticleCount:     3,
		ArticleDelay:     0,
		BackupBeforeSave: true,
		ArticleLimit:     50,
		PublishInterval:  time.Hour,
	}
}

func newNewsroom(completer pipeline.Completer, store *mockStore, publisher pipeline.Publisher, opts pipeline.Options) *pipeline.Newsroom {
	town := &domain.Town{Name: "Mackney", Population: 8200}
	return pipeline.New(
		town, nil, &mockSampler{}, completer, store, publisher,
		gen.NewSeededRand(1), opts, slog.Default(), newTestMetrics(),
	)
}

func TestRunOnceGeneratesBatch(t *testing.T) {
	completer := &mockCompleter{responses: []string{
		`{"title": "Fair Returns", "slug": "fair-returns", "body": "B1", "summary": "S1", "story_status": "Concluded"}`,
	}}
	store := &mockStore{}
	n := newNewsroom(completer, store, nil, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, generated)
	require.Len(t, store.appended, 3)

	first := store.appended[0]
	assert.Equal(t, "Fair Returns", first.Title)
	assert.Equal(t, "fair-returns", first.Slug)
	assert.Equal(t, domain.StatusPublished, first.Status)
	assert.Equal(t, domain.StoryConcluded, first.StoryStatus)
	assert.Equal(t, "Margaret Holloway", first.Author)
	assert.Equal(t, "Mackney", first.TownData.TownName)

	assert.Equal(t, 1, store.backups)
	assert.Equal(t, []int{50}, store.pruneArgs)
	assert.NoError(t, n.CheckReadiness(context.Background()))
}

func TestRunOnceSkipsFailedArticles(t *testing.T) {
	completer := &mockCompleter{errs: []error{nil, errors.New("model unavailable"), nil}}
	store := &mockStore{}
	n := newNewsroom(completer, store, nil, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, generated)
	assert.Len(t, store.appended, 2)
}

func TestRunOnceSkipsMalformedResponses(t *testing.T) {
	completer := &mockCompleter{responses: []string{
		`not json at all`,
		`{"title": "OK", "body": "B"}`,
		`{"body": "missing title"}`,
	}}
	store := &mockStore{}
	n := newNewsroom(completer, store, nil, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
}

func TestRunOncePlaceholderWhenModelDisabled(t *testing.T) {
	store := &mockStore{}
	n := newNewsroom(nil, store, nil, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, generated)

	first := store.appended[0]
	assert.Equal(t, "Placeholder Title for Local News Article", first.Title)
	assert.Equal(t, "placeholder-title-for-local-news-article", first.Slug)
	assert.Equal(t, domain.StatusDraft, first.Status)
	assert.Equal(t, domain.StoryOngoing, first.StoryStatus)
}

func TestRunOnceAbortsOnStoreError(t *testing.T) {
	store := &mockStore{appendErr: errors.New("disk full")}
	n := newNewsroom(nil, store, nil, testOpts())

	_, err := n.RunOnce(context.Background())
	assert.ErrorContains(t, err, "disk full")
	assert.Error(t, n.CheckReadiness(context.Background()))
}

func TestRunOnceAbortsOnBackupError(t *testing.T) {
	store := &mockStore{backupErr: errors.New("backup failed")}
	n := newNewsroom(nil, store, nil, testOpts())

	_, err := n.RunOnce(context.Background())
	assert.ErrorContains(t, err, "backup failed")
	assert.Empty(t, store.appended)
}

func TestRunOnceSkipsBackupWhenDisabled(t *testing.T) {
	store := &mockStore{}
	opts := testOpts()
	opts.BackupBeforeSave = false
	n := newNewsroom(nil, store, nil, opts)

	_, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, store.backups)
}

func TestRunOncePruneFailureIsNotFatal(t *testing.T) {
	store := &mockStore{pruneErr: errors.New("rewrite failed")}
	n := newNewsroom(nil, store, nil, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, generated)
}

func TestRunOnceSyndicatesPersistedArticles(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{}
	n := newNewsroom(nil, store, publisher, testOpts())

	_, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, publisher.published, 3)
	assert.Equal(t, store.appended[0].ID, publisher.published[0].ID)
}

func TestRunOnceSyndicationFailureIsNotFatal(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{err: errors.New("broker down")}
	n := newNewsroom(nil, store, publisher, testOpts())

	generated, err := n.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, generated)
}

func TestRunOnceArticleTimestampsFollowClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	store := &mockStore{}
	n := newNewsroom(nil, store, nil, testOpts())

	_, err := n.RunOnce(context.Background())
	require.NoError(t, err)

	first := store.appended[0]
	assert.True(t, strings.HasPrefix(first.ID, "ART-20250601123045-"), "got id %s", first.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), first.PublicationDate)
	assert.Equal(t, fixed, first.LastUpdated)
}

func TestRunOnceStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &mockStore{}
	opts := testOpts()
	opts.ArticleDelay = 10 * time.Millisecond
	n := newNewsroom(nil, store, nil, opts)

	generated, err := n.RunOnce(ctx)
	assert.Error(t, err)
	assert.LessOrEqual(t, generated, 1)
}

func TestRunLoopStopsOnCancel(t *testing.T) {
	store := &mockStore{}
	n := newNewsroom(nil, store, nil, testOpts())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	// The immediate first batch should land before cancellation.
	require.Eventually(t, func() bool {
		return n.CheckReadiness(context.Background()) == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("newsroom did not stop after cancellation")
	}
	assert.Len(t, store.appended, 3)
}
