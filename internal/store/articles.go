package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// Timestamp layouts used in articles.csv.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var articleHeader = []string{
	"article_id", "title", "slug", "body", "summary",
	"publication_date", "last_updated", "author",
	"author_persona", "author_style", "category",
	"status", "story_status", "town_data", "people_data", "images",
}

// Articles is the append-oriented articles.csv store.
type Articles struct {
	path string
}

// NewArticles creates a store for the given CSV path. The file is created
// on first append.
func NewArticles(path string) *Articles {
	return &Articles{path: path}
}

// Path returns the backing file path.
func (a *Articles) Path() string {
	return a.path
}

// Append writes one article row, creating the file with a header when it
// does not exist or is empty.
func (a *Articles) Append(article domain.Article) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open articles file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat articles file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(articleHeader); err != nil {
			return fmt.Errorf("write articles header: %w", err)
		}
	}

	record, err := articleRecord(article)
	if err != nil {
		return err
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write article %s: %w", article.ID, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush articles file: %w", err)
	}
	return nil
}

// ReadAll returns every stored article in file order. A missing file is an
// empty store, not an error.
func (a *Articles) ReadAll() ([]domain.Article, error) {
	f, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open articles file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read articles file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx, err := headerIndex(rows[0], articleHeader)
	if err != nil {
		return nil, fmt.Errorf("articles file %s: %w", a.path, err)
	}

	articles := make([]domain.Article, 0, len(rows)-1)
	for i, row := range rows[1:] {
		article, err := parseArticle(row, idx)
		if err != nil {
			return nil, fmt.Errorf("articles file row %d: %w", i+2, err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Backup copies the articles file to <path>.bak. A missing file is a no-op.
func (a *Articles) Backup() error {
	src, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open articles file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(a.path + ".bak")
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy to backup file: %w", err)
	}
	return nil
}

// Prune rewrites the file keeping only the limit newest articles by
// last-updated timestamp, newest first. It returns how many rows were
// dropped. A non-positive limit disables pruning.
func (a *Articles) Prune(limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}
	articles, err := a.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(articles) <= limit {
		return 0, nil
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].LastUpdated.After(articles[j].LastUpdated)
	})
	kept := articles[:limit]

	f, err := os.Create(a.path)
	if err != nil {
		return 0, fmt.Errorf("rewrite articles file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(articleHeader); err != nil {
		return 0, fmt.Errorf("write articles header: %w", err)
	}
	for _, article := range kept {
		record, err := articleRecord(article)
		if err != nil {
			return 0, err
		}
		if err := w.Write(record); err != nil {
			return 0, fmt.Errorf("write article %s: %w", article.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush articles file: %w", err)
	}
	return len(articles) - limit, nil
}

func articleRecord(article domain.Article) ([]string, error) {
	townData, err := encodeJSONColumn(article.TownData)
	if err != nil {
		return nil, fmt.Errorf("encode town_data for %s: %w", article.ID, err)
	}
	peopleData, err := encodeJSONColumn(article.People)
	if err != nil {
		return nil, fmt.Errorf("encode people_data for %s: %w", article.ID, err)
	}
	images, err := encodeJSONColumn(article.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images for %s: %w", article.ID, err)
	}

	return []string{
		article.ID, article.Title, article.Slug, article.Body, article.Summary,
		article.PublicationDate.Format(dateLayout),
		article.LastUpdated.Format(dateTimeLayout),
		article.Author, article.AuthorPersona, article.AuthorStyle,
		article.Category, article.Status, article.StoryStatus,
		townData, peopleData, images,
	}, nil
}

func parseArticle(row []string, idx map[string]int) (domain.Article, error) {
	get := func(col string) string { return row[idx[col]] }

	pubDate, err := time.Parse(dateLayout, get("publication_date"))
	if err != nil {
		return domain.Article{}, fmt.Errorf("invalid publication_date %q", get("publication_date"))
	}
	lastUpdated, err := time.Parse(dateTimeLayout, get("last_updated"))
	if err != nil {
		return domain.Article{}, fmt.Errorf("invalid last_updated %q", get("last_updated"))
	}

	article := domain.Article{
		ID:              get("article_id"),
		Title:           get("title"),
		Slug:            get("slug"),
		Body:            get("body"),
		Summary:         get("summary"),
		PublicationDate: pubDate,
		LastUpdated:     lastUpdated,
		Author:          get("author"),
		AuthorPersona:   get("author_persona"),
		AuthorStyle:     get("author_style"),
		Category:        get("category"),
		Status:          get("status"),
		StoryStatus:     get("story_status"),
	}

	if raw := get("town_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &article.TownData); err != nil {
			return domain.Article{}, fmt.Errorf("invalid town_data for %s: %w", article.ID, err)
		}
	}
	if raw := get("people_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &article.People); err != nil {
			return domain.Article{}, fmt.Errorf("invalid people_data for %s: %w", article.ID, err)
		}
	}
	if raw := get("images"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &article.Images); err != nil {
			return domain.Article{}, fmt.Errorf("invalid images for %s: %w", article.ID, err)
		}
	}
	return article, nil
}

// encodeJSONColumn renders a value as compact JSON, or empty for nil so
// absent data reads back as absent.
func encodeJSONColumn(v any) (string, error) {
	switch val := v.(type) {
	case *domain.SeedTownData:
		if val == nil {
			return "", nil
		}
	case []domain.Person:
		if len(val) == 0 {
			return "", nil
		}
	case []string:
		if len(val) == 0 {
			return "", nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
