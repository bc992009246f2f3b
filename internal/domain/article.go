package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Editorial status values for the status column.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// Story status values marking whether a storyline may continue.
const (
	StoryOngoing   = "Ongoing"
	StoryConcluded = "Concluded"
)

// SeedTownFeatures holds the bounded samples of town infrastructure chosen
// for one article.
type SeedTownFeatures struct {
	Streets    []Street   `json:"streets,omitempty"`
	Landmarks  []Landmark `json:"landmarks,omitempty"`
	Businesses []Business `json:"businesses,omitempty"`
	Events     []Event    `json:"events,omitempty"`
}

// Empty reports whether no features were sampled at all.
func (f SeedTownFeatures) Empty() bool {
	return len(f.Streets) == 0 && len(f.Landmarks) == 0 &&
		len(f.Businesses) == 0 && len(f.Events) == 0
}

// SeedTownData is the town slice of a story seed as persisted in the
// article's town_data column.
type SeedTownData struct {
	TownName       string           `json:"town_name"`
	TownPopulation int              `json:"town_population"`
	Features       SeedTownFeatures `json:"town_features"`
}

// StorySeed is the full sampled input assembled before prompting the model:
// which facts appear in the article and what voice and tone to request.
type StorySeed struct {
	Category      string
	AuthorName    string
	AuthorPersona string
	AuthorStyle   string
	Tone          string
	TownData      *SeedTownData
	People        []Person
}

// Article is one generated news story as persisted in articles.csv.
type Article struct {
	ID              string
	Title           string
	Slug            string
	Body            string
	Summary         string
	PublicationDate time.Time
	LastUpdated     time.Time
	Author          string
	AuthorPersona   string
	AuthorStyle     string
	Category        string
	Status          string
	StoryStatus     string
	TownData        *SeedTownData
	People          []Person
	Images          []string
}

// NewArticleID mints an article ID from the package clock plus a short
// random suffix. The timestamp keeps IDs sortable; the suffix keeps them
// unique when several articles are minted within the same second.
func NewArticleID(r *rand.Rand) string {
	return fmt.Sprintf("ART-%s-%04x", clock.Now().UTC().Format("20060102150405"), r.Intn(0x10000))
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a title and collapses runs of non-alphanumerics into
// single hyphens. Used as the fallback when the model omits a slug.
func Slugify(title string) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
