package seed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// Draft is the model's response to one article prompt.
type Draft struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Body        string `json:"body"`
	Summary     string `json:"summary"`
	StoryStatus string `json:"story_status"`
}

// SystemPrompt casts the model as a named journalist writing for the town's
// paper in the author's persona and style.
func SystemPrompt(paper *domain.Newspaper, townName string, storySeed *domain.StorySeed) string {
	paperName := "the local newspaper"
	if paper != nil && paper.Name != "" {
		paperName = paper.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a journalist writing for %s, the local newspaper of %s.\n",
		storySeed.AuthorName, paperName, townName)
	if storySeed.AuthorPersona != "" {
		fmt.Fprintf(&b, "Persona: %s\n", storySeed.AuthorPersona)
	}
	if storySeed.AuthorStyle != "" {
		fmt.Fprintf(&b, "Writing style: %s\n", storySeed.AuthorStyle)
	}
	b.WriteString("Write believable small-town news grounded only in the facts provided. " +
		"Invent minor color where needed but never contradict the given facts.")
	return b.String()
}

// UserPrompt lays out the category, tone, and sampled facts, and asks for a
// JSON object shaped like Draft.
func UserPrompt(storySeed *domain.StorySeed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s article.\n", storySeed.Category)
	fmt.Fprintf(&b, "Tone: %s\n", storySeed.Tone)

	if td := storySeed.TownData; td != nil {
		fmt.Fprintf(&b, "\nTown: %s (population %d)\n", td.TownName, td.TownPopulation)
		writeFeatures(&b, td)
	}

	if len(storySeed.People) > 0 {
		b.WriteString("\nResidents to feature:\n")
		for _, p := range storySeed.People {
			fmt.Fprintf(&b, "- %s, %d", p.FullName(), p.Age)
			if p.Occupation != "" {
				fmt.Fprintf(&b, ", %s", p.Occupation)
			}
			if p.Temperament.Type != "" {
				fmt.Fprintf(&b, " (%s: %s)", p.Temperament.Type, p.Temperament.Description)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRespond with a single JSON object and nothing else, with keys " +
		`"title", "slug", "body", "summary", and "story_status" ` +
		`("Ongoing" if the story could continue in a later edition, "Concluded" otherwise).`)
	return b.String()
}

func writeFeatures(b *strings.Builder, td *domain.SeedTownData) {
	if len(td.Features.Streets) > 0 {
		b.WriteString("Streets:\n")
		for _, s := range td.Features.Streets {
			fmt.Fprintf(b, "- %s (%s)\n", s.Name, s.Type)
		}
	}
	if len(td.Features.Landmarks) > 0 {
		b.WriteString("Landmarks:\n")
		for _, l := range td.Features.Landmarks {
			fmt.Fprintf(b, "- %s (%s) on %s, established %d\n", l.Name, l.Type, l.Street, l.EstablishedYear)
		}
	}
	if len(td.Features.Businesses) > 0 {
		b.WriteString("Businesses:\n")
		for _, biz := range td.Features.Businesses {
			fmt.Fprintf(b, "- %s (%s) on %s\n", biz.Name, biz.Type, biz.Street)
		}
	}
	if len(td.Features.Events) > 0 {
		b.WriteString("Events:\n")
		for _, e := range td.Features.Events {
			fmt.Fprintf(b, "- %s (%s) on %s at %s\n", e.Name, e.Type, e.Date, e.Location)
		}
	}
}

// ParseArticleDraft decodes the model response into a Draft. Code fences are
// stripped first since models often wrap JSON in them. A missing slug falls
// back to a slugified title; a missing or unrecognized story status defaults
// to Ongoing.
func ParseArticleDraft(raw string) (Draft, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var draft Draft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return Draft{}, fmt.Errorf("parse article draft: %w", err)
	}
	if draft.Title == "" {
		return Draft{}, fmt.Errorf("parse article draft: missing title")
	}
	if draft.Body == "" {
		return Draft{}, fmt.Errorf("parse article draft: missing body")
	}
	if draft.Slug == "" {
		draft.Slug = domain.Slugify(draft.Title)
	}
	switch draft.StoryStatus {
	case domain.StoryOngoing, domain.StoryConcluded:
	default:
		draft.StoryStatus = domain.StoryOngoing
	}
	return draft, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
