// Command validate performs end-to-end integrity checks across the
// generated dataset: town.json, people.csv, and articles.csv. It verifies
// ID uniqueness, street references, counts against the configured size
// tier, demographic bounds, and article cross-references.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data -tables configs/town_tables.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/store"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing town.json, people.csv, and articles.csv")
	tablesPath := flag.String("tables", "configs/town_tables.yaml", "path to the town generation tables")
	flag.Parse()

	if code := run(*dataDir, *tablesPath); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir, tablesPath string) int {
	fmt.Println("=== Gazette Dataset Integrity Validation ===")
	fmt.Println()

	tables, err := config.LoadTownTables(tablesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load town tables: %v\n", err)
		return 1
	}

	town, err := store.LoadTown(filepath.Join(dataDir, "town.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load town: %v\n", err)
		return 1
	}

	people, err := store.LoadPeople(filepath.Join(dataDir, "people.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load people: %v\n", err)
		return 1
	}

	articles, err := store.NewArticles(filepath.Join(dataDir, "articles.csv")).ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load articles: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateTown(town, tables),
		validatePopulation(people),
		validateArticles(articles),
		validateCrossReferences(town, people, articles),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d streets, %d businesses, %d people, %d articles\n",
		len(town.Streets), len(town.Businesses), len(people), len(articles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Town Integrity ──
// Validates identity fields, ID uniqueness, street references, and counts
// against the configured size tier.

func validateTown(town *domain.Town, tables *config.TownTables) *phase {
	p := &phase{name: "Phase 1: Town Integrity (town.json)"}

	if town.Name == "" {
		p.errorf("town name is empty")
	}
	if town.Country == "" {
		p.errorf("town country is empty")
	}
	if town.GeneratedAt.IsZero() {
		p.errorf("generated_at is zero")
	}

	checkTownIDs(p, town)
	checkStreetReferences(p, town)
	checkTierCounts(p, town, tables)

	return p
}

func checkTownIDs(p *phase, town *domain.Town) {
	seen := map[string]string{}
	record := func(kind, id string) {
		if id == "" {
			p.errorf("%s has empty ID", kind)
			return
		}
		if prev, ok := seen[id]; ok {
			p.errorf("duplicate ID %q used by %s and %s", id, prev, kind)
			return
		}
		seen[id] = kind
	}

	for i := range town.Streets {
		record("street "+town.Streets[i].Name, town.Streets[i].ID)
	}
	for i := range town.Businesses {
		record("business "+town.Businesses[i].Name, town.Businesses[i].ID)
	}
	for i := range town.Landmarks {
		record("landmark "+town.Landmarks[i].Name, town.Landmarks[i].ID)
	}
	for i := range town.Parks {
		record("park "+town.Parks[i].Name, town.Parks[i].ID)
	}
	for i := range town.Schools {
		record("school "+town.Schools[i].Name, town.Schools[i].ID)
	}
	for i := range town.Services {
		record("service "+town.Services[i].Name, town.Services[i].ID)
	}
}

func checkStreetReferences(p *phase, town *domain.Town) {
	streets := map[string]bool{}
	for i := range town.Streets {
		streets[town.Streets[i].Name] = true
	}
	check := func(kind, name, street string) {
		if !streets[street] {
			p.errorf("%s %q references unknown street %q", kind, name, street)
		}
	}
	for i := range town.Businesses {
		check("business", town.Businesses[i].Name, town.Businesses[i].Street)
	}
	for i := range town.Landmarks {
		check("landmark", town.Landmarks[i].Name, town.Landmarks[i].Street)
	}
	for i := range town.Schools {
		check("school", town.Schools[i].Name, town.Schools[i].Street)
	}
	for i := range town.Services {
		check("service", town.Services[i].Name, town.Services[i].Street)
	}
}

func checkTierCounts(p *phase, town *domain.Town, tables *config.TownTables) {
	tier, ok := tables.TownSizes[town.SizeCategory]
	if !ok {
		p.errorf("size category %q not found in tables", town.SizeCategory)
		return
	}

	inRange := func(name string, got int, r config.Range) {
		if got < r.Lo() || got > r.Hi() {
			p.errorf("%s count %d outside tier range [%d, %d]", name, got, r.Lo(), r.Hi())
		}
	}
	inRange("population", town.Population, tier.PopulationRange)
	inRange("street", len(town.Streets), tier.StreetCountRange)
	inRange("business", len(town.Businesses), tier.BusinessCountRange)
	inRange("landmark", len(town.Landmarks), tier.LandmarkCountRange)
	inRange("park", len(town.Parks), tier.ParkCountRange)
	inRange("school", len(town.Schools), tier.SchoolCountRange)
	inRange("service", len(town.Services), tier.ServiceCountRange)
}

// ── Phase 2: Population Integrity ──
// Validates demographic bounds and the occupation rule.

func validatePopulation(people []domain.Person) *phase {
	p := &phase{name: "Phase 2: Population Integrity (people.csv)"}

	if len(people) == 0 {
		p.errorf("no people loaded")
		return p
	}

	seen := map[string]bool{}
	for i := range people {
		person := &people[i]
		if person.ID == "" {
			p.errorf("person %d: empty ID", i)
		} else if seen[person.ID] {
			p.errorf("person %d: duplicate ID %q", i, person.ID)
		}
		seen[person.ID] = true

		if person.Age < 18 || person.Age > 99 {
			p.errorf("person %s: age %d outside [18, 99]", person.ID, person.Age)
		}
		if person.AnnualIncome < 0 {
			p.errorf("person %s: negative income %d", person.ID, person.AnnualIncome)
		}
		if person.HouseholdSize < 1 {
			p.errorf("person %s: household size %d below 1", person.ID, person.HouseholdSize)
		}

		employed := strings.Contains(person.EmploymentStatus, "Employed")
		if employed && person.Occupation == "" {
			p.errorf("person %s: employed but has no occupation", person.ID)
		}
		if !employed && person.Occupation != "" {
			p.errorf("person %s: %s but has occupation %q", person.ID, person.EmploymentStatus, person.Occupation)
		}

		if person.Temperament.Type == "" {
			p.errorf("person %s: missing temperament", person.ID)
		}
	}
	return p
}

// ── Phase 3: Article Integrity ──
// Validates ID format, status enums, and timestamp ordering.

var (
	validStatuses      = map[string]bool{domain.StatusDraft: true, domain.StatusPublished: true}
	validStoryStatuses = map[string]bool{domain.StoryOngoing: true, domain.StoryConcluded: true}
)

func validateArticles(articles []domain.Article) *phase {
	p := &phase{name: "Phase 3: Article Integrity (articles.csv)"}

	seen := map[string]bool{}
	for i := range articles {
		a := &articles[i]
		if a.ID == "" {
			p.errorf("article %d: empty ID", i)
		} else {
			if !strings.HasPrefix(a.ID, "ART-") {
				p.errorf("article %d: ID %q does not start with ART-", i, a.ID)
			}
			if seen[a.ID] {
				p.errorf("article %d: duplicate ID %q", i, a.ID)
			}
			seen[a.ID] = true
		}

		if a.Title == "" {
			p.errorf("article %s: empty title", a.ID)
		}
		if a.Slug == "" {
			p.errorf("article %s: empty slug", a.ID)
		} else if a.Slug != domain.Slugify(a.Slug) {
			p.errorf("article %s: slug %q is not normalized", a.ID, a.Slug)
		}
		if a.Body == "" {
			p.errorf("article %s: empty body", a.ID)
		}
		if a.Author == "" {
			p.errorf("article %s: empty author", a.ID)
		}
		if a.Category == "" {
			p.errorf("article %s: empty category", a.ID)
		}
		if !validStatuses[a.Status] {
			p.errorf("article %s: status %q not in {Draft, Published}", a.ID, a.Status)
		}
		if !validStoryStatuses[a.StoryStatus] {
			p.errorf("article %s: story status %q not in {Ongoing, Concluded}", a.ID, a.StoryStatus)
		}

		if a.PublicationDate.IsZero() {
			p.errorf("article %s: publication date is zero", a.ID)
		}
		if a.LastUpdated.IsZero() {
			p.errorf("article %s: last updated is zero", a.ID)
		} else if a.LastUpdated.Before(a.PublicationDate) {
			p.errorf("article %s: last_updated %s before publication_date %s",
				a.ID, a.LastUpdated.Format(time.RFC3339), a.PublicationDate.Format(time.RFC3339))
		}
	}
	return p
}

// ── Phase 4: Cross-References ──
// Validates that article seeds point back at real town and population rows.

func validateCrossReferences(town *domain.Town, people []domain.Person, articles []domain.Article) *phase {
	p := &phase{name: "Phase 4: Cross-References (seed data)"}

	peopleByID := map[string]bool{}
	for i := range people {
		peopleByID[people[i].ID] = true
	}
	streets := map[string]bool{}
	for i := range town.Streets {
		streets[town.Streets[i].Name] = true
	}

	for i := range articles {
		a := &articles[i]
		if a.TownData != nil {
			if a.TownData.TownName != town.Name {
				p.errorf("article %s: town_data names %q, town.json is %q", a.ID, a.TownData.TownName, town.Name)
			}
			for _, s := range a.TownData.Features.Streets {
				if !streets[s.Name] {
					p.errorf("article %s: sampled street %q not in town.json", a.ID, s.Name)
				}
			}
		}
		for j := range a.People {
			if !peopleByID[a.People[j].ID] {
				p.errorf("article %s: sampled person %q not in people.csv", a.ID, a.People[j].ID)
			}
		}
	}
	return p
}
