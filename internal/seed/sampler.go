// Package seed assembles story seeds: the sampled town facts, residents,
// byline, and tone that shape one generated article.
package seed

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/gen"
)

// specialistAuthorChance is the probability of preferring an author whose
// specialties cover the chosen category when at least one exists.
const specialistAuthorChance = 0.7

// Sampler draws story seeds from the configured category, author, and tone
// tables plus the generated town and population.
type Sampler struct {
	rng *rand.Rand
	cfg *config.ArticleConfig
}

// NewSampler creates a sampler drawing all randomness from rng.
func NewSampler(rng *rand.Rand, cfg *config.ArticleConfig) *Sampler {
	return &Sampler{rng: rng, cfg: cfg}
}

// Sample assembles one story seed. A nil town or empty population simply
// produces a seed without that data; category, author, and tone are always
// present.
func (s *Sampler) Sample(town *domain.Town, people []domain.Person) (*domain.StorySeed, error) {
	category := gen.Choice(s.rng, s.cfg.Categories)
	author := s.pickAuthor(category)

	tone, err := s.pickTone()
	if err != nil {
		return nil, err
	}

	storySeed := &domain.StorySeed{
		Category:      category,
		AuthorName:    author.Name,
		AuthorPersona: author.Persona,
		AuthorStyle:   author.WritingStyle,
		Tone:          tone,
	}

	if town != nil && s.rng.Float64() < s.cfg.ArticleSeed.TownData.InclusionProbability {
		storySeed.TownData = s.sampleTownData(town)
	}

	if len(people) > 0 && s.rng.Float64() < s.cfg.ArticleSeed.PeopleData.InclusionProbability {
		sampled, err := s.samplePeople(people)
		if err != nil {
			return nil, err
		}
		storySeed.People = sampled
	}

	return storySeed, nil
}

func (s *Sampler) pickAuthor(category string) config.Author {
	var specialists []config.Author
	for _, a := range s.cfg.Authors {
		if a.Specializes(category) {
			specialists = append(specialists, a)
		}
	}
	if len(specialists) > 0 && s.rng.Float64() < specialistAuthorChance {
		return gen.Choice(s.rng, specialists)
	}
	return gen.Choice(s.rng, s.cfg.Authors)
}

func (s *Sampler) pickTone() (string, error) {
	directives := make([]string, len(s.cfg.Tones))
	weights := make([]float64, len(s.cfg.Tones))
	for i, t := range s.cfg.Tones {
		directives[i] = t.Directive
		weights[i] = t.Weight
	}
	tone, err := gen.WeightedChoice(s.rng, directives, weights)
	if err != nil {
		return "", fmt.Errorf("pick tone: %w", err)
	}
	return tone, nil
}

// sampleTownData gates each feature class independently and samples up to
// its configured max without replacement. The town name and population are
// always carried.
func (s *Sampler) sampleTownData(town *domain.Town) *domain.SeedTownData {
	fw := s.cfg.ArticleSeed.TownData.FeatureWeights
	data := &domain.SeedTownData{
		TownName:       town.Name,
		TownPopulation: town.Population,
	}

	if s.rng.Float64() < fw.Streets.Probability {
		data.Features.Streets = gen.Sample(s.rng, town.Streets, fw.Streets.MaxCount)
	}
	if s.rng.Float64() < fw.Landmarks.Probability {
		data.Features.Landmarks = gen.Sample(s.rng, town.Landmarks, fw.Landmarks.MaxCount)
	}
	if s.rng.Float64() < fw.Businesses.Probability {
		data.Features.Businesses = gen.Sample(s.rng, town.Businesses, fw.Businesses.MaxCount)
	}
	if s.rng.Float64() < fw.Events.Probability {
		data.Features.Events = gen.Sample(s.rng, town.Events, fw.Events.MaxCount)
	}

	return data
}

// samplePeople picks a weighted age bracket, narrows the population to it,
// and samples the target count. An empty bracket yields no people.
func (s *Sampler) samplePeople(people []domain.Person) ([]domain.Person, error) {
	cfg := s.cfg.ArticleSeed.PeopleData
	count := gen.IntInRange(s.rng, cfg.MinPeoplePerArticle, cfg.MaxPeoplePerArticle)
	if count == 0 {
		return nil, nil
	}

	pool := people
	if len(cfg.AgeGroupWeights) > 0 {
		groups := make([]string, len(cfg.AgeGroupWeights))
		weights := make([]float64, len(cfg.AgeGroupWeights))
		for i, ag := range cfg.AgeGroupWeights {
			groups[i] = ag.Group
			weights[i] = ag.Weight
		}
		group, err := gen.WeightedChoice(s.rng, groups, weights)
		if err != nil {
			return nil, fmt.Errorf("pick age group: %w", err)
		}
		lo, hi, err := ageGroupBounds(group)
		if err != nil {
			return nil, err
		}
		pool = nil
		for _, p := range people {
			if p.Age >= lo && p.Age <= hi {
				pool = append(pool, p)
			}
		}
	}

	return gen.Sample(s.rng, pool, count), nil
}

// ageGroupBounds parses "18-30" style brackets; a trailing "+" means no
// upper bound.
func ageGroupBounds(group string) (int, int, error) {
	if rest, ok := strings.CutSuffix(group, "+"); ok {
		lo, err := strconv.Atoi(rest)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid age group %q", group)
		}
		return lo, int(^uint(0) >> 1), nil
	}
	lo, hi, ok := strings.Cut(group, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid age group %q", group)
	}
	loN, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age group %q", group)
	}
	hiN, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age group %q", group)
	}
	return loN, hiN, nil
}
