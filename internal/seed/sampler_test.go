package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/gen"
)

func testArticleConfig() *config.ArticleConfig {
	cfg := &config.ArticleConfig{
		Categories: []string{"Local News", "Sports"},
		Authors: []config.Author{
			{Name: "Margaret Holloway", Persona: "Veteran reporter", WritingStyle: "Measured", Specialties: []string{"Local News"}},
			{Name: "Dev Chaudhary", Persona: "Recent graduate", WritingStyle: "Colourful", Specialties: []string{"Sports"}},
		},
		Tones: []config.Tone{
			{Directive: "Keep it light", Weight: 1},
			{Directive: "Play it straight", Weight: 1},
		},
	}
	cfg.ArticleSeed.TownData.InclusionProbability = 1
	cfg.ArticleSeed.TownData.FeatureWeights = config.FeatureWeights{
		Streets:    config.FeatureWeight{Probability: 1, MaxCount: 2},
		Landmarks:  config.FeatureWeight{Probability: 1, MaxCount: 2},
		Businesses: config.FeatureWeight{Probability: 1, MaxCount: 2},
		Events:     config.FeatureWeight{Probability: 1, MaxCount: 2},
	}
	cfg.ArticleSeed.PeopleData.InclusionProbability = 1
	cfg.ArticleSeed.PeopleData.MinPeoplePerArticle = 1
	cfg.ArticleSeed.PeopleData.MaxPeoplePerArticle = 2
	cfg.ArticleSeed.PeopleData.AgeGroupWeights = []config.AgeGroupWeight{
		{Group: "18-30", Weight: 1},
		{Group: "31-50", Weight: 1},
		{Group: "51-70", Weight: 1},
		{Group: "71+", Weight: 1},
	}
	return cfg
}

func testTown() *domain.Town {
	return &domain.Town{
		Name:       "Mackney",
		Population: 8200,
		Streets: []domain.Street{
			{ID: "s1", Name: "Oak Lane", Type: "Residential"},
			{ID: "s2", Name: "High Street", Type: "Commercial"},
			{ID: "s3", Name: "Mill Road", Type: "Mixed"},
		},
		Landmarks: []domain.Landmark{
			{ID: "l1", Name: "St. Agnes's Church", Type: "Church", Street: "Oak Lane"},
		},
		Businesses: []domain.Business{
			{ID: "b1", Name: "The Golden Spoon", Type: "Restaurant/Café", Street: "High Street"},
			{ID: "b2", Name: "Corner Market", Type: "Retail Store", Street: "High Street"},
			{ID: "b3", Name: "Quick Stop", Type: "Gas Station", Street: "Mill Road"},
		},
		Events: []domain.Event{
			{ID: "e1", Name: "Harvest Fair", Type: "Festival", Date: "2025-09-20", Location: "Victoria Park"},
		},
	}
}

func testPeople(ages ...int) []domain.Person {
	people := make([]domain.Person, len(ages))
	for i, age := range ages {
		people[i] = domain.Person{
			ID:        string(rune('a' + i)),
			FirstName: "Resident",
			LastName:  string(rune('A' + i)),
			Age:       age,
		}
	}
	return people
}

func TestSamplerAlwaysFillsByline(t *testing.T) {
	s := NewSampler(gen.NewSeededRand(1), testArticleConfig())

	for i := 0; i < 50; i++ {
		storySeed, err := s.Sample(nil, nil)
		require.NoError(t, err)

		assert.Contains(t, []string{"Local News", "Sports"}, storySeed.Category)
		assert.Contains(t, []string{"Margaret Holloway", "Dev Chaudhary"}, storySeed.AuthorName)
		assert.Contains(t, []string{"Keep it light", "Play it straight"}, storySeed.Tone)
		assert.Nil(t, storySeed.TownData)
		assert.Empty(t, storySeed.People)
	}
}

func TestSamplerPrefersSpecialists(t *testing.T) {
	cfg := testArticleConfig()
	cfg.Categories = []string{"Sports"}
	s := NewSampler(gen.NewSeededRand(2), cfg)

	const runs = 2000
	specialist := 0
	for i := 0; i < runs; i++ {
		storySeed, err := s.Sample(nil, nil)
		require.NoError(t, err)
		if storySeed.AuthorName == "Dev Chaudhary" {
			specialist++
		}
	}
	// 70% specialist preference plus half of the 30% fallback: ~85%.
	assert.Greater(t, float64(specialist)/runs, 0.75)
	assert.Less(t, float64(specialist)/runs, 0.95)
}

func TestSamplerBoundsTownFeatures(t *testing.T) {
	s := NewSampler(gen.NewSeededRand(3), testArticleConfig())
	town := testTown()

	for i := 0; i < 100; i++ {
		storySeed, err := s.Sample(town, nil)
		require.NoError(t, err)
		require.NotNil(t, storySeed.TownData)

		assert.Equal(t, "Mackney", storySeed.TownData.TownName)
		assert.Equal(t, 8200, storySeed.TownData.TownPopulation)

		features := storySeed.TownData.Features
		assert.LessOrEqual(t, len(features.Streets), 2)
		assert.LessOrEqual(t, len(features.Landmarks), 1, "only one landmark exists")
		assert.LessOrEqual(t, len(features.Businesses), 2)
		assert.LessOrEqual(t, len(features.Events), 1)

		seen := make(map[string]bool)
		for _, st := range features.Streets {
			assert.False(t, seen[st.ID], "street %s sampled twice", st.ID)
			seen[st.ID] = true
		}
		for _, b := range features.Businesses {
			assert.False(t, seen[b.ID], "business %s sampled twice", b.ID)
			seen[b.ID] = true
		}
	}
}

func TestSamplerZeroInclusionProbability(t *testing.T) {
	cfg := testArticleConfig()
	cfg.ArticleSeed.TownData.InclusionProbability = 0
	cfg.ArticleSeed.PeopleData.InclusionProbability = 0
	s := NewSampler(gen.NewSeededRand(4), cfg)

	for i := 0; i < 100; i++ {
		storySeed, err := s.Sample(testTown(), testPeople(25, 40, 60))
		require.NoError(t, err)
		assert.Nil(t, storySeed.TownData)
		assert.Empty(t, storySeed.People)
	}
}

func TestSamplerAgeGroupFilter(t *testing.T) {
	cfg := testArticleConfig()
	cfg.ArticleSeed.PeopleData.AgeGroupWeights = []config.AgeGroupWeight{
		{Group: "71+", Weight: 1},
	}
	s := NewSampler(gen.NewSeededRand(5), cfg)

	t.Run("only matching ages are sampled", func(t *testing.T) {
		people := testPeople(25, 40, 72, 80, 91)
		for i := 0; i < 100; i++ {
			storySeed, err := s.Sample(nil, people)
			require.NoError(t, err)
			for _, p := range storySeed.People {
				assert.GreaterOrEqual(t, p.Age, 71)
			}
		}
	})

	t.Run("empty bracket yields no people", func(t *testing.T) {
		people := testPeople(25, 40, 60)
		for i := 0; i < 100; i++ {
			storySeed, err := s.Sample(nil, people)
			require.NoError(t, err)
			assert.Empty(t, storySeed.People)
		}
	})
}

func TestSamplerRespectsPeopleCountRange(t *testing.T) {
	s := NewSampler(gen.NewSeededRand(6), testArticleConfig())
	people := testPeople(25, 35, 45, 55, 65, 75)

	for i := 0; i < 200; i++ {
		storySeed, err := s.Sample(nil, people)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(storySeed.People), 2)
	}
}

func TestAgeGroupBounds(t *testing.T) {
	lo, hi, err := ageGroupBounds("18-30")
	require.NoError(t, err)
	assert.Equal(t, 18, lo)
	assert.Equal(t, 30, hi)

	lo, _, err = ageGroupBounds("71+")
	require.NoError(t, err)
	assert.Equal(t, 71, lo)

	_, _, err = ageGroupBounds("elderly")
	assert.Error(t, err)
}
