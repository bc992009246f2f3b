package gen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// TownGenerator produces a complete town with all infrastructure
// collections, driven by the configured weight tables.
type TownGenerator struct {
	rng    *rand.Rand
	faker  *gofakeit.Faker
	tables *config.TownTables
	locale string
}

// NewTownGenerator creates a generator drawing randomness from rng and
// names from faker, sized and named per the tables.
func NewTownGenerator(rng *rand.Rand, faker *gofakeit.Faker, tables *config.TownTables, locale string) *TownGenerator {
	return &TownGenerator{rng: rng, faker: faker, tables: tables, locale: locale}
}

// Generate builds a town of the given size category. An empty name picks a
// random city name. The size must name a configured tier.
func (g *TownGenerator) Generate(name, size string) (*domain.Town, error) {
	tier, ok := g.tables.TownSizes[size]
	if !ok {
		keys := make([]string, 0, len(g.tables.TownSizes))
		for k := range g.tables.TownSizes {
			keys = append(keys, k)
		}
		return nil, fmt.Errorf("invalid town size %q, must be one of %v", size, keys)
	}

	if name == "" {
		name = g.faker.City()
	}

	population := IntInRange(g.rng, tier.PopulationRange.Lo(), tier.PopulationRange.Hi())

	streets := g.streets(IntInRange(g.rng, tier.StreetCountRange.Lo(), tier.StreetCountRange.Hi()))

	town := &domain.Town{
		ID:           uuid.NewString(),
		Name:         name,
		Country:      g.tables.CountryFor(g.locale),
		Locale:       g.locale,
		SizeCategory: size,
		Population:   population,
		AreaSqKM:     Round2(float64(population) / float64(IntInRange(g.rng, 100, 500))),
		FoundedYear:  IntInRange(g.rng, 1600, 1950),
		ElevationM:   IntInRange(g.rng, 0, 1500),
		Climate:      Choice(g.rng, g.tables.NameComponents.ClimateTypes),
		Streets:      streets,
		Businesses:   g.businesses(IntInRange(g.rng, tier.BusinessCountRange.Lo(), tier.BusinessCountRange.Hi()), streets),
		Landmarks:    g.landmarks(IntInRange(g.rng, tier.LandmarkCountRange.Lo(), tier.LandmarkCountRange.Hi()), streets),
		Parks:        g.parks(IntInRange(g.rng, tier.ParkCountRange.Lo(), tier.ParkCountRange.Hi())),
		Schools:      g.schools(IntInRange(g.rng, tier.SchoolCountRange.Lo(), tier.SchoolCountRange.Hi()), streets),
		Services:     g.services(IntInRange(g.rng, tier.ServiceCountRange.Lo(), tier.ServiceCountRange.Hi()), name, streets),
		GeneratedAt:  domain.TimeNow().UTC(),
	}
	return town, nil
}

var streetUseTypes = []string{"Residential", "Commercial", "Mixed", "Industrial"}

func (g *TownGenerator) streets(count int) []domain.Street {
	streets := make([]domain.Street, count)
	for i := range streets {
		streets[i] = domain.Street{
			ID:       uuid.NewString(),
			Name:     g.streetName(),
			Type:     Choice(g.rng, streetUseTypes),
			LengthKM: Round2(FloatInRange(g.rng, 0.2, 2.5)),
		}
	}
	return streets
}

// streetName joins a locale-specific suffix pattern with one of six prefix
// sources: surname, first name, tree, generic prefix, direction, ordinal.
func (g *TownGenerator) streetName() string {
	patterns, ok := g.tables.StreetPatterns[g.locale]
	if !ok {
		// Fall back to any configured locale's patterns.
		for _, p := range g.tables.StreetPatterns {
			patterns = p
			break
		}
	}
	suffix := Choice(g.rng, patterns)

	nc := g.tables.NameComponents
	switch g.rng.Intn(6) {
	case 0:
		return g.faker.LastName() + " " + suffix
	case 1:
		return g.faker.FirstName() + " " + suffix
	case 2:
		return Choice(g.rng, nc.TreeNames) + " " + suffix
	case 3:
		return Choice(g.rng, nc.StreetPrefixes) + " " + suffix
	case 4:
		return Choice(g.rng, nc.DirectionalPrefixes) + " " + suffix
	default:
		return Choice(g.rng, nc.OrdinalPrefixes) + " " + suffix
	}
}

func (g *TownGenerator) businesses(count int, streets []domain.Street) []domain.Business {
	types := make([]string, len(g.tables.BusinessTypes))
	weights := make([]float64, len(g.tables.BusinessTypes))
	for i, bt := range g.tables.BusinessTypes {
		types[i] = bt.Type
		weights[i] = bt.Weight
	}

	businesses := make([]domain.Business, count)
	for i := range businesses {
		businessType, _ := WeightedChoice(g.rng, types, weights)
		businesses[i] = domain.Business{
			ID:              uuid.NewString(),
			Name:            g.businessName(businessType),
			Type:            businessType,
			Street:          Choice(g.rng, streets).Name,
			Employees:       IntInRange(g.rng, 1, 50),
			EstablishedYear: IntInRange(g.rng, 1950, 2023),
		}
	}
	return businesses
}

func (g *TownGenerator) businessName(businessType string) string {
	adjectives := g.tables.NameComponents.BusinessNameAdjectives
	nouns := g.tables.NameComponents.BusinessNameNouns

	switch businessType {
	case "Restaurant/Café":
		switch g.rng.Intn(4) {
		case 0:
			return g.faker.LastName() + "'s Restaurant"
		case 1:
			return "The " + g.pick(adjectives["descriptive"]) + " " + g.pick(nouns["restaurant"])
		case 2:
			return Choice(g.rng, []string{"Mama", "Papa", "Tony", "Mario", "Luigi"}) + "'s " +
				Choice(g.rng, []string{"Pizza", "Diner", "Bistro", "Café"})
		default:
			return truncate(g.faker.City(), 6) + " " + Choice(g.rng, []string{"Grill", "Diner", "Café", "Bistro"})
		}
	case "Retail Store":
		switch g.rng.Intn(3) {
		case 0:
			return g.faker.LastName() + "'s " + g.pick(nouns["retail"])
		case 1:
			return g.pick(adjectives["location_based"]) + " " + Choice(g.rng, []string{"Market", "Store", "Shop"})
		default:
			return "The " + g.pick(adjectives["size_based"]) + " " + Choice(g.rng, []string{"Shop", "Store", "Market"})
		}
	case "Gas Station":
		switch g.rng.Intn(3) {
		case 0:
			return g.pick(adjectives["speed_based"]) + " " + g.pick(nouns["gas"])
		case 1:
			return g.faker.LastName() + "'s " + Choice(g.rng, []string{"Gas", "Fuel", "Service"})
		default:
			return g.pick(adjectives["location_based"]) + " " + Choice(g.rng, []string{"Gas", "Fuel", "Station"})
		}
	default:
		base := businessType
		if idx := strings.Index(base, "/"); idx >= 0 {
			base = base[:idx]
		}
		switch g.rng.Intn(3) {
		case 0:
			return g.faker.LastName() + "'s " + base
		case 1:
			return truncate(g.faker.City(), 6) + " " + base
		default:
			return g.pick(adjectives["descriptive"]) + " " + base
		}
	}
}

func (g *TownGenerator) landmarks(count int, streets []domain.Street) []domain.Landmark {
	landmarks := make([]domain.Landmark, count)
	for i := range landmarks {
		landmarkType := Choice(g.rng, g.tables.LandmarkTypes)
		landmarks[i] = domain.Landmark{
			ID:                     uuid.NewString(),
			Name:                   g.landmarkName(landmarkType),
			Type:                   landmarkType,
			Street:                 Choice(g.rng, streets).Name,
			EstablishedYear:        IntInRange(g.rng, 1800, 2020),
			HistoricalSignificance: Choice(g.rng, g.tables.NameComponents.HistoricalSignificanceLevels),
		}
	}
	return landmarks
}

func (g *TownGenerator) landmarkName(landmarkType string) string {
	switch {
	case strings.Contains(landmarkType, "Church"):
		return "St. " + g.faker.FirstName() + "'s Church"
	case landmarkType == "Monument":
		return g.faker.LastName() + " " + Choice(g.rng, []string{"Monument", "Memorial"})
	case landmarkType == "Statue":
		return g.faker.Name() + " Statue"
	case landmarkType == "Historic Building":
		return "Old " + Choice(g.rng, []string{"Town Hall", "Opera House", "Bank Building", "Hotel", "Mill"})
	case landmarkType == "Museum":
		return truncate(g.faker.City(), 8) + " " + Choice(g.rng, []string{"History", "Art", "Natural History"}) + " Museum"
	default:
		return truncate(g.faker.City(), 8) + " " + landmarkType
	}
}

func (g *TownGenerator) parks(count int) []domain.Park {
	parks := make([]domain.Park, count)
	for i := range parks {
		parkType := Choice(g.rng, g.tables.ParkTypes)
		parks[i] = domain.Park{
			ID:           uuid.NewString(),
			Name:         g.parkName(parkType),
			Type:         parkType,
			AreaHectares: Round2(FloatInRange(g.rng, 0.5, 20.0)),
			Facilities:   Sample(g.rng, g.tables.NameComponents.FacilityTypes, IntInRange(g.rng, 1, 4)),
		}
	}
	return parks
}

func (g *TownGenerator) parkName(parkType string) string {
	nc := g.tables.NameComponents
	switch g.rng.Intn(4) {
	case 0:
		return g.faker.LastName() + " " + parkType
	case 1:
		return Choice(g.rng, nc.ParkPrefixes) + " " + parkType
	case 2:
		return Choice(g.rng, nc.TreeNames) + " " + parkType
	default:
		return "Memorial " + parkType
	}
}

func (g *TownGenerator) schools(count int, streets []domain.Street) []domain.School {
	schools := make([]domain.School, count)
	for i := range schools {
		schoolType := Choice(g.rng, g.tables.SchoolTypes)
		schools[i] = domain.School{
			ID:              uuid.NewString(),
			Name:            g.schoolName(schoolType),
			Type:            schoolType,
			Street:          Choice(g.rng, streets).Name,
			Students:        IntInRange(g.rng, 50, 1200),
			EstablishedYear: IntInRange(g.rng, 1900, 2020),
		}
	}
	return schools
}

func (g *TownGenerator) schoolName(schoolType string) string {
	switch {
	case strings.Contains(schoolType, "Elementary"):
		return g.faker.LastName() + " Elementary School"
	case strings.Contains(schoolType, "Middle"):
		return truncate(g.faker.City(), 8) + " Middle School"
	case strings.Contains(schoolType, "High"):
		return truncate(g.faker.City(), 8) + " High School"
	default:
		return g.faker.LastName() + " " + schoolType
	}
}

func (g *TownGenerator) services(count int, townName string, streets []domain.Street) []domain.Service {
	services := make([]domain.Service, count)
	for i := range services {
		serviceType := Choice(g.rng, g.tables.ServiceTypes)
		services[i] = domain.Service{
			ID:     uuid.NewString(),
			Name:   townName + " " + serviceType,
			Type:   serviceType,
			Street: Choice(g.rng, streets).Name,
			OperatingHours: fmt.Sprintf("%d:00 AM - %d:00 PM",
				IntInRange(g.rng, 6, 9), IntInRange(g.rng, 4, 8)),
			StaffCount: IntInRange(g.rng, 2, 25),
		}
	}
	return services
}

func (g *TownGenerator) pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return Choice(g.rng, list)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
