package gen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// Age and income boundaries for the demographic model.
const (
	minAge          = 18
	maxAge          = 99
	workingAgeStart = 25
	workingAgeEnd   = 65
	retirementAge   = 65

	unemployedMaxIncome = 15000
	retiredMinIncome    = 20000
	retiredMaxIncome    = 60000
	partTimeMinIncome   = 15000
	partTimeMaxIncome   = 40000

	peakEarningAgeStart = 30
	peakEarningAgeEnd   = 55

	peakEarningMultiplier    = 1.2
	normalEarningMultiplier  = 1.0
	reducedEarningMultiplier = 0.8
)

// educationLevels in ascending order of attainment. Index order matters:
// the age-conditioned weight tables below are positional.
var educationLevels = []string{
	"Less than high school",
	"High school diploma/GED",
	"Some college, no degree",
	"Associate degree",
	"Bachelor's degree",
	"Master's degree",
	"Professional degree",
	"Doctoral degree",
}

var employmentStatuses = []string{
	"Employed full-time",
	"Employed part-time",
	"Unemployed",
	"Retired",
	"Student",
	"Homemaker",
	"Disabled",
	"Self-employed",
}

var maritalStatuses = []string{
	"Single",
	"Married",
	"Divorced",
	"Widowed",
	"Separated",
	"Domestic partnership",
}

// baseIncomeByEducation maps attainment to a base annual income before the
// age multiplier and random spread are applied.
var baseIncomeByEducation = map[string]int{
	"Less than high school":   25000,
	"High school diploma/GED": 35000,
	"Some college, no degree": 40000,
	"Associate degree":        45000,
	"Bachelor's degree":       60000,
	"Master's degree":         75000,
	"Professional degree":     100000,
	"Doctoral degree":         90000,
}

// temperaments is the fixed catalog of personality profiles.
var temperaments = []domain.Temperament{
	{Type: "Optimistic", Description: "Generally positive outlook, sees the good in situations", Traits: []string{"positive", "hopeful", "cheerful"}},
	{Type: "Pessimistic", Description: "Tends to focus on negative aspects, expects the worst", Traits: []string{"negative", "doubtful", "cynical"}},
	{Type: "Calm", Description: "Even-tempered, rarely shows strong emotions", Traits: []string{"peaceful", "composed", "steady"}},
	{Type: "Anxious", Description: "Prone to worry and nervousness", Traits: []string{"worried", "nervous", "apprehensive"}},
	{Type: "Outgoing", Description: "Social, enjoys being around people", Traits: []string{"social", "extroverted", "friendly"}},
	{Type: "Reserved", Description: "Quiet, prefers solitude or small groups", Traits: []string{"introverted", "quiet", "private"}},
	{Type: "Aggressive", Description: "Quick to anger, confrontational", Traits: []string{"assertive", "forceful", "competitive"}},
	{Type: "Patient", Description: "Tolerant, slow to anger", Traits: []string{"tolerant", "understanding", "gentle"}},
	{Type: "Ambitious", Description: "Driven, goal-oriented", Traits: []string{"motivated", "determined", "focused"}},
	{Type: "Laid-back", Description: "Relaxed, goes with the flow", Traits: []string{"relaxed", "easygoing", "flexible"}},
	{Type: "Analytical", Description: "Logical, thinks things through carefully", Traits: []string{"logical", "methodical", "rational"}},
	{Type: "Impulsive", Description: "Acts on instinct, makes quick decisions", Traits: []string{"spontaneous", "instinctive", "reactive"}},
}

// PeopleGenerator produces residents with correlated demographic attributes.
type PeopleGenerator struct {
	rng     *rand.Rand
	faker   *gofakeit.Faker
	locale  string
	country string
}

// NewPeopleGenerator creates a generator that draws all randomness from rng
// and all names, addresses, and occupations from faker.
func NewPeopleGenerator(rng *rand.Rand, faker *gofakeit.Faker, locale, country string) *PeopleGenerator {
	return &PeopleGenerator{rng: rng, faker: faker, locale: locale, country: country}
}

// Person generates a single resident.
func (g *PeopleGenerator) Person() domain.Person {
	gender := Choice(g.rng, []string{"Male", "Female"})
	firstName := g.faker.FirstName()
	lastName := g.faker.LastName()

	age := g.weightedAge()
	birthYear := domain.TimeNow().Year() - age

	education := g.weightedEducation(age)
	employment := g.weightedEmployment(age)

	occupation := ""
	if strings.Contains(employment, "Employed") {
		occupation = g.faker.JobTitle()
	}

	income := g.income(education, employment, age)
	household := g.householdSize(age)
	marital := g.weightedMarital(age)
	temperament := g.temperament(age, education, employment)

	return domain.Person{
		ID:               uuid.NewString()[:8],
		FirstName:        firstName,
		LastName:         lastName,
		Age:              age,
		Gender:           gender,
		BirthYear:        birthYear,
		MaritalStatus:    marital,
		EducationLevel:   education,
		EmploymentStatus: employment,
		Occupation:       occupation,
		AnnualIncome:     income,
		HouseholdSize:    household,
		Location:         g.faker.City(),
		FullAddress:      g.fullAddress(),
		PhoneNumber:      g.faker.Phone(),
		Email:            g.faker.Email(),
		Temperament:      temperament,
		Country:          g.country,
		Locale:           g.locale,
	}
}

// Population generates n residents.
func (g *PeopleGenerator) Population(n int) ([]domain.Person, error) {
	if n <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", n)
	}
	people := make([]domain.Person, n)
	for i := range people {
		people[i] = g.Person()
	}
	return people, nil
}

func (g *PeopleGenerator) fullAddress() string {
	addr := g.faker.Address()
	return fmt.Sprintf("%s, %s, %s %s", addr.Street, addr.City, addr.State, addr.Zip)
}

// weightedAge skews toward the working-age band: 25-65 at weight 3, the
// bands just outside it at 2, the very young and very old at 1.
func (g *PeopleGenerator) weightedAge() int {
	ages := make([]int, 0, maxAge-minAge+1)
	weights := make([]float64, 0, maxAge-minAge+1)
	for age := minAge; age <= maxAge; age++ {
		ages = append(ages, age)
		switch {
		case age >= workingAgeStart && age <= workingAgeEnd:
			weights = append(weights, 3)
		case age <= 24 || (age >= 66 && age <= 75):
			weights = append(weights, 2)
		default:
			weights = append(weights, 1)
		}
	}
	age, _ := WeightedChoice(g.rng, ages, weights)
	return age
}

func (g *PeopleGenerator) weightedEducation(age int) string {
	switch {
	case age < 25:
		// Advanced degrees are rare this young; cap at bachelor's.
		level, _ := WeightedChoice(g.rng, educationLevels[:5], []float64{15, 30, 25, 15, 15})
		return level
	case age < 40:
		level, _ := WeightedChoice(g.rng, educationLevels, []float64{5, 20, 15, 15, 25, 15, 3, 2})
		return level
	default:
		level, _ := WeightedChoice(g.rng, educationLevels, []float64{10, 25, 20, 15, 20, 8, 1, 1})
		return level
	}
}

func (g *PeopleGenerator) weightedEmployment(age int) string {
	switch {
	case age < workingAgeStart:
		status, _ := WeightedChoice(g.rng, employmentStatuses, []float64{40, 30, 15, 0, 10, 3, 1, 1})
		return status
	case age < retirementAge:
		status, _ := WeightedChoice(g.rng, employmentStatuses, []float64{60, 15, 8, 2, 2, 5, 3, 5})
		return status
	default:
		status, _ := WeightedChoice(g.rng, employmentStatuses, []float64{10, 10, 2, 70, 0, 3, 3, 2})
		return status
	}
}

func (g *PeopleGenerator) weightedMarital(age int) string {
	var weights []float64
	switch {
	case age < 25:
		weights = []float64{70, 25, 2, 1, 1, 1}
	case age < 40:
		weights = []float64{35, 50, 8, 2, 3, 2}
	case age < 65:
		weights = []float64{20, 60, 12, 3, 3, 2}
	default:
		weights = []float64{15, 50, 10, 20, 3, 2}
	}
	status, _ := WeightedChoice(g.rng, maritalStatuses, weights)
	return status
}

// income derives annual income from employment special cases, then from an
// education base scaled by the age multiplier and a uniform spread.
func (g *PeopleGenerator) income(education, employment string, age int) int {
	switch {
	case strings.Contains(employment, "Unemployed") || strings.Contains(employment, "Student"):
		return IntInRange(g.rng, 0, unemployedMaxIncome)
	case strings.Contains(employment, "Retired"):
		return IntInRange(g.rng, retiredMinIncome, retiredMaxIncome)
	case strings.Contains(employment, "part-time"):
		return IntInRange(g.rng, partTimeMinIncome, partTimeMaxIncome)
	}

	base, ok := baseIncomeByEducation[education]
	if !ok {
		base = 35000
	}

	multiplier := reducedEarningMultiplier
	switch {
	case age >= peakEarningAgeStart && age <= peakEarningAgeEnd:
		multiplier = peakEarningMultiplier
	case age >= workingAgeStart && age <= workingAgeEnd:
		multiplier = normalEarningMultiplier
	}

	income := int(float64(base) * multiplier * FloatInRange(g.rng, 0.7, 1.5))
	if income < 0 {
		return 0
	}
	return income
}

func (g *PeopleGenerator) householdSize(age int) int {
	switch {
	case age < 30:
		size, _ := WeightedChoice(g.rng, []int{1, 2, 3, 4}, []float64{40, 35, 20, 5})
		return size
	case age < 50:
		size, _ := WeightedChoice(g.rng, []int{1, 2, 3, 4, 5}, []float64{20, 30, 30, 15, 5})
		return size
	default:
		size, _ := WeightedChoice(g.rng, []int{1, 2, 3}, []float64{30, 50, 20})
		return size
	}
}

// temperament selects a personality profile using rule-adjusted weights.
func (g *PeopleGenerator) temperament(age int, education, employment string) domain.Temperament {
	weights := make([]float64, len(temperaments))
	for i, temp := range temperaments {
		weights[i] = temperamentWeight(temp.Type, age, education, employment)
	}
	selected, _ := WeightedChoice(g.rng, temperaments, weights)
	return selected
}

// temperamentWeight computes the selection weight for one temperament type:
// base 1.0 adjusted by the age, education, and employment rules, floored at
// 0.1 so no type is ever impossible.
func temperamentWeight(temperamentType string, age int, education, employment string) float64 {
	weight := 1.0
	weight += ageAdjustment(temperamentType, age)
	weight += educationAdjustment(temperamentType, education)
	weight += employmentAdjustment(temperamentType, employment)
	if weight < 0.1 {
		return 0.1
	}
	return weight
}

func ageAdjustment(temperamentType string, age int) float64 {
	switch temperamentType {
	case "Anxious":
		if age < 30 {
			return 0.5
		}
		if age > 60 {
			return -0.2
		}
	case "Calm":
		if age > 50 {
			return 0.3
		}
		if age < 25 {
			return -0.1
		}
	case "Outgoing":
		if age >= 25 && age <= 45 {
			return 0.3
		}
		if age > 65 {
			return -0.2
		}
	case "Patient":
		if age > 40 {
			return 0.4
		}
		if age < 25 {
			return -0.2
		}
	case "Impulsive":
		if age < 30 {
			return 0.4
		}
		if age > 50 {
			return -0.3
		}
	case "Ambitious":
		if age >= 25 && age <= 45 {
			return 0.4
		}
		if age > 60 {
			return -0.2
		}
	}
	return 0
}

func educationAdjustment(temperamentType, education string) float64 {
	var adj float64
	switch temperamentType {
	case "Analytical":
		if strings.Contains(strings.ToLower(education), "degree") {
			adj += 0.3
		}
		for _, level := range []string{"Master's", "Doctoral", "Professional"} {
			if strings.Contains(education, level) {
				adj += 0.2
				break
			}
		}
	case "Optimistic":
		for _, level := range []string{"Bachelor's", "Master's"} {
			if strings.Contains(education, level) {
				adj += 0.2
				break
			}
		}
	}
	return adj
}

func employmentAdjustment(temperamentType, employment string) float64 {
	switch temperamentType {
	case "Anxious":
		if strings.Contains(employment, "Unemployed") {
			return 0.5
		}
		if strings.Contains(employment, "Student") {
			return 0.2
		}
	case "Laid-back":
		if strings.Contains(employment, "Retired") {
			return 0.4
		}
	case "Pessimistic":
		if strings.Contains(employment, "Unemployed") || strings.Contains(employment, "Disabled") {
			return 0.3
		}
	}
	return 0
}
