// Command inittown generates the town and its population from the YAML
// tables and writes them to DATA_DIR as town.json and people.csv. It is a
// one-shot setup step; run it before starting cmd/newsroom.
//
// Generation is seeded: the same tables and seed reproduce the same town
// and population, except for record IDs.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/domain"
	"github.com/couchcryptid/gazette-newsroom/internal/gen"
	"github.com/couchcryptid/gazette-newsroom/internal/observability"
	"github.com/couchcryptid/gazette-newsroom/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	initCfg, err := config.LoadTownInit(cfg.TownInitPath)
	if err != nil {
		logger.Error("failed to load town init config", "error", err)
		os.Exit(1)
	}
	tables, err := config.LoadTownTables(cfg.TownTablesPath)
	if err != nil {
		logger.Error("failed to load town tables", "error", err)
		os.Exit(1)
	}

	rng := gen.NewSeededRand(initCfg.Town.Seed)
	faker := gofakeit.New(uint64(initCfg.Town.Seed))

	townGen := gen.NewTownGenerator(rng, faker, tables, initCfg.Town.Locale)
	town, err := townGen.Generate(initCfg.Town.Name, initCfg.Town.Size)
	if err != nil {
		logger.Error("failed to generate town", "error", err)
		os.Exit(1)
	}
	town.Newspaper = initCfg.Newspaper

	logger.Info("town generated",
		"town", town.Name,
		"country", town.Country,
		"size", town.SizeCategory,
		"population", town.Population,
		"founded", town.FoundedYear,
		"streets", len(town.Streets),
		"businesses", len(town.Businesses),
		"landmarks", len(town.Landmarks),
		"parks", len(town.Parks),
		"schools", len(town.Schools),
		"services", len(town.Services),
	)
	logNotableEstablishments(logger, town)

	// The generated population is a sampled subset of the town's headline
	// population figure, floored so small towns still get a usable cast.
	count := int(float64(town.Population) * initCfg.Population.ScaleFactor)
	if count < initCfg.Population.MinPeople {
		count = initCfg.Population.MinPeople
	}

	peopleGen := gen.NewPeopleGenerator(rng, faker, town.Locale, town.Country)
	people, err := peopleGen.Population(count)
	if err != nil {
		logger.Error("failed to generate population", "error", err)
		os.Exit(1)
	}
	logPopulationSummary(logger, people)

	townPath := filepath.Join(cfg.DataDir, "town.json")
	if err := store.SaveTown(townPath, town); err != nil {
		logger.Error("failed to save town", "error", err)
		os.Exit(1)
	}
	peoplePath := filepath.Join(cfg.DataDir, "people.csv")
	if err := store.SavePeople(peoplePath, people); err != nil {
		logger.Error("failed to save population", "error", err)
		os.Exit(1)
	}

	logger.Info("town initialized", "town_file", townPath, "people_file", peoplePath)
}

func logNotableEstablishments(logger *slog.Logger, town *domain.Town) {
	if len(town.Businesses) > 0 {
		oldest := town.Businesses[0]
		for _, b := range town.Businesses[1:] {
			if b.EstablishedYear < oldest.EstablishedYear {
				oldest = b
			}
		}
		logger.Info("oldest business",
			"name", oldest.Name, "type", oldest.Type, "established", oldest.EstablishedYear)
	}
	for _, l := range town.Landmarks {
		if l.HistoricalSignificance == "High" {
			logger.Info("notable landmark", "name", l.Name, "type", l.Type, "established", l.EstablishedYear)
		}
	}
}

func logPopulationSummary(logger *slog.Logger, people []domain.Person) {
	var ageSum, incomeSum, employed int
	for i := range people {
		ageSum += people[i].Age
		incomeSum += people[i].AnnualIncome
		if people[i].Occupation != "" {
			employed++
		}
	}
	n := len(people)
	logger.Info("population generated",
		"people", n,
		"avg_age", ageSum/n,
		"avg_income", incomeSum/n,
		"employed", employed,
	)
}
