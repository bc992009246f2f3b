package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

func TestSaveAndLoadTown(t *testing.T) {
	town := &domain.Town{
		ID:           "t1",
		Name:         "Mackney",
		Country:      "United Kingdom",
		Locale:       "en_GB",
		SizeCategory: "medium",
		Population:   8200,
		AreaSqKM:     27.33,
		FoundedYear:  1742,
		ElevationM:   86,
		Climate:      "Oceanic",
		Streets: []domain.Street{
			{ID: "s1", Name: "Oak Lane", Type: "Residential", LengthKM: 1.2},
		},
		Businesses: []domain.Business{
			{ID: "b1", Name: "The Golden Spoon", Type: "Restaurant/Café", Street: "Oak Lane", Employees: 6, EstablishedYear: 1998},
		},
		Newspaper: &domain.Newspaper{
			Name: "The Mackney Gazette", Tagline: "All the news that fits",
			FoundedYear: 1887, PublicationFrequency: "Daily",
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "data", "town.json")
	require.NoError(t, SaveTown(path, town))

	got, err := LoadTown(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(town, got))
}

func TestLoadTownErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTown(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}
