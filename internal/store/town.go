// Package store persists the generated dataset as flat files: town.json,
// people.csv, and articles.csv. The files are the interface to the web
// front end, so field names and formats stay stable.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// SaveTown writes the town as indented JSON, creating parent directories as
// needed.
func SaveTown(path string, town *domain.Town) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(town, "", "  ")
	if err != nil {
		return fmt.Errorf("encode town: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write town file: %w", err)
	}
	return nil
}

// LoadTown reads a town.json file.
func LoadTown(path string) (*domain.Town, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read town file: %w", err)
	}
	var town domain.Town
	if err := json.Unmarshal(data, &town); err != nil {
		return nil, fmt.Errorf("decode town file: %w", err)
	}
	return &town, nil
}
