package storage

import (
	"context"
	"fmt"
	"os"
)

// fileSource reads the fixture document from local disk, the option used
// in development and in tests.
type fileSource struct {
	path string
}

func NewFileSource(path string) FixtureSource {
	return &fileSource{path: path}
}

func (s *fileSource) Load(_ context.Context) ([]FixtureMatch, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", s.path, err)
	}
	return decodeFixtures(data)
}
