package source

import (
	"context"
	"fmt"
	"os"

	"helmline-hq/meridian/pkg/portfolio"
	"helmline-hq/meridian/pkg/portfolio/parser"
)

// FileSource loads scenarios from a YAML file or from every YAML file
// directly under a directory. Each Load re-reads from disk, so a
// watcher-driven reload always observes the latest content.
type FileSource struct {
	path   string
	parser *parser.Parser
}

// NewFileSource creates a file source for the given file or directory.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario path cannot be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("accessing scenario path: %w", err)
	}
	return &FileSource{
		path:   path,
		parser: parser.NewParser(),
	}, nil
}

// Load reads and parses the scenarios from disk.
func (s *FileSource) Load(_ context.Context) ([]*portfolio.Scenario, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("accessing scenario path: %w", err)
	}

	if info.IsDir() {
		return s.parser.ParseDir(s.path)
	}

	scenario, err := s.parser.Parse(s.path)
	if err != nil {
		return nil, err
	}
	return []*portfolio.Scenario{scenario}, nil
}

// Describe identifies the source for logs.
func (s *FileSource) Describe() string {
	return "file " + s.path
}

// Path returns the watched file or directory, for wiring a Watcher.
func (s *FileSource) Path() string {
	return s.path
}
