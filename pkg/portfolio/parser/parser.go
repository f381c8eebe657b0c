package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"helmline-hq/meridian/pkg/portfolio"
)

// Parser parses scenario YAML documents into portfolio.Scenario values.
type Parser struct {
	maxFileSize int64
	knownFields bool
}

// NewParser creates a parser with default configuration: 10MB file size
// limit, unknown YAML fields rejected.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024,
		knownFields: true,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithKnownFields controls whether unknown YAML fields are rejected.
func (p *Parser) WithKnownFields(strict bool) *Parser {
	p.knownFields = strict
	return p
}

// Parse parses the scenario file at the given path.
func (p *Parser) Parse(path string) (*portfolio.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing scenario file: %w", err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("scenario file %s is %d bytes, exceeding the %d byte limit",
			path, info.Size(), p.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses a scenario document from memory. The source label
// appears in error messages.
func (p *Parser) ParseBytes(data []byte, source string) (*portfolio.Scenario, error) {
	var scenario portfolio.Scenario

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(p.knownFields)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("%s: YAML parsing failed: %w", source, err)
	}

	errs := NewErrorList()
	checkScenario(&scenario, source, errs)
	if errs.HasErrors() {
		return nil, errs
	}

	return &scenario, nil
}

// ParseDir parses every .yaml and .yml file directly under dir, sorted
// by file name. Subdirectories are not descended into.
func (p *Parser) ParseDir(dir string) ([]*portfolio.Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*portfolio.Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := p.Parse(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// ParseReader parses one scenario document from a reader.
func (p *Parser) ParseReader(r io.Reader, source string) (*portfolio.Scenario, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading scenario document: %w", err)
	}
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("scenario document %s exceeds the %d byte limit", source, p.maxFileSize)
	}
	return p.ParseBytes(data, source)
}

// checkScenario validates structural invariants, accumulating every
// breach rather than stopping at the first.
func checkScenario(s *portfolio.Scenario, source string, errs *ErrorList) {
	if s.ID == "" {
		errs.Add(source, "id", "scenario id cannot be empty")
	}
	if s.Horizon < 1 {
		errs.Add(source, "horizon", "horizon must be >= 1, got %d", s.Horizon)
	}

	seenTeams := make(map[string]bool, len(s.Teams))
	for i := range s.Teams {
		team := &s.Teams[i]
		field := fmt.Sprintf("teams[%d]", i)
		if team.ID == "" {
			errs.Add(source, field+".id", "team id cannot be empty")
		} else if seenTeams[team.ID] {
			errs.Add(source, field+".id", "duplicate team id %q", team.ID)
		}
		seenTeams[team.ID] = true
		for p, c := range team.Capacity {
			if c < 0 {
				errs.Add(source, fmt.Sprintf("%s.capacity[%d]", field, p),
					"capacity cannot be negative, got %d", c)
			}
		}
	}

	seenItems := make(map[string]bool, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		field := fmt.Sprintf("items[%d]", i)
		if item.ID == "" {
			errs.Add(source, field+".id", "item id cannot be empty")
		} else if seenItems[item.ID] {
			errs.Add(source, field+".id", "duplicate item id %q", item.ID)
		}
		seenItems[item.ID] = true
		if item.StartPeriod < 0 {
			errs.Add(source, field+".start_period", "start period cannot be negative, got %d", item.StartPeriod)
		}
		if item.Duration < 1 {
			errs.Add(source, field+".duration", "duration must be >= 1, got %d", item.Duration)
		}
		for a, alloc := range item.Allocations {
			allocField := fmt.Sprintf("%s.allocations[%d]", field, a)
			if alloc.TeamID == "" {
				errs.Add(source, allocField+".team_id", "allocation team id cannot be empty")
			}
			if alloc.Tokens < 0 {
				errs.Add(source, allocField+".tokens", "tokens cannot be negative, got %d", alloc.Tokens)
			}
			if alloc.Period < 0 {
				errs.Add(source, allocField+".period", "period cannot be negative, got %d", alloc.Period)
			} else if s.Horizon >= 1 && alloc.Period >= s.Horizon {
				// Skip the upper bound when the horizon itself is invalid.
				errs.Add(source, allocField+".period", "period %d is outside the horizon of %d", alloc.Period, s.Horizon)
			}
		}
	}

	if s.Budget != nil {
		if s.Budget.TotalTokens < 0 {
			errs.Add(source, "budget.total_tokens", "budget cannot be negative, got %d", s.Budget.TotalTokens)
		}
		if s.Budget.PerItemTokens < 0 {
			errs.Add(source, "budget.per_item_tokens", "budget cannot be negative, got %d", s.Budget.PerItemTokens)
		}
		if s.Budget.WarnThreshold < 0 || s.Budget.WarnThreshold > 1 {
			errs.Add(source, "budget.warn_threshold", "warn threshold must be within [0, 1], got %g", s.Budget.WarnThreshold)
		}
	}
}
