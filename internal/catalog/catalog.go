// Package catalog holds the static reference tables the dashboard renders:
// incidents, defense log, traffic actors, sentiment items and success stories.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/aishield/shield-backend/model"
	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the full set of read-only display tables
type Catalog struct {
	Incidents      []model.Incident          `yaml:"incidents"`
	DefenseLog     []model.DefenseIncident   `yaml:"defense_log"`
	TrafficActors  []model.TrafficActor      `yaml:"traffic_actors"`
	BudgetMatrix   []model.BudgetMatrixPoint `yaml:"budget_matrix"`
	SentimentFeed  []model.SentimentItem     `yaml:"sentiment_feed"`
	SuccessStories []model.SuccessStory      `yaml:"success_stories"`
	Platforms      []model.PlatformSpend     `yaml:"platforms"`
	WorldRegions   []model.WorldRegion       `yaml:"world_regions"`
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog override from disk, falling back to the embedded one when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Incidents) == 0 {
		return fmt.Errorf("invalid catalog: incident feed is empty")
	}
	tables := []struct {
		name string
		keys []string
	}{
		{"incident", keys(c.Incidents, func(r model.Incident) string { return r.ID })},
		{"defense incident", keys(c.DefenseLog, func(r model.DefenseIncident) string { return r.ID })},
		{"traffic actor", keys(c.TrafficActors, func(r model.TrafficActor) string { return r.ID })},
		{"budget matrix point", keys(c.BudgetMatrix, func(r model.BudgetMatrixPoint) string { return r.ID })},
		{"sentiment item", keys(c.SentimentFeed, func(r model.SentimentItem) string { return r.ID })},
		{"success story", keys(c.SuccessStories, func(r model.SuccessStory) string { return r.ID })},
		{"platform", keys(c.Platforms, func(r model.PlatformSpend) string { return r.Name })},
		{"world region", keys(c.WorldRegions, func(r model.WorldRegion) string { return r.Name })},
	}
	for _, tbl := range tables {
		seen := make(map[string]bool, len(tbl.keys))
		for _, k := range tbl.keys {
			if k == "" {
				return fmt.Errorf("invalid catalog: %s without id", tbl.name)
			}
			if seen[k] {
				return fmt.Errorf("invalid catalog: duplicate %s id %q", tbl.name, k)
			}
			seen[k] = true
		}
	}
	for _, d := range c.DefenseLog {
		if d.ThreatScore < 0 || d.ThreatScore > 100 {
			return fmt.Errorf("invalid catalog: defense incident %s threat score %d outside [0,100]", d.ID, d.ThreatScore)
		}
	}
	return nil
}

func keys[T any](rows []T, key func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = key(r)
	}
	return out
}

// Table returns a named table for the generic catalog endpoint
func (c *Catalog) Table(name string) (any, bool) {
	switch name {
	case "incidents":
		return c.Incidents, true
	case "defense-log":
		return c.DefenseLog, true
	case "traffic-actors":
		return c.TrafficActors, true
	case "budget-matrix":
		return c.BudgetMatrix, true
	case "sentiment":
		return c.SentimentFeed, true
	case "success-stories":
		return c.SuccessStories, true
	case "platforms":
		return c.Platforms, true
	case "world-regions":
		return c.WorldRegions, true
	}
	return nil, false
}

// TrustSummary lists the success stories in the compact form the trust narrative expects
func (c *Catalog) TrustSummary() string {
	out := ""
	for i, s := range c.SuccessStories {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%s)", s.BrandName, s.CriticalMetric)
	}
	return out
}
