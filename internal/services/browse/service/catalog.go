// Package service contains the browse workflows: the filter catalog loader and
// the query state manager
package service

import (
	"context"
	"sync"

	"parliametrics/internal/core/normalize"
	"parliametrics/internal/platform/logger"
	"parliametrics/internal/services/browse/domain"
)

// Catalog loads the filter catalog and keeps the last good copy
type Catalog struct {
	archive domain.ArchivePort
	seeder  domain.DateSeeder
	log     logger.Logger

	mu     sync.RWMutex
	cur    domain.FilterCatalog
	loaded bool
}

// NewCatalog creates a catalog loader; seeder may be nil
func NewCatalog(archive domain.ArchivePort, seeder domain.DateSeeder) *Catalog {
	if archive == nil {
		panic("browse.Catalog requires a non nil ArchivePort")
	}
	return &Catalog{
		archive: archive,
		seeder:  seeder,
		log:     *logger.Named("browse.catalog"),
	}
}

// Load fetches the catalog, replaces the stored copy and seeds unset date
// bounds. On failure the stored copy and the selection are untouched
func (c *Catalog) Load(ctx context.Context) (domain.FilterCatalog, error) {
	cat, err := c.archive.Filters(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("filter catalog load failed")
		return domain.FilterCatalog{}, err
	}

	c.mu.Lock()
	c.cur = cat.Clone()
	c.loaded = true
	c.mu.Unlock()

	first, okFirst := cat.FirstDate()
	last, okLast := cat.LastDate()
	if c.seeder != nil && okFirst && okLast {
		c.seeder.SeedDates(first, last)
	}

	c.log.Debug().
		Int("speakers", len(cat.Speakers)).
		Int("parties", len(cat.Parties)).
		Int("dates", len(cat.Dates)).
		Msg("filter catalog loaded")
	return cat, nil
}

// Current returns a copy of the stored catalog and whether one was loaded
func (c *Catalog) Current() (domain.FilterCatalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return domain.FilterCatalog{}, false
	}
	return c.cur.Clone(), true
}

// SearchSpeakers returns the speakers whose name or middle name matches term,
// ignoring case and diacritics, in catalog order
func (c *Catalog) SearchSpeakers(term string) []domain.SpeakerOption {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := normalize.Fold(term)
	var out []domain.SpeakerOption
	for _, s := range c.cur.Speakers {
		if key == "" || containsFolded(s.DisplayName(), key) {
			out = append(out, s)
		}
	}
	return out
}

// SearchParties matches term against party name and abbreviation
func (c *Catalog) SearchParties(term string) []domain.PartyOption {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := normalize.Fold(term)
	var out []domain.PartyOption
	for _, p := range c.cur.Parties {
		if key == "" || containsFolded(p.Name, key) || containsFolded(p.Abbr, key) {
			out = append(out, p)
		}
	}
	return out
}

func containsFolded(s, key string) bool {
	return key != "" && normalize.Contains(s, key)
}
