package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/infra/restcountries"
)

var ErrCountryNotFound = errors.New("country not found")

// CountrySource delivers raw country records.
type CountrySource interface {
	FetchCountries(ctx context.Context) ([]restcountries.Record, error)
}

// CountryRepository holds the normalized country list. A successful Load
// replaces the whole list at once; a failed one keeps the previous list.
type CountryRepository struct {
	source CountrySource

	mu        sync.RWMutex
	countries []entities.Country
}

// NewCountryRepository creates an empty repository backed by source.
func NewCountryRepository(source CountrySource) *CountryRepository {
	return &CountryRepository{source: source}
}

// Load fetches and normalizes countries and returns how many were kept.
func (r *CountryRepository) Load(ctx context.Context) (int, error) {
	records, err := r.source.FetchCountries(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch countries: %w", err)
	}

	countries := NormalizeCountries(records)

	r.mu.Lock()
	r.countries = countries
	r.mu.Unlock()

	return len(countries), nil
}

// All returns a copy of the current country list.
func (r *CountryRepository) All() []entities.Country {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.countries)
}

// Count returns the number of loaded countries.
func (r *CountryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.countries)
}

// ByName returns the country with the exact given name.
func (r *CountryRepository) ByName(name string) (entities.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.countries {
		if c.Name == name {
			return c, nil
		}
	}

	return entities.Country{}, ErrCountryNotFound
}

// NormalizeCountries converts raw records into countries. Records without a
// name or with a non-positive population are dropped, and later duplicates of
// a name are ignored.
func NormalizeCountries(records []restcountries.Record) []entities.Country {
	out := make([]entities.Country, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		c, ok := normalizeCountry(rec)
		if !ok {
			continue
		}
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, c)
	}

	return out
}

func normalizeCountry(rec restcountries.Record) (entities.Country, bool) {
	name := strings.TrimSpace(rec.Name.Common)
	if name == "" {
		return entities.Country{}, false
	}

	var population int64
	if rec.Population != nil {
		population = int64(*rec.Population)
	}
	if population <= 0 {
		return entities.Country{}, false
	}

	c := entities.Country{
		Name:       name,
		Code:       strings.TrimSpace(rec.CCA2),
		Population: population,
		Currencies: nonNil(rec.Currencies),
		Languages:  nonNil(rec.Languages),
		Capital:    "N/A",
		Region:     strings.TrimSpace(rec.Region),
		Timezones:  nonNil(rec.Timezones),
		Flag:       rec.Flags.PNG,
		FlagAlt:    rec.Flags.Alt,
	}

	if len(rec.Capital) > 0 {
		c.Capital = rec.Capital[0]
	}
	if rec.Area != nil && *rec.Area > 0 {
		c.Area = *rec.Area
	}
	if c.Region == "" {
		c.Region = "Unknown"
	}
	if c.Flag == "" {
		c.Flag = rec.Flags.SVG
	}
	if c.FlagAlt == "" {
		c.FlagAlt = "Flag of " + name
	}

	return c, true
}

func nonNil(list restcountries.StringList) []string {
	if len(list) == 0 {
		return []string{}
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
