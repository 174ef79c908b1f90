// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown quiz category")

// Category is one of the question domains a quiz can be played in.
type Category string

const (
	CategoryPopulation Category = "population"
	CategoryCurrency   Category = "currency"
	CategoryLanguages  Category = "languages"
)

// Categories lists every supported category in display order.
var Categories = []Category{CategoryPopulation, CategoryCurrency, CategoryLanguages}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryPopulation, CategoryCurrency, CategoryLanguages:
		return c, nil
	default:
		return "", ErrUnknownCategory
	}
}

// Country is the canonical country record. Name is the natural key.
type Country struct {
	Name       string   `json:"name"`           // unique display name
	Code       string   `json:"code,omitempty"` // ISO alpha-2 code, empty when unknown
	Population int64    `json:"population"`     // 0 means no data
	Currencies []string `json:"currencies"`     // ordered as in the source, first is primary
	Languages  []string `json:"languages"`      // ordered as in the source, first is primary
	Capital    string   `json:"capital"`        // first capital or "N/A"
	Area       float64  `json:"area"`           // square kilometres
	Region     string   `json:"region"`         // "Unknown" when absent
	Timezones  []string `json:"timezones"`      // never nil
	Flag       string   `json:"flag,omitempty"` // PNG url, SVG when PNG is absent
	FlagAlt    string   `json:"flagAlt"`        // alt text for the flag image
}

// HasDataForCategory reports whether the country can be the subject of a question
// in the given category.
func (c Country) HasDataForCategory(category Category) bool {
	switch category {
	case CategoryPopulation:
		return c.Population > 0
	case CategoryCurrency:
		return hasPrimary(c.Currencies)
	case CategoryLanguages:
		return hasPrimary(c.Languages)
	default:
		return false
	}
}

// PrimaryCurrency returns the first listed currency or an empty string.
func (c Country) PrimaryCurrency() string {
	if len(c.Currencies) == 0 {
		return ""
	}
	return c.Currencies[0]
}

// PrimaryLanguage returns the first listed language or an empty string.
func (c Country) PrimaryLanguage() string {
	if len(c.Languages) == 0 {
		return ""
	}
	return c.Languages[0]
}

func hasPrimary(values []string) bool {
	return len(values) > 0 && strings.TrimSpace(values[0]) != ""
}
