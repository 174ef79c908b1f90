package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/countries-quiz-bot/internal/infra/restcountries"
)

type fakeSource struct {
	records []restcountries.Record
	err     error
}

func (s *fakeSource) FetchCountries(_ context.Context) ([]restcountries.Record, error) {
	return s.records, s.err
}

func pop(v float64) *float64 { return &v }

func record(name string, population *float64) restcountries.Record {
	return restcountries.Record{Name: restcountries.Name{Common: name}, Population: population}
}

func TestNormalizeCountries(t *testing.T) {
	t.Run("drops unnamed and unpopulated records", func(t *testing.T) {
		records := []restcountries.Record{
			record("", pop(1000)),
			record("   ", pop(1000)),
			record("Nowhere", nil),
			record("Antarctica", pop(0)),
			record("Negativia", pop(-5)),
			record("France", pop(67000000)),
		}

		got := NormalizeCountries(records)
		require.Len(t, got, 1)
		assert.Equal(t, "France", got[0].Name)
		assert.Equal(t, int64(67000000), got[0].Population)
	})

	t.Run("first record wins on duplicate names", func(t *testing.T) {
		first := record("Chad", pop(100))
		first.Region = "Africa"
		second := record("Chad", pop(200))

		got := NormalizeCountries([]restcountries.Record{first, second})
		require.Len(t, got, 1)
		assert.Equal(t, int64(100), got[0].Population)
		assert.Equal(t, "Africa", got[0].Region)
	})

	t.Run("collections are never nil and keep source order", func(t *testing.T) {
		rec := record("Belgium", pop(11500000))
		rec.Languages = restcountries.StringList{"Dutch", "French", "German"}

		got := NormalizeCountries([]restcountries.Record{rec, record("Empty", pop(1))})
		require.Len(t, got, 2)

		assert.Equal(t, []string{"Dutch", "French", "German"}, got[0].Languages)
		assert.NotNil(t, got[1].Languages)
		assert.NotNil(t, got[1].Currencies)
		assert.NotNil(t, got[1].Timezones)
		assert.Empty(t, got[1].Currencies)
	})

	t.Run("descriptive defaults", func(t *testing.T) {
		rec := record("Plainland", pop(5))
		rec.Flags = restcountries.Flags{SVG: "https://example.test/p.svg"}

		got := NormalizeCountries([]restcountries.Record{rec})
		require.Len(t, got, 1)

		c := got[0]
		assert.Equal(t, "N/A", c.Capital)
		assert.Equal(t, "Unknown", c.Region)
		assert.Equal(t, "https://example.test/p.svg", c.Flag)
		assert.Equal(t, "Flag of Plainland", c.FlagAlt)
		assert.Empty(t, c.Code)
	})
}

func TestCountryRepository(t *testing.T) {
	t.Run("load replaces the list", func(t *testing.T) {
		src := &fakeSource{records: []restcountries.Record{record("A", pop(1)), record("B", pop(2))}}
		repo := NewCountryRepository(src)

		n, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, repo.Count())

		src.records = []restcountries.Record{record("C", pop(3))}
		n, err = repo.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "C", repo.All()[0].Name)
	})

	t.Run("failed load keeps previous data", func(t *testing.T) {
		src := &fakeSource{records: []restcountries.Record{record("A", pop(1))}}
		repo := NewCountryRepository(src)
		_, err := repo.Load(context.Background())
		require.NoError(t, err)

		src.err = &restcountries.DataSourceError{Kind: restcountries.KindStatus, StatusCode: 500, Status: "Internal Server Error"}
		n, err := repo.Load(context.Background())
		require.Error(t, err)
		assert.Zero(t, n)
		assert.True(t, errors.Is(err, restcountries.ErrDataSource))
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("all returns a snapshot", func(t *testing.T) {
		repo := NewCountryRepository(&fakeSource{records: []restcountries.Record{record("A", pop(1)), record("B", pop(2))}})
		_, err := repo.Load(context.Background())
		require.NoError(t, err)

		snapshot := repo.All()
		snapshot[0].Name = "Changed"
		snapshot = append(snapshot[:1], snapshot[2:]...)

		all := repo.All()
		require.Len(t, all, 2)
		assert.Equal(t, "A", all[0].Name)
		assert.Equal(t, "B", all[1].Name)
		assert.Len(t, snapshot, 1)
	})

	t.Run("by name", func(t *testing.T) {
		repo := NewCountryRepository(&fakeSource{records: []restcountries.Record{record("Peru", pop(33000000))}})
		_, err := repo.Load(context.Background())
		require.NoError(t, err)

		c, err := repo.ByName("Peru")
		require.NoError(t, err)
		assert.Equal(t, int64(33000000), c.Population)

		_, err = repo.ByName("Atlantis")
		assert.ErrorIs(t, err, ErrCountryNotFound)
	})
}
