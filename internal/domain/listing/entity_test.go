//go:build unit

package listing_test

import (
	"testing"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"
	"bookcars/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ListingBuilder)
	errIs  error
}

func TestNewListing(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewListingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "Hyundai", actual.Brand())
		assert.Equal(t, "Creta", actual.Model())
		assert.Equal(t, "Hyderabad", actual.City().String())
		assert.False(t, actual.CreatedAt().IsZero())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty brand",
				mutate: func(b *builder.ListingBuilder) { b.WithBrand("   ") },
				errIs:  listing.ErrEmptyBrand,
			},
			{
				name:   "empty model",
				mutate: func(b *builder.ListingBuilder) { b.WithModel("") },
				errIs:  listing.ErrEmptyModel,
			},
			{
				name:   "year too old",
				mutate: func(b *builder.ListingBuilder) { b.WithYear(1950) },
				errIs:  listing.ErrInvalidYear,
			},
			{
				name:   "year in the far future",
				mutate: func(b *builder.ListingBuilder) { b.WithYear(2100) },
				errIs:  listing.ErrInvalidYear,
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.ListingBuilder) { b.WithCapacity(0) },
				errIs:  listing.ErrInvalidCapacity,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.ListingBuilder) { b.WithPriceCents(-1) },
				errIs:  listing.ErrNegativePrice,
			},
			{
				name:   "unknown fuel type",
				mutate: func(b *builder.ListingBuilder) { b.WithFuelType("steam") },
				errIs:  listing.ErrInvalidFuelType,
			},
			{
				name:   "unknown transmission",
				mutate: func(b *builder.ListingBuilder) { b.WithTransmission("cvt-ish") },
				errIs:  listing.ErrInvalidGearbox,
			},
			{
				name: "inverted availability window",
				mutate: func(b *builder.ListingBuilder) {
					b.WithWindow(
						time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
						time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
					)
				},
				errIs: listing.ErrInvalidWindow,
			},
		})
	})
}

func TestCity(t *testing.T) {
	t.Run("unknown city rejected", func(t *testing.T) {
		_, err := listing.NewCity("Atlantis")
		require.ErrorIs(t, err, listing.ErrUnknownCity)
	})

	t.Run("pickup points belong to their city", func(t *testing.T) {
		city, err := listing.NewCity("Chennai")
		require.NoError(t, err)

		assert.True(t, city.ServesPoint("Guindy"))
		assert.False(t, city.ServesPoint("Gachibowli"), "Hyderabad point must not be served in Chennai")
		assert.NotEmpty(t, city.PickupPoints())
	})
}

func TestUpdateWindow(t *testing.T) {
	l, err := builder.NewListingBuilder().BuildDomain()
	require.NoError(t, err)

	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	w := availability.Window{
		From: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		Till: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, l.UpdateWindow(w, now))
	assert.Equal(t, w, l.Window())
	assert.Equal(t, now, l.UpdatedAt())

	inverted := availability.Window{From: w.Till, Till: w.From}
	require.ErrorIs(t, l.UpdateWindow(inverted, now), listing.ErrInvalidWindow)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewListingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
