package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBundleEmpty(t *testing.T) {
	assert.True(t, SeedBundle{}.Empty())
	assert.False(t, SeedBundle{Countries: []SeedCountry{{Name: "Japan"}}}.Empty())
}

func TestSeedBundleDecode(t *testing.T) {
	raw := `{
		"countries": [{
			"name": "Japan",
			"slug": "japan",
			"isoCode": "JP",
			"heroImage": "https://example.com/japan.jpg",
			"regions": [{"name": "Kansai", "slug": "kansai"}],
			"cities": [{
				"name": "Kyoto",
				"slug": "kyoto",
				"region": "kansai",
				"museums": [{"name": "Kyoto National Museum", "image": "https://example.com/knm.jpg"}],
				"restaurants": [{"name": "Gion Karyo", "cuisine": "kaiseki", "priceRange": "$$$"}],
				"itineraries": [{"title": "Temples", "weekday": "saturday", "position": 1}]
			}]
		}]
	}`

	var bundle SeedBundle
	require.NoError(t, json.Unmarshal([]byte(raw), &bundle))
	require.Len(t, bundle.Countries, 1)

	country := bundle.Countries[0]
	assert.Equal(t, "JP", country.ISOCode)
	require.Len(t, country.Cities, 1)

	city := country.Cities[0]
	assert.Equal(t, "kansai", city.Region)
	require.Len(t, city.Restaurants, 1)
	assert.Equal(t, "kaiseki", city.Restaurants[0].Cuisine)
	assert.Equal(t, "Gion Karyo", city.Restaurants[0].Name)
	require.Len(t, city.Itineraries, 1)
	assert.Equal(t, "saturday", city.Itineraries[0].Weekday)
}
