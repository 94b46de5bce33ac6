package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/ports"
)

const sampleCatalog = `
default_zone: 7
zones:
  "900": 1
rate_cards:
  - id: rc_a
    vendor: Vendor A
    components:
      - id: c1
        name: Pick
        type: range_weight
        apply_level: per_item
        rules:
          - { min: 0, max: 5, price: 0.8 }
          - { min: 150, price: 7.5 }
          - { min: 5, max: 10 }
      - id: c2
        name: Ship
        type: SHIPPING_ZONE
        rules:
          - { zone: "1", max: 5, price: 4.1 }
          - { min: 0, max: 5, price: 1 }
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"900": 1}, c.Zones())
	assert.Equal(t, 7, c.DefaultZone())

	cards, err := c.ListRateCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "USD", card.Currency)
	require.Len(t, card.Components, 2)

	pick := card.Components[0]
	assert.Equal(t, domain.CalcWeightRange, pick.Type)
	assert.Equal(t, domain.PerItem, pick.ApplyLevel)
	require.Len(t, pick.Rules, 3)
	assert.Equal(t, domain.WeightRangeRule{Min: 0, Max: 5, Price: 0.8}, pick.Rules[0])
	assert.Equal(t, domain.WeightRangeRule{Min: 150, Max: domain.Unbounded, Price: 7.5}, pick.Rules[1])
	assert.Equal(t, domain.MalformedRule{Reason: "rule 3: price is required"}, pick.Rules[2])

	ship := card.Components[1]
	assert.Equal(t, domain.PerOrder, ship.ApplyLevel)
	assert.Equal(t, domain.ZoneRateRule{Zone: "1", Min: 0, Max: 5, Price: 4.1}, ship.Rules[0])
	assert.IsType(t, domain.MalformedRule{}, ship.Rules[1])
}

func TestParseRejectsStructuralErrors(t *testing.T) {
	cases := map[string]string{
		"missing id":        "rate_cards:\n  - vendor: X\n",
		"missing vendor":    "rate_cards:\n  - id: a\n",
		"duplicate id":      "rate_cards:\n  - {id: a, vendor: X}\n  - {id: a, vendor: Y}\n",
		"bad currency":      "rate_cards:\n  - {id: a, vendor: X, currency: DOLLARS}\n",
		"non-positive zone": "zones:\n  \"900\": 0\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestGetRateCard(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	card, err := c.GetRateCard(context.Background(), "rc_a")
	require.NoError(t, err)
	assert.Equal(t, "Vendor A", card.Vendor)

	_, err = c.GetRateCard(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrRateCardNotFound)
}

func TestListRateCardsReturnsCopies(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	first, _ := c.ListRateCards(context.Background())
	first[0].Components[0].Rules[0] = domain.MalformedRule{Reason: "mutated"}
	first[0].Components[0].Name = "mutated"

	second, _ := c.ListRateCards(context.Background())
	assert.Equal(t, "Pick", second[0].Components[0].Name)
	assert.Equal(t, domain.WeightRangeRule{Min: 0, Max: 5, Price: 0.8}, second[0].Components[0].Rules[0])
}

func TestLoadShippedCatalog(t *testing.T) {
	c, err := LoadFile("../../../data/catalog.yaml")
	require.NoError(t, err)

	cards, err := c.ListRateCards(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 4)
	assert.Equal(t, 1, c.Zones()["900"])

	for _, card := range cards {
		for _, comp := range card.Components {
			for _, r := range comp.Rules {
				_, bad := r.(domain.MalformedRule)
				assert.False(t, bad, "%s/%s has a malformed rule", card.ID, comp.ID)
			}
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does-not-exist.yaml")
	assert.ErrorContains(t, err, "load catalog")
}
