package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/ports"
)

const defaultCurrency = "USD"

type catalogDoc struct {
	DefaultZone int            `yaml:"default_zone"`
	Zones       map[string]int `yaml:"zones"`
	RateCards   []RateCardDoc  `yaml:"rate_cards"`
}

// FileCatalog serves rate cards and the zone table from a YAML (or JSON)
// document loaded once at startup. It is read-only and safe for concurrent use.
type FileCatalog struct {
	cards       []domain.RateCard
	byID        map[string]int
	zones       map[string]int
	defaultZone int
}

var _ ports.RateCardSource = (*FileCatalog)(nil)

// LoadFile reads and validates a catalog document.
func LoadFile(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. Structural problems (missing ids,
// duplicate ids, unknown currencies) are errors; gaps inside pricing tables
// are left for evaluation to report.
func Parse(data []byte) (*FileCatalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &FileCatalog{
		cards:       make([]domain.RateCard, 0, len(doc.RateCards)),
		byID:        make(map[string]int, len(doc.RateCards)),
		zones:       make(map[string]int, len(doc.Zones)),
		defaultZone: doc.DefaultZone,
	}

	for prefix, zone := range doc.Zones {
		p := strings.TrimSpace(prefix)
		if p == "" {
			return nil, errors.New("parse catalog: empty zone prefix")
		}
		if zone < 1 {
			return nil, fmt.Errorf("parse catalog: zone for prefix %q must be positive, got %d", p, zone)
		}
		c.zones[p] = zone
	}

	for i, d := range doc.RateCards {
		card := d.ToRateCard()
		if err := validateCard(card); err != nil {
			return nil, fmt.Errorf("parse catalog: rate card #%d: %w", i+1, err)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate rate card id %q", card.ID)
		}
		if card.Currency == "" {
			card.Currency = defaultCurrency
		}

		c.byID[card.ID] = len(c.cards)
		c.cards = append(c.cards, card)
	}

	return c, nil
}

func validateCard(card domain.RateCard) error {
	if card.ID == "" {
		return errors.New("id is required")
	}
	if card.Vendor == "" {
		return fmt.Errorf("%s: vendor is required", card.ID)
	}
	if card.Currency != "" {
		if _, err := currency.ParseISO(card.Currency); err != nil {
			return fmt.Errorf("%s: currency %q: %w", card.ID, card.Currency, err)
		}
	}
	return nil
}

// ListRateCards returns copies of every card in file order.
func (c *FileCatalog) ListRateCards(_ context.Context) ([]domain.RateCard, error) {
	out := make([]domain.RateCard, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, cloneCard(card))
	}
	return out, nil
}

func (c *FileCatalog) GetRateCard(_ context.Context, id string) (domain.RateCard, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.RateCard{}, fmt.Errorf("get rate card %q: %w", id, ports.ErrRateCardNotFound)
	}
	return cloneCard(c.cards[i]), nil
}

// Zones returns a copy of the destination prefix to zone table.
func (c *FileCatalog) Zones() map[string]int {
	out := make(map[string]int, len(c.zones))
	for k, v := range c.zones {
		out[k] = v
	}
	return out
}

// DefaultZone is the configured fallback zone, or 0 when the file sets none.
func (c *FileCatalog) DefaultZone() int {
	return c.defaultZone
}

func cloneCard(card domain.RateCard) domain.RateCard {
	card.Components = slices.Clone(card.Components)
	for i := range card.Components {
		card.Components[i].Rules = slices.Clone(card.Components[i].Rules)
	}
	return card
}
