// Package ratecard models the price tables used to cost a network build.
//
// A rate card maps price keys to unit prices. Two kinds of key exist: node
// type keys ("Cabinet") priced per installed node, and trench keys
// ("Trench/m (verge)") priced per meter of trench in a given material.
// Lookups are permissive: a key the card does not price costs zero, so rate
// cards can be extended without forcing every node type to be priced.
package ratecard

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TrenchKey returns the price key for a per-meter trench rate in the
// given material.
func TrenchKey(material string) string {
	return "Trench/m (" + material + ")"
}

// Normalize converts a human rate card name to its lookup key:
// lower-case, spaces replaced by underscores. Idempotent.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Card is a single named rate card. Immutable once built.
type Card struct {
	// Name is the human name as authored, e.g. "Rate Card A".
	Name string

	// Prices maps price keys to non-negative unit prices.
	Prices map[string]decimal.Decimal
}

// Key returns the normalized lookup key for the card.
func (c *Card) Key() string {
	return Normalize(c.Name)
}

// NodePrice returns the flat price for a node type, or zero when the type
// is not priced by this card.
func (c *Card) NodePrice(nodeType string) decimal.Decimal {
	if p, ok := c.Prices[nodeType]; ok {
		return p
	}
	return decimal.Zero
}

// TrenchRate returns the per-meter trench price for a material, or zero
// when the material is not priced by this card.
func (c *Card) TrenchRate(material string) decimal.Decimal {
	if p, ok := c.Prices[TrenchKey(material)]; ok {
		return p
	}
	return decimal.Zero
}

// Set holds rate cards keyed by normalized name.
type Set struct {
	cards map[string]*Card
}

// NewSet builds a Set from cards, keying each by its normalized name.
// When two names normalize to the same key the later card wins; the
// overwrite is logged so the collision is observable.
func NewSet(cards []*Card, log *zap.Logger) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Set{cards: make(map[string]*Card, len(cards))}
	for _, c := range cards {
		key := c.Key()
		if prev, ok := s.cards[key]; ok {
			log.Warn("duplicate normalized rate card name, keeping the later card",
				zap.String("key", key),
				zap.String("dropped", prev.Name),
				zap.String("kept", c.Name))
		}
		s.cards[key] = c
	}
	return s
}

// Get resolves a card by name. The name is normalized first, so
// "Rate Card A" and "rate_card_a" resolve to the same entry.
func (s *Set) Get(name string) (*Card, bool) {
	c, ok := s.cards[Normalize(name)]
	return c, ok
}

// Keys returns the normalized card keys in sorted order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.cards))
	for k := range s.cards {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cards in the set.
func (s *Set) Len() int {
	return len(s.cards)
}
