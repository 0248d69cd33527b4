package ratecard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netcost/internal/errors"
)

const sampleJSON = `{
  "rate_cards": [
    {
      "name": "Rate Card A",
      "Cabinet": 1000,
      "Trench/m (verge)": 50,
      "Trench/m (road)": 100,
      "Chamber": 200,
      "Pot": 100
    },
    {
      "name": "Rate Card B",
      "Cabinet": 1200,
      "Trench/m (verge)": 40,
      "Trench/m (road)": 80,
      "Chamber": 200,
      "Pot": 20
    }
  ]
}`

const sampleHCL = `
rate_card "Rate Card A" {
  node "Cabinet" { price = 1000 }
  node "Chamber" { price = 200 }
  node "Pot"     { price = 100 }
  trench "verge" { rate = 50 }
  trench "road"  { rate = 100 }
}

rate_card "Rate Card B" {
  node "Cabinet" { price = 1200 }
  node "Chamber" { price = 200 }
  node "Pot"     { price = 20 }
  trench "verge" { rate = 40 }
  trench "road"  { rate = 80 }
}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON(t *testing.T) {
	set, err := Load(writeTemp(t, "rate_cards.json", sampleJSON), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	require.Equal(t, []string{"rate_card_a", "rate_card_b"}, set.Keys())

	card, ok := set.Get("Rate Card A")
	require.True(t, ok)
	require.True(t, card.NodePrice("Cabinet").Equal(decimal.NewFromInt(1000)))
	require.True(t, card.TrenchRate("verge").Equal(decimal.NewFromInt(50)))
}

func TestLoadHCL(t *testing.T) {
	set, err := Load(writeTemp(t, "rate_cards.hcl", sampleHCL), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	card, ok := set.Get("rate_card_b")
	require.True(t, ok)
	require.True(t, card.NodePrice("Pot").Equal(decimal.NewFromInt(20)))
	require.True(t, card.TrenchRate("road").Equal(decimal.NewFromInt(80)))
}

func TestJSONAndHCLAreEquivalent(t *testing.T) {
	fromJSON, err := Load(writeTemp(t, "rate_cards.json", sampleJSON), zap.NewNop())
	require.NoError(t, err)
	fromHCL, err := Load(writeTemp(t, "rate_cards.hcl", sampleHCL), zap.NewNop())
	require.NoError(t, err)

	require.Equal(t, fromJSON.Keys(), fromHCL.Keys())
	for _, key := range fromJSON.Keys() {
		jsonCard, _ := fromJSON.Get(key)
		hclCard, _ := fromHCL.Get(key)
		require.Equal(t, len(jsonCard.Prices), len(hclCard.Prices), "card %s", key)
		for priceKey, price := range jsonCard.Prices {
			require.True(t, hclCard.Prices[priceKey].Equal(price),
				"card %s price %s: json=%s hcl=%s", key, priceKey, price, hclCard.Prices[priceKey])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no_such.json"), zap.NewNop())
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeNotFound), "got %v", err)
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, "bad.json", "Invalid JSON Data"), zap.NewNop())
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeMalformed), "malformed data is distinct from not found: %v", err)
	require.False(t, errors.IsType(err, errors.TypeNotFound))
}

func TestLoadMalformedHCL(t *testing.T) {
	_, err := Load(writeTemp(t, "bad.hcl", "rate_card {{{"), zap.NewNop())
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeMalformed), "got %v", err)
}

func TestLoadJSONRejectsNonNumericPrice(t *testing.T) {
	src := `{"rate_cards": [{"name": "Rate Card A", "Cabinet": "a lot"}]}`
	_, err := Load(writeTemp(t, "bad_price.json", src), zap.NewNop())
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeMalformed), "got %v", err)
}

func TestLoadJSONRequiresName(t *testing.T) {
	src := `{"rate_cards": [{"Cabinet": 1000}]}`
	_, err := Load(writeTemp(t, "unnamed.json", src), zap.NewNop())
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeMalformed), "got %v", err)
}
