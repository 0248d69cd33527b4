// Package ratecard loads rate card sets from files.
//
// Two authoring formats are supported, chosen by file extension: the JSON
// wire format ({"rate_cards": [{"name": ..., <price key>: <number>}]}) and
// an HCL form (see hcl.go). Both produce the same in-memory Set.
package ratecard

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"netcost/core/ratecard"
	"netcost/internal/errors"
)

// Load reads a rate card file into a Set. A missing file yields a not found
// error; content that does not parse yields a malformed data error. Name
// collisions after normalization keep the later card and log a warning.
func Load(path string, log *zap.Logger) (*ratecard.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("rate card file", path)
		}
		return nil, errors.Wrapf(errors.TypeInternal, err, "reading rate card file %s", path)
	}

	var cards []*ratecard.Card
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		cards, err = parseHCL(path, data)
	default:
		cards, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return ratecard.NewSet(cards, log), nil
}

type jsonDocument struct {
	RateCards []map[string]interface{} `json:"rate_cards"`
}

func parseJSON(data []byte) ([]*ratecard.Card, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc jsonDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Malformed("decoding rate card json", err)
	}

	cards := make([]*ratecard.Card, 0, len(doc.RateCards))
	for i, record := range doc.RateCards {
		name, ok := record["name"].(string)
		if !ok || name == "" {
			return nil, errors.Newf(errors.TypeMalformed, "rate card record %d has no name", i)
		}

		prices := make(map[string]decimal.Decimal, len(record)-1)
		for key, value := range record {
			if key == "name" {
				continue
			}
			num, ok := value.(json.Number)
			if !ok {
				return nil, errors.Newf(errors.TypeMalformed,
					"rate card %q: price %q is not a number", name, key)
			}
			price, err := decimal.NewFromString(num.String())
			if err != nil {
				return nil, errors.Wrapf(errors.TypeMalformed, err,
					"rate card %q: price %q", name, key)
			}
			prices[key] = price
		}
		cards = append(cards, &ratecard.Card{Name: name, Prices: prices})
	}
	return cards, nil
}
