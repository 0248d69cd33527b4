package ratecard

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"netcost/core/ratecard"
	"netcost/internal/errors"
)

// The HCL rate card form keys prices by labeled blocks, since price keys
// like "Trench/m (verge)" are not valid HCL identifiers:
//
//	rate_card "Rate Card A" {
//	  node "Cabinet" { price = 1000 }
//	  node "Pot"     { price = 100 }
//	  trench "verge" { rate = 50 }
//	}
//
// Trench blocks map onto the canonical "Trench/m (<material>)" price keys.

type hclDocument struct {
	RateCards []hclRateCard `hcl:"rate_card,block"`
}

type hclRateCard struct {
	Name     string      `hcl:"name,label"`
	Nodes    []hclNode   `hcl:"node,block"`
	Trenches []hclTrench `hcl:"trench,block"`
}

type hclNode struct {
	Type  string  `hcl:"type,label"`
	Price float64 `hcl:"price"`
}

type hclTrench struct {
	Material string  `hcl:"material,label"`
	Rate     float64 `hcl:"rate"`
}

func parseHCL(filename string, data []byte) ([]*ratecard.Card, error) {
	var doc hclDocument
	if err := hclsimple.Decode(filename, data, nil, &doc); err != nil {
		return nil, errors.Malformed("decoding rate card hcl", err)
	}

	cards := make([]*ratecard.Card, 0, len(doc.RateCards))
	for _, record := range doc.RateCards {
		if record.Name == "" {
			return nil, errors.New(errors.TypeMalformed, "rate_card block has an empty name label")
		}
		prices := make(map[string]decimal.Decimal, len(record.Nodes)+len(record.Trenches))
		for _, node := range record.Nodes {
			prices[node.Type] = decimal.NewFromFloat(node.Price)
		}
		for _, trench := range record.Trenches {
			prices[ratecard.TrenchKey(trench.Material)] = decimal.NewFromFloat(trench.Rate)
		}
		cards = append(cards, &ratecard.Card{Name: record.Name, Prices: prices})
	}
	return cards, nil
}
