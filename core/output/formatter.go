// Package output renders calculation results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"netcost/core/cost"
	"netcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable text breakdown
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the result to w
	Render(w io.Writer, result cost.Result) error
}

// New returns the formatter for a format name.
func New(format Format) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &jsonFormatter{}, nil
	case FormatCLI:
		return &cliFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format: %s", format)
	}
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, result cost.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, result cost.Result) error {
	cardKeys := make([]string, 0, len(result))
	for key := range result {
		cardKeys = append(cardKeys, key)
	}
	sort.Strings(cardKeys)

	for _, cardKey := range cardKeys {
		breakdown := result[cardKey]
		if _, err := fmt.Fprintf(w, "%s\n", cardKey); err != nil {
			return err
		}

		routeKeys := make([]string, 0, len(breakdown.Routes))
		for key := range breakdown.Routes {
			routeKeys = append(routeKeys, key)
		}
		sort.Strings(routeKeys)

		for _, routeKey := range routeKeys {
			detail := breakdown.Routes[routeKey]
			if _, err := fmt.Fprintf(w, "  %-24s length=%s material=%s cost=%s\n",
				routeKey, detail.Length, detail.Material, detail.Cost); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n\n", breakdown.TotalKey(), breakdown.Total); err != nil {
			return err
		}
	}
	return nil
}
