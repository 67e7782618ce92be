package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/grim/pkg/config"
)

// Format names a report layout. It shares its values with the config
// file's output setting.
type Format = config.OutputFormat

// Report layouts.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSummary = config.FormatSummary
)

// ErrUnknownFormat is wrapped by ParseFormat and New for unsupported names.
var ErrUnknownFormat = errors.New("unknown format")

// factories builds a Reporter per layout. Text and table walk the runner
// result directly; JSON and summary render the analyzed report.
//
//nolint:gochecknoglobals // Read-only lookup table.
var factories = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable:   func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:    func(o Options) Reporter { return newRendererFacade(NewJSONRenderer(o), o) },
	FormatSummary: func(o Options) Reporter { return newRendererFacade(NewSummaryRenderer(o), o) },
}

// Formats lists the supported layouts in help order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatSummary}
}

// ParseFormat resolves a --format value. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(name))
	if _, ok := factories[format]; !ok {
		return "", unknownFormat(name)
	}
	return format, nil
}

func unknownFormat(name string) error {
	names := make([]string, 0, len(factories))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, strings.Join(names, ", "))
}
